package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"cosmolearn/backend/config"
	"cosmolearn/backend/models"
	"cosmolearn/backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Progress *store.ProgressStore
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, progress *store.ProgressStore) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Progress: progress}
}

// GetCourses godoc
// @Summary List available courses
// @Description Returns all courses with the caller's completion counts
// @Tags courses
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	topic := c.Query("topic")
	query := cc.DB.Model(&models.Course{}).Preload("Lessons")
	if topic != "" {
		query = query.Where("topic LIKE ?", "%"+topic+"%")
	}

	var courses []models.Course
	query.Find(&courses)

	progress := cc.Progress.Load(userID)

	result := []fiber.Map{}
	for _, course := range courses {
		completed := len(progress.CompletedLessons[store.CourseKey(course.ID)])
		result = append(result, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.ShortDesc,
			"difficulty":  course.Difficulty,
			"topic":       course.Topic,
			"logo_url":    course.LogoURL,
			"lessons":     len(course.Lessons),
			"completed":   completed,
			"started":     progress.HasStarted(store.CourseKey(course.ID)),
		})
	}

	return c.JSON(result)
}

// GetCourseDetails godoc
// @Summary Get course details
// @Description Returns a course with its lessons and quiz questions. The
// correct option index is never included.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.Preload("Lessons.Quiz").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	progress := cc.Progress.Load(userID)
	key := store.CourseKey(course.ID)

	lessons := []fiber.Map{}
	for _, lesson := range course.Lessons {
		entry := fiber.Map{
			"id":        lesson.ID,
			"title":     lesson.Title,
			"order":     lesson.SequenceOrder,
			"completed": progress.HasCompleted(key, lesson.SequenceOrder),
		}
		if lesson.Quiz != nil {
			var options []string
			json.Unmarshal([]byte(lesson.Quiz.Options), &options)
			entry["quiz"] = fiber.Map{
				"question": lesson.Quiz.Question,
				"options":  options,
			}
		}
		lessons = append(lessons, entry)
	}

	return c.JSON(fiber.Map{
		"course": fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"description": course.Description,
			"short_desc":  course.ShortDesc,
			"difficulty":  course.Difficulty,
			"topic":       course.Topic,
			"logo_url":    course.LogoURL,
			"lessons":     lessons,
		},
		"position": progress.Positions[key],
	})
}

// CreateCourse creates a course (admin).
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	course.AuthorID = userID
	if err := cc.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// AddLesson appends a lesson to a course (admin). The lesson may carry a
// quiz: a question, its options and the correct option index.
func (cc *CoursesController) AddLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.Preload("Lessons").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	type QuizInput struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
	}
	type LessonInput struct {
		Title   string     `json:"title"`
		Content string     `json:"content"`
		Quiz    *QuizInput `json:"quiz"`
	}

	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	lesson := models.Lesson{
		CourseID:      uint(courseID),
		Title:         input.Title,
		Content:       input.Content,
		SequenceOrder: len(course.Lessons),
	}

	if input.Quiz != nil {
		if input.Quiz.CorrectIndex < 0 || input.Quiz.CorrectIndex >= len(input.Quiz.Options) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Correct index out of option range",
			})
		}
		options, _ := json.Marshal(input.Quiz.Options)
		lesson.Quiz = &models.LessonQuiz{
			Question:     input.Quiz.Question,
			Options:      string(options),
			CorrectIndex: input.Quiz.CorrectIndex,
		}
	}

	if err := cc.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create lesson",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lesson created",
		"lesson": fiber.Map{
			"id":    lesson.ID,
			"title": lesson.Title,
			"order": lesson.SequenceOrder,
		},
	})
}

// UpdateLesson updates a lesson's content or quiz (admin).
func (cc *CoursesController) UpdateLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lesson ID",
		})
	}

	var lesson models.Lesson
	if err := cc.DB.Preload("Quiz").Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lesson not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	type QuizInput struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
	}
	var input struct {
		Title   string     `json:"title"`
		Content string     `json:"content"`
		Quiz    *QuizInput `json:"quiz"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.Content != "" {
		lesson.Content = input.Content
	}
	if input.Quiz != nil {
		if input.Quiz.CorrectIndex < 0 || input.Quiz.CorrectIndex >= len(input.Quiz.Options) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Correct index out of option range",
			})
		}
		options, _ := json.Marshal(input.Quiz.Options)
		if lesson.Quiz == nil {
			lesson.Quiz = &models.LessonQuiz{LessonID: lesson.ID}
		}
		lesson.Quiz.Question = input.Quiz.Question
		lesson.Quiz.Options = string(options)
		lesson.Quiz.CorrectIndex = input.Quiz.CorrectIndex
	}

	if err := cc.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save lesson",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lesson updated",
	})
}
