package controllers

import (
	"encoding/json"
	"strconv"

	"cosmolearn/backend/config"
	"cosmolearn/backend/export"
	"cosmolearn/backend/models"
	"cosmolearn/backend/progression"
	"cosmolearn/backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

// GetCourseAnalytics godoc
// @Summary Per-course analytics
// @Description Returns every user's completion standing for one course (admin)
// @Tags analytics
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /admin/analytics/courses/{id} [get]
func (ac *AnalyticsController) GetCourseAnalytics(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := ac.DB.Preload("Lessons").First(&course, courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	var records []models.ProgressRecord
	if err := ac.DB.Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	key := store.CourseKey(course.ID)
	users := []fiber.Map{}
	for _, record := range records {
		var p progression.Progress
		if err := json.Unmarshal([]byte(record.Data), &p); err != nil {
			continue
		}
		completed := len(p.CompletedLessons[key])
		if completed == 0 && !p.HasStarted(key) {
			continue
		}

		var user models.User
		if err := ac.DB.First(&user, record.UserID).Error; err != nil {
			continue
		}

		rate := 0.0
		if len(course.Lessons) > 0 {
			rate = float64(completed) / float64(len(course.Lessons)) * 100
		}
		users = append(users, fiber.Map{
			"user_id":           user.ID,
			"username":          user.Username,
			"lessons_completed": completed,
			"completion_rate":   rate,
			"xp":                p.XP,
			"level":             progression.LevelForXP(p.XP),
		})
	}

	return c.JSON(fiber.Map{
		"course":    course.Title,
		"analytics": users,
	})
}

// ExportProgress streams an xlsx workbook of every user's progress (admin).
func (ac *AnalyticsController) ExportProgress(c *fiber.Ctx) error {
	workbook, err := export.BuildProgressWorkbook(ac.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not build export",
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="progress.xlsx"`)
	return workbook.Write(c.Response().BodyWriter())
}
