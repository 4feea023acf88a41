package store

import (
	"encoding/json"
	"sort"
	"strconv"

	"cosmolearn/backend/models"
	"cosmolearn/backend/progression"

	"gorm.io/gorm"
)

// CourseCatalog adapts the relational course tables into the read-only
// catalog structures the progression core consumes. Course IDs become the
// string keys used inside progress blobs.
type CourseCatalog struct {
	db *gorm.DB
}

func NewCourseCatalog(db *gorm.DB) *CourseCatalog {
	return &CourseCatalog{db: db}
}

// CourseKey formats a course ID the way progress blobs key it.
func CourseKey(courseID uint) string {
	return strconv.FormatUint(uint64(courseID), 10)
}

// CourseSummaries lists every course with its lesson count, for badge
// predicates. Errors collapse to an empty catalog; badge evaluation is
// advisory and must never block progression.
func (c *CourseCatalog) CourseSummaries() []progression.CourseInfo {
	var courses []models.Course
	if err := c.db.Preload("Lessons").Find(&courses).Error; err != nil {
		return nil
	}
	infos := make([]progression.CourseInfo, 0, len(courses))
	for _, course := range courses {
		infos = append(infos, progression.CourseInfo{
			ID:          CourseKey(course.ID),
			LessonCount: len(course.Lessons),
		})
	}
	return infos
}

// Course loads one course with its lessons in sequence order, quiz options
// decoded from their JSON column.
func (c *CourseCatalog) Course(courseID uint) (progression.Course, error) {
	var course models.Course
	err := c.db.Preload("Lessons.Quiz").First(&course, courseID).Error
	if err != nil {
		return progression.Course{}, err
	}

	sort.Slice(course.Lessons, func(i, j int) bool {
		return course.Lessons[i].SequenceOrder < course.Lessons[j].SequenceOrder
	})

	result := progression.Course{
		ID:    CourseKey(course.ID),
		Title: course.Title,
	}
	for _, lesson := range course.Lessons {
		l := progression.Lesson{
			ID:      lesson.ID,
			Title:   lesson.Title,
			Content: lesson.Content,
		}
		if lesson.Quiz != nil {
			var options []string
			json.Unmarshal([]byte(lesson.Quiz.Options), &options)
			l.Quiz = &progression.Quiz{
				Question:     lesson.Quiz.Question,
				Options:      options,
				CorrectIndex: lesson.Quiz.CorrectIndex,
			}
		}
		result.Lessons = append(result.Lessons, l)
	}
	return result, nil
}
