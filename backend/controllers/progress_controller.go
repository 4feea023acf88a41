package controllers

import (
	"cosmolearn/backend/config"
	"cosmolearn/backend/models"
	"cosmolearn/backend/progression"
	"cosmolearn/backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Progress *store.ProgressStore
	Badges   *progression.BadgeEngine
}

func NewProgressController(db *gorm.DB, cfg *config.Config, progress *store.ProgressStore, badges *progression.BadgeEngine) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg, Progress: progress, Badges: badges}
}

// GetProgressOverview godoc
// @Summary Get progress overview
// @Description Returns XP, derived level, streak, badges and per-course completion
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressOverview
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	progress := pc.Progress.Load(userID)

	var courses []models.Course
	pc.DB.Preload("Lessons").Find(&courses)

	rows := []models.CourseCompletion{}
	for _, course := range courses {
		completed := len(progress.CompletedLessons[store.CourseKey(course.ID)])
		rate := 0.0
		if len(course.Lessons) > 0 {
			rate = float64(completed) / float64(len(course.Lessons)) * 100
		}
		rows = append(rows, models.CourseCompletion{
			CourseID:         course.ID,
			Title:            course.Title,
			LessonsCompleted: completed,
			LessonCount:      len(course.Lessons),
			CompletionRate:   rate,
		})
	}

	return c.JSON(models.ProgressOverview{
		XP:            progress.XP,
		Level:         progression.LevelForXP(progress.XP),
		Streak:        progress.Streak,
		LastLoginDate: progress.LastLoginDate,
		Badges:        progress.Badges,
		Courses:       rows,
	})
}

// GetBadges godoc
// @Summary List the badge catalog
// @Description Returns every badge with an earned flag for the caller
// @Tags progress
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Security ApiKeyAuth
// @Router /progress/badges [get]
func (pc *ProgressController) GetBadges(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	progress := pc.Progress.Load(userID)

	result := []fiber.Map{}
	for _, badge := range pc.Badges.Catalog() {
		result = append(result, fiber.Map{
			"id":     badge.ID,
			"name":   badge.Name,
			"icon":   badge.Icon,
			"earned": progress.HasBadge(badge.ID),
		})
	}

	return c.JSON(result)
}

// ResetProgress wipes the caller's progress back to the default snapshot.
// The only operation that may decrease XP.
func (pc *ProgressController) ResetProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	if err := pc.Progress.Reset(userID); err != nil {
		// Non-fatal: the in-memory state is already cleared.
		return c.JSON(fiber.Map{
			"message": "Progress reset (storage unavailable, not persisted)",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Progress reset",
	})
}
