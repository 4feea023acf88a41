package controllers

import (
	"strconv"

	"cosmolearn/backend/config"
	"cosmolearn/backend/progression"
	"cosmolearn/backend/store"
	"cosmolearn/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProgressionController exposes the course session state machine: start a
// session, read the current lesson, answer its quiz, advance, retreat and
// jump. Every session is an explicit object addressed by its token.
type ProgressionController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Manager *progression.Manager
	Catalog *store.CourseCatalog
}

func NewProgressionController(db *gorm.DB, cfg *config.Config, manager *progression.Manager, catalog *store.CourseCatalog) *ProgressionController {
	return &ProgressionController{DB: db, Cfg: cfg, Manager: manager, Catalog: catalog}
}

// StartSession godoc
// @Summary Start a course session
// @Description Opens a session for a course, resuming at the saved lesson
// @Tags progression
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/session [post]
func (pc *ProgressionController) StartSession(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	course, err := pc.Catalog.Course(uint(courseID))
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	session, newBadges, err := pc.Manager.Start(userID, course)
	if err != nil && err != progression.ErrStorageUnavailable {
		return utils.ProgressionError(c, err)
	}

	return c.JSON(fiber.Map{
		"session_token": session.Token,
		"index":         session.Index(),
		"lesson":        lessonPayload(session),
		"new_badges":    newBadges,
	})
}

// GetLesson returns the lesson the session currently points at.
func (pc *ProgressionController) GetLesson(c *fiber.Ctx) error {
	session, err := pc.Manager.Get(c.Params("token"))
	if err != nil {
		return utils.ProgressionError(c, err)
	}

	return c.JSON(fiber.Map{
		"index":           session.Index(),
		"course_complete": session.Complete(),
		"lesson":          lessonPayload(session),
	})
}

// SubmitQuiz godoc
// @Summary Submit a quiz answer
// @Description Scores the selected option for the current lesson's quiz.
// The correct index is always revealed. A second submit on the same
// presentation is rejected.
// @Tags progression
// @Accept json
// @Produce json
// @Param token path string true "Session token"
// @Success 200 {object} progression.SubmitOutcome
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /sessions/{token}/quiz [post]
func (pc *ProgressionController) SubmitQuiz(c *fiber.Ctx) error {
	var input struct {
		SelectedIndex int `json:"selected_index"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	outcome, err := pc.Manager.SubmitQuiz(c.Params("token"), input.SelectedIndex)
	if err != nil && err != progression.ErrStorageUnavailable {
		return utils.ProgressionError(c, err)
	}

	return c.JSON(outcome)
}

// Advance moves the session to the next lesson once the gating quiz, if
// any, has been passed. Completion bookkeeping happens here, exactly once
// per lesson.
func (pc *ProgressionController) Advance(c *fiber.Ctx) error {
	outcome, err := pc.Manager.Advance(c.Params("token"))
	if err != nil && err != progression.ErrStorageUnavailable {
		return utils.ProgressionError(c, err)
	}

	return c.JSON(outcome)
}

// Retreat steps back one lesson for review.
func (pc *ProgressionController) Retreat(c *fiber.Ctx) error {
	index, err := pc.Manager.Retreat(c.Params("token"))
	if err != nil {
		return utils.ProgressionError(c, err)
	}

	return c.JSON(fiber.Map{"index": index})
}

// Goto jumps to an arbitrary lesson. Marks nothing complete.
func (pc *ProgressionController) Goto(c *fiber.Ctx) error {
	var input struct {
		Index int `json:"index"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	index, err := pc.Manager.Goto(c.Params("token"), input.Index)
	if err != nil && err != progression.ErrStorageUnavailable {
		return utils.ProgressionError(c, err)
	}

	return c.JSON(fiber.Map{"index": index})
}

// EndSession discards the session and cancels any pending auto-advance.
func (pc *ProgressionController) EndSession(c *fiber.Ctx) error {
	pc.Manager.End(c.Params("token"))
	return c.JSON(fiber.Map{"message": "Session ended"})
}

// lessonPayload renders the current lesson for the client. The quiz's
// correct index stays server-side.
func lessonPayload(session *progression.CourseSession) fiber.Map {
	lesson := session.CurrentLesson()
	payload := fiber.Map{
		"id":      lesson.ID,
		"title":   lesson.Title,
		"content": lesson.Content,
	}
	if lesson.Quiz != nil {
		payload["quiz"] = fiber.Map{
			"question": lesson.Quiz.Question,
			"options":  lesson.Quiz.Options,
		}
	}
	return payload
}
