package routes

import (
	"cosmolearn/backend/config"
	"cosmolearn/backend/controllers"
	"cosmolearn/backend/middleware"
	"cosmolearn/backend/progression"
	"cosmolearn/backend/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries the shared collaborators controllers are built from.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Progress *store.ProgressStore
	Catalog  *store.CourseCatalog
	Badges   *progression.BadgeEngine
	Manager  *progression.Manager
}

func SetupRoutes(app *fiber.App, d Deps) {
	// Auth routes
	authController := controllers.NewAuthController(d.DB, d.Cfg, d.Progress, d.Badges, d.Catalog)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(d.Cfg)
	adminMiddleware := middleware.AdminMiddleware(d.DB, d.Cfg)

	// Progress routes
	progressController := controllers.NewProgressController(d.DB, d.Cfg, d.Progress, d.Badges)
	app.Get("/api/progress", authMiddleware, progressController.GetProgressOverview)
	app.Get("/api/progress/badges", authMiddleware, progressController.GetBadges)
	app.Post("/api/progress/reset", authMiddleware, progressController.ResetProgress)

	// Courses routes
	coursesController := controllers.NewCoursesController(d.DB, d.Cfg, d.Progress)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)

	// Progression routes: course sessions and the quiz/lesson state machine
	progressionController := controllers.NewProgressionController(d.DB, d.Cfg, d.Manager, d.Catalog)
	courses.Post("/:id/session", progressionController.StartSession)
	sessions := app.Group("/api/sessions", authMiddleware)
	sessions.Get("/:token", progressionController.GetLesson)
	sessions.Post("/:token/quiz", progressionController.SubmitQuiz)
	sessions.Post("/:token/advance", progressionController.Advance)
	sessions.Post("/:token/retreat", progressionController.Retreat)
	sessions.Post("/:token/goto", progressionController.Goto)
	sessions.Delete("/:token", progressionController.EndSession)

	// Admin routes for courses
	adminCourses := app.Group("/api/admin/courses", authMiddleware, adminMiddleware)
	adminCourses.Post("/", coursesController.CreateCourse)
	adminCourses.Post("/:id/lessons", coursesController.AddLesson)
	adminCourses.Put("/:id/lessons/:lessonId", coursesController.UpdateLesson)

	// Admin analytics
	analyticsController := controllers.NewAnalyticsController(d.DB, d.Cfg)
	adminAnalytics := app.Group("/api/admin/analytics", authMiddleware, adminMiddleware)
	adminAnalytics.Get("/courses/:id", analyticsController.GetCourseAnalytics)
	adminAnalytics.Get("/export", analyticsController.ExportProgress)
}
