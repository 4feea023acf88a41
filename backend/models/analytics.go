package models

// CourseCompletion is one row of the per-user progress overview.
type CourseCompletion struct {
	CourseID         uint    `json:"course_id"`
	Title            string  `json:"title"`
	LessonsCompleted int     `json:"lessons_completed"`
	LessonCount      int     `json:"lesson_count"`
	CompletionRate   float64 `json:"completion_rate"`
}

// ProgressOverview summarizes a user's standing for the dashboard.
type ProgressOverview struct {
	XP            int                `json:"xp"`
	Level         int                `json:"level"`
	Streak        int                `json:"streak"`
	LastLoginDate string             `json:"last_login_date,omitempty"`
	Badges        []string           `json:"badges"`
	Courses       []CourseCompletion `json:"courses"`
}
