package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string
	ShortDesc   string
	Description string
	Difficulty  string // beginner, intermediate, advanced
	Topic       string // e.g. solar-system, deep-space, climate
	AuthorID    uint
	LogoURL     string
	Lessons     []Lesson
}

type Lesson struct {
	gorm.Model
	CourseID      uint
	Title         string
	Content       string
	SequenceOrder int
	Quiz          *LessonQuiz
}

// LessonQuiz is the single gating question of a lesson. Options are stored
// as a JSON array string; CorrectIndex is 0-based into that array.
type LessonQuiz struct {
	gorm.Model
	LessonID     uint
	Question     string
	Options      string // JSON array of options
	CorrectIndex int
}
