package progression

import "sort"

// XP rewards. A lesson pays out once, when it is first completed; finishing
// the last lesson of a course pays the completion bonus on top.
const (
	LessonXP      = 25
	CourseBonusXP = 100
)

// DayCounter counts lessons completed within a single calendar day. The
// counter resets implicitly whenever the stored date falls behind today.
type DayCounter struct {
	Date    string `json:"date"`
	Lessons int    `json:"lessons"`
}

// Progress is the full per-user progress snapshot. It is persisted as one
// JSON blob and written back whole on every change (last write wins).
//
// Level is derived from XP and recomputed on every XP change; it is stored
// only for display and never trusted on load.
type Progress struct {
	CompletedLessons map[string][]int `json:"completedLessons"`
	XP               int              `json:"xp"`
	Level            int              `json:"level"`
	Streak           int              `json:"streak"`
	LastLoginDate    string           `json:"lastLoginDate,omitempty"`
	Badges           []string         `json:"badges"`

	// Positions remembers the current lesson index per course so a new
	// session resumes where the previous one stopped.
	Positions map[string]int `json:"positions,omitempty"`

	// Auxiliary counters backing badge predicates.
	StartedCourses  []string   `json:"startedCourses,omitempty"`
	QuizCorrect     int        `json:"quizCorrect"`
	FirstTryCorrect int        `json:"firstTryCorrect"`
	Daily           DayCounter `json:"daily"`
}

// NewProgress returns the zero-valued default snapshot. Absence of stored
// progress is not an error, it is this state.
func NewProgress() Progress {
	return Progress{
		CompletedLessons: map[string][]int{},
		Level:            LevelForXP(0),
		Badges:           []string{},
		Positions:        map[string]int{},
	}
}

// LevelForXP derives the level from experience points: floor(xp/100)+1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/100 + 1
}

// AddXP increases XP and keeps the derived level in sync.
func (p *Progress) AddXP(points int) {
	p.XP += points
	p.Level = LevelForXP(p.XP)
}

// CompleteLesson records a lesson index as completed for a course. Adding an
// already-present index is a no-op. Returns true when the index was new.
func (p *Progress) CompleteLesson(courseID string, index int) bool {
	if p.CompletedLessons == nil {
		p.CompletedLessons = map[string][]int{}
	}
	done := p.CompletedLessons[courseID]
	for _, i := range done {
		if i == index {
			return false
		}
	}
	done = append(done, index)
	sort.Ints(done)
	p.CompletedLessons[courseID] = done
	return true
}

// HasCompleted reports whether a lesson index is recorded as completed.
func (p *Progress) HasCompleted(courseID string, index int) bool {
	for _, i := range p.CompletedLessons[courseID] {
		if i == index {
			return true
		}
	}
	return false
}

// TotalCompleted returns the lesson completion count across all courses.
func (p *Progress) TotalCompleted() int {
	total := 0
	for _, done := range p.CompletedLessons {
		total += len(done)
	}
	return total
}

// HasBadge reports whether a badge has already been awarded.
func (p *Progress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// StartCourse records that the user opened a course at least once.
func (p *Progress) StartCourse(courseID string) {
	for _, id := range p.StartedCourses {
		if id == courseID {
			return
		}
	}
	p.StartedCourses = append(p.StartedCourses, courseID)
}

// HasStarted reports whether a course was ever opened.
func (p *Progress) HasStarted(courseID string) bool {
	for _, id := range p.StartedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// CountLessonToday bumps the per-day lesson counter, resetting it first when
// the stored date is not today.
func (p *Progress) CountLessonToday(today string) {
	if p.Daily.Date != today {
		p.Daily = DayCounter{Date: today}
	}
	p.Daily.Lessons++
}

// LessonsToday returns the per-day counter value for the given date, zero
// when the counter belongs to another day.
func (p *Progress) LessonsToday(today string) int {
	if p.Daily.Date != today {
		return 0
	}
	return p.Daily.Lessons
}
