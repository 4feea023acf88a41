package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 3, LevelForXP(250))
	assert.Equal(t, 11, LevelForXP(1000))
}

func TestAddXPKeepsLevelInSync(t *testing.T) {
	p := NewProgress()
	assert.Equal(t, 1, p.Level)

	p.AddXP(99)
	assert.Equal(t, 1, p.Level)

	p.AddXP(1)
	assert.Equal(t, 100, p.XP)
	assert.Equal(t, 2, p.Level)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	p := NewProgress()

	assert.True(t, p.CompleteLesson("1", 0))
	assert.False(t, p.CompleteLesson("1", 0))
	assert.True(t, p.CompleteLesson("1", 2))
	assert.True(t, p.CompleteLesson("1", 1))

	// Sorted, no duplicates.
	assert.Equal(t, []int{0, 1, 2}, p.CompletedLessons["1"])
	assert.Equal(t, 3, p.TotalCompleted())
}

func TestHasCompleted(t *testing.T) {
	p := NewProgress()
	p.CompleteLesson("7", 3)

	assert.True(t, p.HasCompleted("7", 3))
	assert.False(t, p.HasCompleted("7", 0))
	assert.False(t, p.HasCompleted("8", 3))
}

func TestStartCourseIsASet(t *testing.T) {
	p := NewProgress()
	p.StartCourse("1")
	p.StartCourse("1")
	p.StartCourse("2")

	assert.Equal(t, []string{"1", "2"}, p.StartedCourses)
	assert.True(t, p.HasStarted("1"))
	assert.False(t, p.HasStarted("3"))
}

func TestDayCounterResetsAtDayBoundary(t *testing.T) {
	p := NewProgress()

	p.CountLessonToday("2024-01-01")
	p.CountLessonToday("2024-01-01")
	assert.Equal(t, 2, p.LessonsToday("2024-01-01"))

	// New day starts a fresh count.
	p.CountLessonToday("2024-01-02")
	assert.Equal(t, 1, p.LessonsToday("2024-01-02"))
	assert.Equal(t, 0, p.LessonsToday("2024-01-01"))
}
