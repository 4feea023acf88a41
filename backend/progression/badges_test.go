package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(title, message string) {
	n.messages = append(n.messages, title+": "+message)
}

func twoCourses() []CourseInfo {
	return []CourseInfo{
		{ID: "1", LessonCount: 3},
		{ID: "2", LessonCount: 2},
	}
}

func TestFirstLessonBadge(t *testing.T) {
	notifier := &recordingNotifier{}
	engine := NewBadgeEngine(DefaultCatalog(), notifier)
	p := NewProgress()

	awarded := engine.Evaluate(&p, twoCourses())
	assert.Empty(t, awarded)

	p.CompleteLesson("1", 0)
	awarded = engine.Evaluate(&p, twoCourses())
	assert.Equal(t, []string{BadgeFirstLesson}, awarded)
	assert.Len(t, notifier.messages, 1)

	// Re-evaluating with no state change awards and notifies nothing.
	awarded = engine.Evaluate(&p, twoCourses())
	assert.Empty(t, awarded)
	assert.Len(t, notifier.messages, 1)
	assert.Equal(t, []string{BadgeFirstLesson}, p.Badges)
}

func TestQuizMasterBadge(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()
	p.QuizCorrect = 4

	assert.Empty(t, engine.Evaluate(&p, nil))

	p.QuizCorrect = 5
	assert.Contains(t, engine.Evaluate(&p, nil), BadgeQuizMaster)
}

func TestWeekStreakBadge(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()
	p.Streak = 6

	assert.Empty(t, engine.Evaluate(&p, nil))

	p.Streak = 7
	assert.Contains(t, engine.Evaluate(&p, nil), BadgeWeekStreak)
}

func TestCourseCompleteBadge(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()
	p.CompleteLesson("2", 0)

	awarded := engine.Evaluate(&p, twoCourses())
	assert.NotContains(t, awarded, BadgeCourseComplete)

	p.CompleteLesson("2", 1)
	awarded = engine.Evaluate(&p, twoCourses())
	assert.Contains(t, awarded, BadgeCourseComplete)
}

func TestSpeedLearnerBadge(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()
	p.CountLessonToday("2024-01-01")
	p.CountLessonToday("2024-01-01")

	assert.Empty(t, engine.Evaluate(&p, nil))

	p.CountLessonToday("2024-01-01")
	assert.Contains(t, engine.Evaluate(&p, nil), BadgeSpeedLearner)
}

func TestSpeedLearnerCounterDoesNotSpanDays(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()
	p.CountLessonToday("2024-01-01")
	p.CountLessonToday("2024-01-01")
	p.CountLessonToday("2024-01-02")

	assert.Empty(t, engine.Evaluate(&p, nil))
}

func TestExplorerBadge(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()
	p.StartCourse("1")

	assert.Empty(t, engine.Evaluate(&p, twoCourses()))

	p.StartCourse("2")
	assert.Contains(t, engine.Evaluate(&p, twoCourses()), BadgeExplorer)
}

func TestExplorerBadgeNeedsACatalog(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()

	// An empty catalog never satisfies the explorer predicate.
	assert.Empty(t, engine.Evaluate(&p, []CourseInfo{}))
}

func TestPerfectionistBadge(t *testing.T) {
	engine := NewBadgeEngine(DefaultCatalog(), nil)
	p := NewProgress()
	p.FirstTryCorrect = 4

	assert.Empty(t, engine.Evaluate(&p, nil))

	p.FirstTryCorrect = 5
	assert.Contains(t, engine.Evaluate(&p, nil), BadgePerfectionist)
}

func TestEvaluateAwardsSeveralAtOnce(t *testing.T) {
	notifier := &recordingNotifier{}
	engine := NewBadgeEngine(DefaultCatalog(), notifier)
	p := NewProgress()
	p.CompleteLesson("1", 0)
	p.Streak = 7
	p.QuizCorrect = 5

	awarded := engine.Evaluate(&p, twoCourses())

	assert.ElementsMatch(t, []string{BadgeFirstLesson, BadgeQuizMaster, BadgeWeekStreak}, awarded)
	assert.Len(t, notifier.messages, 3)
}
