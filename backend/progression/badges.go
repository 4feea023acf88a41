package progression

// Badge identifiers. Stable strings; they end up in persisted progress blobs.
const (
	BadgeFirstLesson    = "first_lesson"
	BadgeQuizMaster     = "quiz_master"
	BadgeWeekStreak     = "week_streak"
	BadgeCourseComplete = "course_complete"
	BadgeSpeedLearner   = "speed_learner"
	BadgeExplorer       = "explorer"
	BadgePerfectionist  = "perfectionist"
)

// CourseInfo is the catalog summary badge predicates run against.
type CourseInfo struct {
	ID          string
	LessonCount int
}

// Badge couples a catalog entry with its award predicate. Predicates are
// pure: they read the snapshot and the course catalog and decide.
type Badge struct {
	ID        string
	Name      string
	Icon      string
	Predicate func(p *Progress, courses []CourseInfo) bool
}

// Notifier is the user-visible notification sink. Fire-and-forget, no
// delivery guarantee.
type Notifier interface {
	Notify(title, message string)
}

// DefaultCatalog returns the built-in badge table. Adding a badge means
// adding a row here; the evaluation loop never changes.
func DefaultCatalog() []Badge {
	return []Badge{
		{
			ID: BadgeFirstLesson, Name: "First Contact", Icon: "🚀",
			Predicate: func(p *Progress, _ []CourseInfo) bool {
				return p.TotalCompleted() >= 1
			},
		},
		{
			ID: BadgeQuizMaster, Name: "Quiz Master", Icon: "🧠",
			Predicate: func(p *Progress, _ []CourseInfo) bool {
				return p.QuizCorrect >= 5
			},
		},
		{
			ID: BadgeWeekStreak, Name: "Orbital Week", Icon: "🔥",
			Predicate: func(p *Progress, _ []CourseInfo) bool {
				return p.Streak >= 7
			},
		},
		{
			ID: BadgeCourseComplete, Name: "Mission Complete", Icon: "🏆",
			Predicate: func(p *Progress, courses []CourseInfo) bool {
				for _, c := range courses {
					if c.LessonCount > 0 && len(p.CompletedLessons[c.ID]) >= c.LessonCount {
						return true
					}
				}
				return false
			},
		},
		{
			ID: BadgeSpeedLearner, Name: "Light Speed", Icon: "⚡",
			Predicate: func(p *Progress, _ []CourseInfo) bool {
				return p.Daily.Lessons >= 3
			},
		},
		{
			ID: BadgeExplorer, Name: "Deep Space Explorer", Icon: "🛰️",
			Predicate: func(p *Progress, courses []CourseInfo) bool {
				if len(courses) == 0 {
					return false
				}
				for _, c := range courses {
					if !p.HasStarted(c.ID) {
						return false
					}
				}
				return true
			},
		},
		{
			ID: BadgePerfectionist, Name: "Perfectionist", Icon: "✨",
			Predicate: func(p *Progress, _ []CourseInfo) bool {
				return p.FirstTryCorrect >= 5
			},
		},
	}
}

// BadgeEngine evaluates the catalog against progress snapshots and emits
// each award exactly once per user.
type BadgeEngine struct {
	catalog  []Badge
	notifier Notifier
}

func NewBadgeEngine(catalog []Badge, notifier Notifier) *BadgeEngine {
	return &BadgeEngine{catalog: catalog, notifier: notifier}
}

// Catalog exposes the badge table for display listings.
func (e *BadgeEngine) Catalog() []Badge {
	return e.catalog
}

// Evaluate tests every badge not yet held against the current snapshot,
// appends the satisfied ones to the badge set and returns the newly earned
// identifiers. A second call with unchanged state returns nothing and
// notifies nothing.
func (e *BadgeEngine) Evaluate(p *Progress, courses []CourseInfo) []string {
	var awarded []string
	for _, badge := range e.catalog {
		if p.HasBadge(badge.ID) {
			continue
		}
		if !badge.Predicate(p, courses) {
			continue
		}
		p.Badges = append(p.Badges, badge.ID)
		awarded = append(awarded, badge.ID)
		if e.notifier != nil {
			e.notifier.Notify("Badge earned!", badge.Icon+" "+badge.Name)
		}
	}
	return awarded
}
