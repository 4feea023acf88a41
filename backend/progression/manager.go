package progression

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists and restores progress snapshots. Load never fails: absence
// or corruption of stored state yields the zero-valued default.
type Store interface {
	Load(userID uint) Progress
	Save(userID uint, p Progress) error
}

// CatalogProvider supplies the read-only course catalog summaries badge
// predicates run against.
type CatalogProvider interface {
	CourseSummaries() []CourseInfo
}

// SubmitOutcome is returned from a quiz submission. On a correct answer the
// progress counters already reflect it and any newly earned badges are
// listed; on a wrong answer the user is expected to review the lesson and a
// fresh attempt is presented on the next submission.
type SubmitOutcome struct {
	Result    QuizResult `json:"result"`
	NewBadges []string   `json:"new_badges,omitempty"`
}

// AdvanceOutcome describes the bookkeeping of one Advance call.
type AdvanceOutcome struct {
	Index          int      `json:"index"`
	CourseComplete bool     `json:"course_complete"`
	XPAwarded      int      `json:"xp_awarded"`
	NewBadges      []string `json:"new_badges,omitempty"`
	XP             int      `json:"xp"`
	Level          int      `json:"level"`
	Streak         int      `json:"streak"`
}

// Manager owns the active course sessions, keyed by opaque uuid tokens, and
// wires every state transition through the store, the badge engine and the
// streak tracker.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*CourseSession

	store     Store
	badges    *BadgeEngine
	catalog   CatalogProvider
	autoDelay time.Duration

	// now is swappable so tests can pin the calendar day.
	now func() time.Time
}

func NewManager(store Store, badges *BadgeEngine, catalog CatalogProvider, autoDelay time.Duration) *Manager {
	return &Manager{
		sessions:  map[string]*CourseSession{},
		store:     store,
		badges:    badges,
		catalog:   catalog,
		autoDelay: autoDelay,
		now:       time.Now,
	}
}

// Start opens a session for a course, resuming at the last saved lesson
// index. Opening a course also records it as started, which feeds the
// explorer badge.
func (m *Manager) Start(userID uint, course Course) (*CourseSession, []string, error) {
	if len(course.Lessons) == 0 {
		return nil, nil, ErrInvalidInput
	}

	p := m.store.Load(userID)
	p.StartCourse(course.ID)
	newBadges := m.badges.Evaluate(&p, m.catalog.CourseSummaries())
	saveErr := m.store.Save(userID, p)

	session := newCourseSession(uuid.NewString(), userID, course, p.Positions[course.ID])

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()

	return session, newBadges, saveErr
}

// Get returns the session for a token.
func (m *Manager) Get(token string) (*CourseSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// End discards a session and cancels any pending auto-advance.
func (m *Manager) End(token string) {
	m.mu.Lock()
	session, ok := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()
	if ok {
		session.mu.Lock()
		session.cancelPending()
		session.mu.Unlock()
	}
}

// SubmitQuiz scores an answer for the current lesson's quiz. A correct
// answer marks the quiz passed for the next Advance, bumps the quiz
// counters and schedules the deferred auto-advance. A wrong answer consumes
// the attempt; the next submission runs against a fresh presentation.
func (m *Manager) SubmitQuiz(token string, selected int) (SubmitOutcome, error) {
	session, err := m.Get(token)
	if err != nil {
		return SubmitOutcome{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.complete {
		return SubmitOutcome{}, ErrInvalidState
	}
	lesson := session.Course.Lessons[session.index]
	if lesson.Quiz == nil {
		return SubmitOutcome{}, ErrInvalidState
	}
	if session.quiz == nil {
		session.quiz = NewQuizRunner(*lesson.Quiz)
	}

	result, err := session.quiz.Submit(selected)
	if err != nil {
		return SubmitOutcome{}, err
	}

	outcome := SubmitOutcome{Result: result}
	if result.Correct {
		session.quizPassed = true
		p := m.store.Load(session.UserID)
		p.QuizCorrect++
		if session.firstTry {
			p.FirstTryCorrect++
		}
		outcome.NewBadges = m.badges.Evaluate(&p, m.catalog.CourseSummaries())
		if err := m.store.Save(session.UserID, p); err != nil {
			return outcome, err
		}
		m.scheduleAutoAdvance(session)
	} else {
		// Back to the lesson for review; the retry is no longer a
		// first attempt.
		session.firstTry = false
		session.quiz = nil
	}
	return outcome, nil
}

// Advance performs the completion bookkeeping for the current lesson and
// moves the session forward. It requires the lesson's quiz, if any, to have
// been passed in this advancement attempt; otherwise it fails with
// ErrInvalidState and nothing changes. The terminal CourseComplete state is
// entered only once every lesson of the course is completed.
func (m *Manager) Advance(token string) (AdvanceOutcome, error) {
	return m.advance(token, -1)
}

// advance is Advance plus the generation guard for deferred auto-advances:
// gen >= 0 means the call was scheduled, and it is dropped when a
// cancellation happened between scheduling and acquiring the session lock.
func (m *Manager) advance(token string, gen int) (AdvanceOutcome, error) {
	session, err := m.Get(token)
	if err != nil {
		return AdvanceOutcome{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if gen >= 0 && gen != session.gen {
		return AdvanceOutcome{}, ErrInvalidState
	}
	if session.complete {
		return AdvanceOutcome{}, ErrInvalidState
	}
	lesson := session.Course.Lessons[session.index]
	if lesson.Quiz != nil && !session.quizPassed {
		return AdvanceOutcome{}, ErrInvalidState
	}
	session.cancelPending()

	now := m.now()
	p := m.store.Load(session.UserID)

	outcome := AdvanceOutcome{}
	courseID := session.Course.ID
	if p.CompleteLesson(courseID, session.index) {
		p.CountLessonToday(now.Format(DateLayout))
		p.AddXP(LessonXP)
		outcome.XPAwarded += LessonXP
		if len(p.CompletedLessons[courseID]) == len(session.Course.Lessons) {
			p.AddXP(CourseBonusXP)
			outcome.XPAwarded += CourseBonusXP
		}
	}
	UpdateStreak(&p, now)

	if session.index+1 < len(session.Course.Lessons) {
		session.moveTo(session.index + 1)
		p.Positions[courseID] = session.index
	} else if len(p.CompletedLessons[courseID]) == len(session.Course.Lessons) {
		session.complete = true
		session.quiz = nil
		session.quizPassed = false
	} else {
		// Jumped ahead: lessons were skipped, so this is not the end of
		// the course. Stay on the last lesson; the open ones are reached
		// by navigating back.
		session.quiz = nil
		session.quizPassed = false
		session.firstTry = true
	}

	outcome.NewBadges = m.badges.Evaluate(&p, m.catalog.CourseSummaries())
	saveErr := m.store.Save(session.UserID, p)

	outcome.Index = session.index
	outcome.CourseComplete = session.complete
	outcome.XP = p.XP
	outcome.Level = p.Level
	outcome.Streak = p.Streak
	return outcome, saveErr
}

// Retreat steps back one lesson for review. Valid only past the first
// lesson; never touches completion state or XP.
func (m *Manager) Retreat(token string) (int, error) {
	session, err := m.Get(token)
	if err != nil {
		return 0, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.index == 0 {
		return 0, ErrInvalidState
	}
	session.moveTo(session.index - 1)
	return session.index, nil
}

// Goto jumps to an arbitrary lesson index, e.g. from a lesson list. Allowed
// in any state; marks nothing complete. The saved resume position follows
// the jump, and jumping out of a finished course reopens it for review.
func (m *Manager) Goto(token string, index int) (int, error) {
	session, err := m.Get(token)
	if err != nil {
		return 0, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if index < 0 || index >= len(session.Course.Lessons) {
		return 0, ErrInvalidInput
	}
	session.moveTo(index)

	p := m.store.Load(session.UserID)
	p.Positions[session.Course.ID] = index
	if err := m.store.Save(session.UserID, p); err != nil {
		return session.index, err
	}
	return session.index, nil
}

func (m *Manager) scheduleAutoAdvance(session *CourseSession) {
	if m.autoDelay <= 0 {
		return
	}
	session.cancelPending()
	token := session.Token
	gen := session.gen
	session.pendingAuto = ScheduleAutoAdvance(m.autoDelay, func() {
		// Best effort: the generation guard inside advance drops the
		// transition when the user navigated away in the meantime, even
		// when the cancellation lands after this callback has started.
		m.advance(token, gen)
	})
}
