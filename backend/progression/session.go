package progression

import "sync"

// Course is the static, read-only catalog structure the core consumes. The
// ID is the string key used inside progress blobs.
type Course struct {
	ID      string
	Title   string
	Lessons []Lesson
}

// Lesson is one content unit. Content is opaque to the core. A lesson may
// carry one quiz gating advancement.
type Lesson struct {
	ID      uint
	Title   string
	Content string
	Quiz    *Quiz
}

// CourseSession is the per-user, per-course progression state machine:
// OnLesson(i) for each lesson index, then a terminal CourseComplete state.
// One explicit session object per active course; there is no shared global
// state between sessions.
type CourseSession struct {
	Token  string
	UserID uint
	Course Course

	mu          sync.Mutex
	index       int
	complete    bool
	quiz        *QuizRunner
	quizPassed  bool
	firstTry    bool
	pendingAuto *AutoAdvance

	// gen is bumped on every cancellation; a scheduled auto-advance
	// carries the generation it was created under and is dropped when
	// they no longer match.
	gen int
}

func newCourseSession(token string, userID uint, course Course, startIndex int) *CourseSession {
	if startIndex < 0 || startIndex >= len(course.Lessons) {
		startIndex = 0
	}
	return &CourseSession{
		Token:    token,
		UserID:   userID,
		Course:   course,
		index:    startIndex,
		firstTry: true,
	}
}

// Index returns the current lesson index.
func (s *CourseSession) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Complete reports whether the session reached the terminal state.
func (s *CourseSession) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

// CurrentLesson returns the lesson the session points at.
func (s *CourseSession) CurrentLesson() Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Course.Lessons[s.index]
}

// moveTo repositions the session without completion side effects and drops
// any in-flight quiz attempt and pending auto-advance. Navigating out of the
// terminal state reopens the session for review. Caller holds the lock.
func (s *CourseSession) moveTo(index int) {
	s.cancelPending()
	s.index = index
	s.complete = false
	s.quiz = nil
	s.quizPassed = false
	s.firstTry = true
}

// cancelPending suppresses a scheduled auto-advance and invalidates its
// generation, so a timer that already fired and is waiting on the session
// lock is dropped too. Caller holds the lock.
func (s *CourseSession) cancelPending() {
	s.gen++
	if s.pendingAuto != nil {
		s.pendingAuto.Cancel()
		s.pendingAuto = nil
	}
}
