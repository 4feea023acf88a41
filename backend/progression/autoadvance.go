package progression

import (
	"sync"
	"time"
)

// AutoAdvance is a cancelable deferred transition. After a correct quiz
// answer the session schedules one of these; navigating away cancels it so
// a stale timer can never move the session.
type AutoAdvance struct {
	mu       sync.Mutex
	timer    *time.Timer
	canceled bool
}

// ScheduleAutoAdvance runs fn after d unless canceled first.
func ScheduleAutoAdvance(d time.Duration, fn func()) *AutoAdvance {
	a := &AutoAdvance{}
	a.timer = time.AfterFunc(d, func() {
		a.mu.Lock()
		if a.canceled {
			a.mu.Unlock()
			return
		}
		a.mu.Unlock()
		fn()
	})
	return a
}

// Cancel suppresses the pending transition. Safe to call more than once and
// after the task has already fired. Best effort once fn has started running;
// callers that need a hard guarantee re-check under their own lock, as the
// session manager does with its generation counter.
func (a *AutoAdvance) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.canceled = true
	if a.timer != nil {
		a.timer.Stop()
	}
}
