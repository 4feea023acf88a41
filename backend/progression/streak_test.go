package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, value)
	assert.NoError(t, err)
	return parsed
}

func TestUpdateStreakFirstVisit(t *testing.T) {
	p := NewProgress()

	changed := UpdateStreak(&p, day(t, "2024-01-01"))

	assert.True(t, changed)
	assert.Equal(t, 1, p.Streak)
	assert.Equal(t, "2024-01-01", p.LastLoginDate)
}

func TestUpdateStreakConsecutiveDay(t *testing.T) {
	p := NewProgress()
	p.Streak = 5
	p.LastLoginDate = "2024-01-01"

	changed := UpdateStreak(&p, day(t, "2024-01-02"))

	assert.True(t, changed)
	assert.Equal(t, 6, p.Streak)
	assert.Equal(t, "2024-01-02", p.LastLoginDate)
}

func TestUpdateStreakGapResets(t *testing.T) {
	p := NewProgress()
	p.Streak = 5
	p.LastLoginDate = "2024-01-01"

	changed := UpdateStreak(&p, day(t, "2024-01-05"))

	assert.True(t, changed)
	assert.Equal(t, 1, p.Streak)
	assert.Equal(t, "2024-01-05", p.LastLoginDate)
}

func TestUpdateStreakSameDayIsNoOp(t *testing.T) {
	p := NewProgress()
	p.Streak = 5
	p.LastLoginDate = "2024-01-01"

	changed := UpdateStreak(&p, day(t, "2024-01-02"))
	assert.True(t, changed)
	assert.Equal(t, 6, p.Streak)

	// Second call within the same calendar day changes nothing.
	changed = UpdateStreak(&p, day(t, "2024-01-02"))
	assert.False(t, changed)
	assert.Equal(t, 6, p.Streak)
}

func TestUpdateStreakMonthBoundary(t *testing.T) {
	p := NewProgress()
	p.Streak = 3
	p.LastLoginDate = "2024-01-31"

	UpdateStreak(&p, day(t, "2024-02-01"))

	assert.Equal(t, 4, p.Streak)
}

func TestStreakExpired(t *testing.T) {
	p := NewProgress()
	p.Streak = 4
	p.LastLoginDate = "2024-01-01"

	assert.False(t, StreakExpired(&p, day(t, "2024-01-01")))
	assert.False(t, StreakExpired(&p, day(t, "2024-01-02")))
	assert.True(t, StreakExpired(&p, day(t, "2024-01-03")))

	fresh := NewProgress()
	assert.False(t, StreakExpired(&fresh, day(t, "2024-01-03")))
}
