package progression

import "time"

// DateLayout is the calendar-date format used everywhere streaks are
// compared. No time component; the streak logic never looks at clocks.
const DateLayout = "2006-01-02"

// UpdateStreak applies the daily-visit streak rules to the snapshot:
//
//   - same calendar day as the last visit: no change
//   - exactly one day after the last visit: streak continues, +1
//   - any gap of two or more days, or no prior visit: streak resets to 1
//
// Returns true when the snapshot was modified. Calling it again within the
// same calendar day is a no-op, so running it at both login and lesson
// completion is safe.
func UpdateStreak(p *Progress, now time.Time) bool {
	today := now.Format(DateLayout)
	if p.LastLoginDate == today {
		return false
	}

	continued := false
	if p.LastLoginDate != "" {
		last, err := time.Parse(DateLayout, p.LastLoginDate)
		if err == nil && last.AddDate(0, 0, 1).Format(DateLayout) == today {
			continued = true
		}
	}

	if continued {
		p.Streak++
	} else {
		p.Streak = 1
	}
	p.LastLoginDate = today
	return true
}

// StreakExpired reports whether the stored streak can no longer be continued:
// the last visit was two or more days before now. Used by the housekeeping
// job to zero out dead streaks without waiting for the next login.
func StreakExpired(p *Progress, now time.Time) bool {
	if p.LastLoginDate == "" || p.Streak == 0 {
		return false
	}
	last, err := time.Parse(DateLayout, p.LastLoginDate)
	if err != nil {
		return true
	}
	today := now.Format(DateLayout)
	return last.Format(DateLayout) != today && last.AddDate(0, 0, 1).Format(DateLayout) != today
}
