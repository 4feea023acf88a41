package scheduler

import (
	"encoding/json"
	"log"
	"time"

	"cosmolearn/backend/models"
	"cosmolearn/backend/progression"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// Scheduler runs daily housekeeping over stored progress: streaks whose
// last visit is two or more days old are zeroed, and per-day lesson
// counters from past days are cleared. Both would also self-correct on the
// user's next visit; the job keeps reporting endpoints honest in between.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
}

func New(db *gorm.DB) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
	}
}

// Start schedules the daily rollover just after midnight UTC and runs the
// scheduler in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("00:05").Do(s.Rollover)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Rollover performs one housekeeping pass. Exported so it can be triggered
// manually and tested without the scheduler.
func (s *Scheduler) Rollover() {
	now := time.Now()
	today := now.Format(progression.DateLayout)

	var records []models.ProgressRecord
	if err := s.db.Find(&records).Error; err != nil {
		log.Printf("rollover: could not load progress records: %v", err)
		return
	}

	updated := 0
	for _, record := range records {
		var p progression.Progress
		if err := json.Unmarshal([]byte(record.Data), &p); err != nil {
			log.Printf("rollover: skipping malformed blob for user %d: %v", record.UserID, err)
			continue
		}

		changed := false
		if progression.StreakExpired(&p, now) {
			p.Streak = 0
			changed = true
		}
		if p.Daily.Date != "" && p.Daily.Date != today {
			p.Daily = progression.DayCounter{}
			changed = true
		}
		if !changed {
			continue
		}

		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		if err := s.db.Model(&models.ProgressRecord{}).
			Where("user_id = ?", record.UserID).
			Update("data", string(data)).Error; err != nil {
			log.Printf("rollover: could not update user %d: %v", record.UserID, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("rollover: updated %d progress records", updated)
	}
}
