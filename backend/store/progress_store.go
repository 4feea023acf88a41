package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"cosmolearn/backend/models"
	"cosmolearn/backend/progression"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressStore persists progression snapshots as one JSON blob per user.
//
// Load never fails: a missing row and a malformed blob both yield the
// zero-valued default snapshot. When the database becomes unreachable the
// store degrades to its in-memory cache, informs the user once through the
// notifier and keeps the session running; only durability across restarts
// is lost.
type ProgressStore struct {
	db       *gorm.DB
	notifier progression.Notifier

	mu       sync.Mutex
	cache    map[uint]progression.Progress
	degraded bool
}

func NewProgressStore(db *gorm.DB, notifier progression.Notifier) *ProgressStore {
	return &ProgressStore{
		db:       db,
		notifier: notifier,
		cache:    map[uint]progression.Progress{},
	}
}

// Load returns the stored snapshot for a user, or the default when nothing
// usable is stored.
func (s *ProgressStore) Load(userID uint) progression.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.degraded {
		if p, ok := s.cache[userID]; ok {
			return p
		}
		return progression.NewProgress()
	}

	var record models.ProgressRecord
	if err := s.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.degrade(err)
			if p, ok := s.cache[userID]; ok {
				return p
			}
		}
		return progression.NewProgress()
	}

	var p progression.Progress
	if err := json.Unmarshal([]byte(record.Data), &p); err != nil {
		// A corrupt blob is treated as absent, not as a fatal error.
		log.Printf("progress blob for user %d is malformed, resetting: %v", userID, err)
		return progression.NewProgress()
	}
	if p.CompletedLessons == nil {
		p.CompletedLessons = map[string][]int{}
	}
	if p.Positions == nil {
		p.Positions = map[string]int{}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	// Level is derived; never trust the stored value.
	p.Level = progression.LevelForXP(p.XP)
	return p
}

// Save overwrites the stored snapshot for a user. The cache is updated
// first so a degraded store still serves the latest state.
func (s *ProgressStore) Save(userID uint, p progression.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[userID] = p

	if s.degraded {
		return progression.ErrStorageUnavailable
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	record := models.ProgressRecord{UserID: userID, Data: string(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		s.degrade(err)
		return progression.ErrStorageUnavailable
	}
	return nil
}

// Reset drops a user's stored progress. The only path on which XP may
// decrease.
func (s *ProgressStore) Reset(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, userID)
	if s.degraded {
		return progression.ErrStorageUnavailable
	}
	if err := s.db.Where("user_id = ?", userID).Delete(&models.ProgressRecord{}).Error; err != nil {
		s.degrade(err)
		return progression.ErrStorageUnavailable
	}
	return nil
}

// Degraded reports whether the store has fallen back to memory.
func (s *ProgressStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// degrade flips the store into in-memory mode. Caller holds the lock. The
// user is informed once, not on every write attempt.
func (s *ProgressStore) degrade(cause error) {
	if s.degraded {
		return
	}
	s.degraded = true
	log.Printf("progress store degraded to in-memory: %v", cause)
	if s.notifier != nil {
		s.notifier.Notify("Storage unavailable", "Progress will not be saved across restarts")
	}
}
