package models

import "gorm.io/gorm"

// ProgressRecord is the durable form of a user's progress: one JSON blob per
// user, overwritten whole on every save. Last write wins; there is no merge.
type ProgressRecord struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null"`
	Data   string // JSON progression.Progress snapshot
}
