package store

import (
	"testing"

	"cosmolearn/backend/models"
	"cosmolearn/backend/progression"
	"cosmolearn/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))
	return db
}

func TestLoadReturnsDefaultWhenAbsent(t *testing.T) {
	s := NewProgressStore(testDB(t), nil)

	p := s.Load(1)

	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.Streak)
	assert.Empty(t, p.CompletedLessons)
	assert.Empty(t, p.Badges)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewProgressStore(testDB(t), nil)

	p := progression.NewProgress()
	p.CompleteLesson("3", 0)
	p.CompleteLesson("3", 1)
	p.AddXP(275)
	p.Streak = 4
	p.LastLoginDate = "2024-06-01"
	p.Badges = append(p.Badges, progression.BadgeFirstLesson)
	p.StartCourse("3")
	p.QuizCorrect = 2
	p.FirstTryCorrect = 1
	p.Positions["3"] = 2
	p.CountLessonToday("2024-06-01")

	require.NoError(t, s.Save(7, p))
	loaded := s.Load(7)

	assert.Equal(t, p, loaded)
}

func TestSaveOverwritesLastWriteWins(t *testing.T) {
	s := NewProgressStore(testDB(t), nil)

	first := progression.NewProgress()
	first.AddXP(50)
	require.NoError(t, s.Save(7, first))

	second := progression.NewProgress()
	second.AddXP(125)
	require.NoError(t, s.Save(7, second))

	loaded := s.Load(7)
	assert.Equal(t, 125, loaded.XP)
	assert.Equal(t, 2, loaded.Level)
}

func TestLoadMalformedBlobFallsBackToDefault(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.ProgressRecord{
		UserID: 9,
		Data:   "{not json",
	}).Error)

	s := NewProgressStore(db, nil)
	p := s.Load(9)

	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 1, p.Level)
}

func TestLoadRecomputesLevelFromXP(t *testing.T) {
	db := testDB(t)
	// A blob with a stale level field: level must be rederived from xp.
	require.NoError(t, db.Create(&models.ProgressRecord{
		UserID: 9,
		Data:   `{"completedLessons":{},"xp":250,"level":1,"streak":0,"badges":[]}`,
	}).Error)

	s := NewProgressStore(db, nil)
	p := s.Load(9)

	assert.Equal(t, 250, p.XP)
	assert.Equal(t, 3, p.Level)
}

func TestReset(t *testing.T) {
	s := NewProgressStore(testDB(t), nil)

	p := progression.NewProgress()
	p.AddXP(500)
	require.NoError(t, s.Save(7, p))

	require.NoError(t, s.Reset(7))

	loaded := s.Load(7)
	assert.Equal(t, 0, loaded.XP)
	assert.Equal(t, 1, loaded.Level)
}

func TestDegradedStoreServesFromCache(t *testing.T) {
	db := testDB(t)
	notifier := &countingNotifier{}
	s := NewProgressStore(db, notifier)

	p := progression.NewProgress()
	p.AddXP(75)
	require.NoError(t, s.Save(7, p))

	// Drop the backing table so the next DB touch fails.
	require.NoError(t, db.Migrator().DropTable(&models.ProgressRecord{}))

	loaded := s.Load(7)
	assert.Equal(t, 75, loaded.XP)
	assert.True(t, s.Degraded())

	// Writes keep landing in the cache and report the degradation.
	loaded.AddXP(25)
	err := s.Save(7, loaded)
	assert.ErrorIs(t, err, progression.ErrStorageUnavailable)
	assert.Equal(t, 100, s.Load(7).XP)

	// The user is informed once, not on every attempt.
	s.Save(7, loaded)
	s.Load(7)
	assert.Equal(t, 1, notifier.count)
}

type countingNotifier struct {
	count int
}

func (n *countingNotifier) Notify(title, message string) {
	n.count++
}
