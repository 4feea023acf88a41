package export

import (
	"encoding/json"
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

func TestBuildProgressWorkbook(t *testing.T) {
	db := testDB(t)

	user := models.User{Username: "stella", Email: "stella@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	p := progression.NewProgress()
	p.AddXP(250)
	p.Streak = 3
	p.CompleteLesson("1", 0)
	p.CompleteLesson("1", 1)
	p.Badges = append(p.Badges, progression.BadgeFirstLesson)
	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.ProgressRecord{UserID: user.ID, Data: string(data)}).Error)

	f, err := BuildProgressWorkbook(db)
	require.NoError(t, err)

	header, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Username", header)

	username, _ := f.GetCellValue(sheetName, "B2")
	assert.Equal(t, "stella", username)
	xp, _ := f.GetCellValue(sheetName, "C2")
	assert.Equal(t, "250", xp)
	level, _ := f.GetCellValue(sheetName, "D2")
	assert.Equal(t, "3", level)
	lessons, _ := f.GetCellValue(sheetName, "G2")
	assert.Equal(t, "2", lessons)
	badges, _ := f.GetCellValue(sheetName, "H2")
	assert.Equal(t, progression.BadgeFirstLesson, badges)
}

func TestBuildProgressWorkbookSkipsUsersWithoutProgress(t *testing.T) {
	db := testDB(t)

	user := models.User{Username: "nova", Email: "nova@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	f, err := BuildProgressWorkbook(db)
	require.NoError(t, err)

	value, _ := f.GetCellValue(sheetName, "B2")
	assert.Empty(t, value)
}
