package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"cosmolearn/backend/models"
	"cosmolearn/backend/progression"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const sheetName = "Progress"

// BuildProgressWorkbook renders every user's progress into an xlsx workbook
// for the admin analytics export.
func BuildProgressWorkbook(db *gorm.DB) (*excelize.File, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"User ID", "Username", "XP", "Level", "Streak", "Last Login", "Lessons Completed", "Badges"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	for _, user := range users {
		var record models.ProgressRecord
		if err := db.Where("user_id = ?", user.ID).First(&record).Error; err != nil {
			continue
		}
		var p progression.Progress
		if err := json.Unmarshal([]byte(record.Data), &p); err != nil {
			continue
		}

		values := []interface{}{
			user.ID,
			user.Username,
			p.XP,
			progression.LevelForXP(p.XP),
			p.Streak,
			p.LastLoginDate,
			p.TotalCompleted(),
			strings.Join(p.Badges, ", "),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		row++
	}

	return f, nil
}
