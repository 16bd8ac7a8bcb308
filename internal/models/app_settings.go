package models

import "time"

type AppSettings struct {
	ID        uint   `gorm:"primaryKey"` // single-row table (ID=1)
	Version   int    `gorm:"not null;default:1"`
	Theme     string `gorm:"not null;default:system"` // "light" | "dark" | "system"
	Locale    string `gorm:"not null;default:ar"`
	ModelName string `gorm:"not null;default:gemini-2.5-flash"`
	// DraftJSON holds the last submitted form so it survives a restart.
	DraftJSON string `gorm:"type:text"`
	UpdatedAt time.Time
}
