package entity

import (
	"database/sql"

	"github.com/habitgram/backend/pkg/enum"
)

type ActivityType string

var (
	ActivityCompleted = enum.New(ActivityType("COMPLETED"))
	ActivityStreak    = enum.New(ActivityType("STREAK"))
	ActivityRecord    = enum.New(ActivityType("RECORD"))
)

// ActivityLog is append-only. Rows are never updated; the only delete path
// is the cascade when the referenced habit is removed.
type ActivityLog struct {
	SnowFlakeBase

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	HabitID sql.NullString `gorm:"index"`

	Type    ActivityType
	Message string
}
