package entity

import "time"

// ReminderLog ensures at most one bot reminder per user per calendar day.
type ReminderLog struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_reminder_user_date"`
	User   User   `gorm:"foreignKey:UserID"`

	Date   string `gorm:"uniqueIndex:idx_reminder_user_date;size:10"`
	SentAt time.Time
}
