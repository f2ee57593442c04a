package entity

import "github.com/habitgram/backend/pkg/enum"

type HabitType string

var (
	HabitDaily  = enum.New(HabitType("DAILY"))
	HabitWeekly = enum.New(HabitType("WEEKLY"))
)

type Habit struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Title string
	Type  HabitType

	// TimesPerWeek is set iff Type is WEEKLY.
	TimesPerWeek *int

	Color    string
	Icon     string
	Archived bool
}
