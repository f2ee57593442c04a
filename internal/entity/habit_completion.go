package entity

type HabitCompletion struct {
	Base

	HabitID string `gorm:"uniqueIndex:idx_completion_habit_date"`
	Habit   Habit  `gorm:"foreignKey:HabitID"`

	// Date is a plain YYYY-MM-DD calendar day, already resolved to the
	// owner's day by the caller. Lexicographic order is date order.
	Date      string `gorm:"uniqueIndex:idx_completion_habit_date;size:10"`
	Completed bool
}
