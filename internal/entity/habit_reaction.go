package entity

type HabitReaction struct {
	Base

	HabitID string `gorm:"uniqueIndex:idx_habit_reaction"`
	Habit   Habit  `gorm:"foreignKey:HabitID"`

	UserID string `gorm:"uniqueIndex:idx_habit_reaction"`
	User   User   `gorm:"foreignKey:UserID"`

	Emoji string `gorm:"uniqueIndex:idx_habit_reaction;size:16"`
}
