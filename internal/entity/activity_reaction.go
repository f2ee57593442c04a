package entity

type ActivityReaction struct {
	Base

	ActivityID int64       `gorm:"uniqueIndex:idx_activity_reaction"`
	Activity   ActivityLog `gorm:"foreignKey:ActivityID"`

	UserID string `gorm:"uniqueIndex:idx_activity_reaction"`
	User   User   `gorm:"foreignKey:UserID"`

	Emoji string `gorm:"uniqueIndex:idx_activity_reaction;size:16"`
}
