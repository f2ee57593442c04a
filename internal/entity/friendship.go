package entity

import "time"

// Friendship is one directed edge. A friendship exists when both
// directions do; symmetry is enforced at accept/remove time, not by the
// schema.
type Friendship struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	FriendID string `gorm:"primaryKey"`
	Friend   User   `gorm:"foreignKey:FriendID"`

	CreatedAt time.Time
}
