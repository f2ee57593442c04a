package entity

import (
	"database/sql"
	"time"
)

// FriendInvite is a time-boxed code. Expiry is the only exhaustion
// mechanism: a used code can be accepted again by other users until it
// expires. UsedAt is stamped on the first accept only.
type FriendInvite struct {
	Base

	Code string `gorm:"unique"`

	InviterID string `gorm:"index"`
	Inviter   User   `gorm:"foreignKey:InviterID"`

	ExpiresAt time.Time
	UsedAt    sql.NullTime
}
