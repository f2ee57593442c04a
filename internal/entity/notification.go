package entity

import (
	"database/sql"

	"github.com/habitgram/backend/pkg/enum"
)

type NotificationType string

var NotificationReaction = enum.New(NotificationType("REACTION"))

type Notification struct {
	SnowFlakeBase

	RecipientID string `gorm:"index"`
	Recipient   User   `gorm:"foreignKey:RecipientID"`

	ActorID string
	Actor   User `gorm:"foreignKey:ActorID"`

	ActivityID sql.NullInt64

	Type    NotificationType
	Message string
	IsRead  bool
}
