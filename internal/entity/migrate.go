package entity

import (
	"context"

	"github.com/habitgram/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Habit{},
		&HabitCompletion{},
		&ActivityLog{},
		&Friendship{},
		&FriendInvite{},
		&ActivityReaction{},
		&HabitReaction{},
		&Notification{},
		&ReminderLog{},
	)
}
