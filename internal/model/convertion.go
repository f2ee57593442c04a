package model

import (
	"strconv"
	"time"

	"github.com/habitgram/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:         user.ID,
		TelegramID: user.TelegramID.Int64,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		PhotoURL:   user.PhotoURL,
		Language:   user.Language,
	}
}

func ConvertFriend(user *entity.User) Friend {
	if user == nil {
		return Friend{}
	}

	return Friend{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		PhotoURL:  user.PhotoURL,
	}
}

func ConvertHabit(habit *entity.Habit, currentStreak, bestStreak int) Habit {
	if habit == nil {
		return Habit{}
	}

	return Habit{
		ID:            habit.ID,
		Title:         habit.Title,
		Type:          string(habit.Type),
		TimesPerWeek:  habit.TimesPerWeek,
		Color:         habit.Color,
		Icon:          habit.Icon,
		Archived:      habit.Archived,
		CurrentStreak: currentStreak,
		BestStreak:    bestStreak,
		CreatedAt:     habit.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertCompletion(completion *entity.HabitCompletion) Completion {
	if completion == nil {
		return Completion{}
	}

	return Completion{
		ID:        completion.ID,
		Date:      completion.Date,
		Completed: completion.Completed,
		CreatedAt: completion.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertActivity(
	activity *entity.ActivityLog,
	author *entity.User,
	requestUserID string,
	reactions []ReactionSummary,
) Activity {
	if activity == nil {
		return Activity{}
	}

	if reactions == nil {
		reactions = []ReactionSummary{}
	}

	converted := Activity{
		ID:        strconv.FormatInt(activity.ID, 10),
		UserID:    activity.UserID,
		Mine:      activity.UserID == requestUserID,
		Type:      string(activity.Type),
		Message:   activity.Message,
		CreatedAt: activity.CreatedAt.Format(DefaultTimeLayout),
		Reactions: reactions,
	}

	if activity.HabitID.Valid {
		converted.HabitID = activity.HabitID.String
	}

	if author != nil {
		converted.UserName = author.DisplayName()
		converted.UserPhotoURL = author.PhotoURL
	}

	return converted
}

func ConvertNotification(notification *entity.Notification, actor *entity.User) Notification {
	if notification == nil {
		return Notification{}
	}

	converted := Notification{
		ID:        strconv.FormatInt(notification.ID, 10),
		Type:      string(notification.Type),
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		ActorID:   notification.ActorID,
		CreatedAt: notification.CreatedAt.Format(DefaultTimeLayout),
	}

	if notification.ActivityID.Valid {
		converted.ActivityID = strconv.FormatInt(notification.ActivityID.Int64, 10)
	}

	if actor != nil {
		converted.ActorName = actor.DisplayName()
		converted.ActorPhotoURL = actor.PhotoURL
	}

	return converted
}
