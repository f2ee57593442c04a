package domain

import (
	"database/sql"
	"strconv"
	"testing"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/testutil"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestNotificationDomain() *notificationDomain {
	return NewNotificationDomain(
		repository.NewNotificationRepository(),
		repository.NewUserRepository(&testutil.MockRedisClient{}),
	)
}

func Test_notificationDomain_flow(t *testing.T) {
	ctx := testutil.MockContext()
	recipient, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	actor, err := testutil.SampleUser(ctx, &entity.User{FirstName: "Lena"})
	require.NoError(t, err)

	notificationRepo := repository.NewNotificationRepository()
	notification := &entity.Notification{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		RecipientID:   recipient.ID,
		ActorID:       actor.ID,
		ActivityID:    sql.NullInt64{Valid: true, Int64: 42},
		Type:          entity.NotificationReaction,
		Message:       "Lena reacted 🔥 to your activity",
	}
	require.NoError(t, notificationRepo.Create(ctx, notification))

	notificationDomain := newTestNotificationDomain()
	recipientCtx := xcontext.WithRequestUserID(ctx, recipient.ID)

	list, err := notificationDomain.GetList(recipientCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	require.Equal(t, "Lena", list.Notifications[0].ActorName)
	require.False(t, list.Notifications[0].IsRead)

	count, err := notificationDomain.GetUnreadCount(recipientCtx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), count.Count)

	_, err = notificationDomain.MarkRead(recipientCtx, &model.MarkNotificationReadRequest{
		ID: list.Notifications[0].ID,
	})
	require.NoError(t, err)

	count, err = notificationDomain.GetUnreadCount(recipientCtx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), count.Count)
}

func Test_notificationDomain_MarkRead_gates(t *testing.T) {
	ctx := testutil.MockContext()
	recipient, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	other, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	notification := &entity.Notification{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		RecipientID:   recipient.ID,
		ActorID:       other.ID,
		Type:          entity.NotificationReaction,
		Message:       "hello",
	}
	require.NoError(t, repository.NewNotificationRepository().Create(ctx, notification))

	notificationDomain := newTestNotificationDomain()

	// Another user cannot read someone else's notification.
	otherCtx := xcontext.WithRequestUserID(ctx, other.ID)
	_, err = notificationDomain.MarkRead(otherCtx, &model.MarkNotificationReadRequest{
		ID: strconv.FormatInt(notification.ID, 10),
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found notification"), err)

	_, err = notificationDomain.MarkRead(otherCtx, &model.MarkNotificationReadRequest{ID: "abc"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid notification id"), err)
}

func Test_notificationDomain_MarkAllRead(t *testing.T) {
	ctx := testutil.MockContext()
	recipient, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	actor, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	notificationRepo := repository.NewNotificationRepository()
	for i := 0; i < 3; i++ {
		require.NoError(t, notificationRepo.Create(ctx, &entity.Notification{
			SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
			RecipientID:   recipient.ID,
			ActorID:       actor.ID,
			Type:          entity.NotificationReaction,
			Message:       "hello",
		}))
	}

	notificationDomain := newTestNotificationDomain()
	recipientCtx := xcontext.WithRequestUserID(ctx, recipient.ID)

	_, err = notificationDomain.MarkAllRead(recipientCtx, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)

	count, err := notificationDomain.GetUnreadCount(recipientCtx, &model.GetUnreadNotificationCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), count.Count)

	// Running again on an empty backlog is fine.
	_, err = notificationDomain.MarkAllRead(recipientCtx, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)
}
