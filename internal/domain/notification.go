package domain

import (
	"context"
	"strconv"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/xcontext"
)

type NotificationDomain interface {
	GetList(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	GetUnreadCount(context.Context, *model.GetUnreadNotificationCountRequest) (*model.GetUnreadNotificationCountResponse, error)
	MarkRead(context.Context, *model.MarkNotificationReadRequest) (*model.MarkNotificationReadResponse, error)
	MarkAllRead(context.Context, *model.MarkAllNotificationsReadRequest) (*model.MarkAllNotificationsReadResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo, userRepo: userRepo}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	notifications, err := d.notificationRepo.GetListByRecipient(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	actorIDs := []string{}
	seenActors := map[string]bool{}
	for _, n := range notifications {
		if !seenActors[n.ActorID] {
			seenActors[n.ActorID] = true
			actorIDs = append(actorIDs, n.ActorID)
		}
	}

	actors, err := d.userRepo.GetByIDs(ctx, actorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notification actors: %v", err)
		return nil, errorx.Unknown
	}

	actorMap := map[string]*entity.User{}
	for i := range actors {
		actorMap[actors[i].ID] = &actors[i]
	}

	converted := []model.Notification{}
	for i := range notifications {
		converted = append(converted, model.ConvertNotification(
			&notifications[i], actorMap[notifications[i].ActorID]))
	}

	return &model.GetNotificationsResponse{Notifications: converted}, nil
}

func (d *notificationDomain) GetUnreadCount(
	ctx context.Context, req *model.GetUnreadNotificationCountRequest,
) (*model.GetUnreadNotificationCountResponse, error) {
	count, err := d.notificationRepo.CountUnread(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUnreadNotificationCountResponse{Count: count}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationReadRequest,
) (*model.MarkNotificationReadResponse, error) {
	notificationID, err := strconv.ParseInt(req.ID, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid notification id")
	}

	updated, err := d.notificationRepo.MarkRead(ctx, xcontext.RequestUserID(ctx), notificationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notification read: %v", err)
		return nil, errorx.Unknown
	}

	// The recipient filter of the update hides other users' notifications,
	// an unmatched id looks the same as a missing one.
	if !updated {
		return nil, errorx.New(errorx.NotFound, "Not found notification")
	}

	return &model.MarkNotificationReadResponse{}, nil
}

// MarkAllRead clears the unread flag on the same window GetList serves, the
// hundred most recent notifications.
func (d *notificationDomain) MarkAllRead(
	ctx context.Context, req *model.MarkAllNotificationsReadRequest,
) (*model.MarkAllNotificationsReadResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetListByRecipient(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	unreadIDs := []int64{}
	for _, n := range notifications {
		if !n.IsRead {
			unreadIDs = append(unreadIDs, n.ID)
		}
	}

	if len(unreadIDs) > 0 {
		if err := d.notificationRepo.MarkManyRead(ctx, requestUserID, unreadIDs); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark notifications read: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.MarkAllNotificationsReadResponse{}, nil
}
