package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
)

const notificationLimit = 100

type NotificationRepository interface {
	Create(ctx context.Context, data *entity.Notification) error
	// GetListByRecipient returns the most recent rows, newest first.
	GetListByRecipient(ctx context.Context, recipientID string) ([]entity.Notification, error)
	// MarkRead flips a single row owned by the recipient; a foreign id
	// affects no rows.
	MarkRead(ctx context.Context, recipientID string, id int64) (updated bool, err error)
	MarkManyRead(ctx context.Context, recipientID string, ids []int64) error
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, data *entity.Notification) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *notificationRepository) GetListByRecipient(
	ctx context.Context, recipientID string,
) ([]entity.Notification, error) {
	var result []entity.Notification
	err := xcontext.DB(ctx).
		Where("recipient_id=?", recipientID).
		Order("created_at DESC, id DESC").
		Limit(notificationLimit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, recipientID string, id int64) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("id=? AND recipient_id=?", id, recipientID).
		Update("is_read", true)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *notificationRepository) MarkManyRead(ctx context.Context, recipientID string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("recipient_id=? AND id IN (?)", recipientID, ids).
		Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("recipient_id=? AND is_read=?", recipientID, false).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
