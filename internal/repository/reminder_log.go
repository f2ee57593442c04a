package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ReminderLogRepository interface {
	// Create records that a reminder went out; a concurrent run loses the
	// insert and skips sending.
	Create(ctx context.Context, data *entity.ReminderLog) (inserted bool, err error)
	Exist(ctx context.Context, userID, date string) (bool, error)
}

type reminderLogRepository struct{}

func NewReminderLogRepository() *reminderLogRepository {
	return &reminderLogRepository{}
}

func (r *reminderLogRepository) Create(ctx context.Context, data *entity.ReminderLog) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "date"},
			},
			DoNothing: true,
		}).Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *reminderLogRepository) Exist(ctx context.Context, userID, date string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ReminderLog{}).
		Where("user_id=? AND date=?", userID, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
