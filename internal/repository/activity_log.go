package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
)

const feedLimit = 100

type ActivityLogRepository interface {
	Create(ctx context.Context, data *entity.ActivityLog) error
	GetByID(ctx context.Context, id int64) (*entity.ActivityLog, error)
	// GetFeed returns the most recent rows across the whole visibility
	// set, not per member. Snowflake id breaks created_at ties stably.
	GetFeed(ctx context.Context, userIDs []string) ([]entity.ActivityLog, error)
	GetListByUser(ctx context.Context, userID string) ([]entity.ActivityLog, error)
	DeleteByHabit(ctx context.Context, habitID string) error
}

type activityLogRepository struct{}

func NewActivityLogRepository() *activityLogRepository {
	return &activityLogRepository{}
}

func (r *activityLogRepository) Create(ctx context.Context, data *entity.ActivityLog) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *activityLogRepository) GetByID(ctx context.Context, id int64) (*entity.ActivityLog, error) {
	var result entity.ActivityLog
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *activityLogRepository) GetFeed(ctx context.Context, userIDs []string) ([]entity.ActivityLog, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var result []entity.ActivityLog
	err := xcontext.DB(ctx).
		Where("user_id IN (?)", userIDs).
		Order("created_at DESC, id DESC").
		Limit(feedLimit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityLogRepository) GetListByUser(ctx context.Context, userID string) ([]entity.ActivityLog, error) {
	var result []entity.ActivityLog
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC, id DESC").
		Limit(feedLimit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityLogRepository) DeleteByHabit(ctx context.Context, habitID string) error {
	return xcontext.DB(ctx).Delete(&entity.ActivityLog{}, "habit_id=?", habitID).Error
}
