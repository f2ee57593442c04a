package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ActivityEmojiCount struct {
	ActivityID int64
	Emoji      string
	Count      int64
}

type ActivityReactionRepository interface {
	Create(ctx context.Context, data *entity.ActivityReaction) (inserted bool, err error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, activityID int64, userID, emoji string) (*entity.ActivityReaction, error)
	CountByActivityIDs(ctx context.Context, activityIDs []int64) ([]ActivityEmojiCount, error)
	GetByActivityIDsAndUser(ctx context.Context, activityIDs []int64, userID string) ([]entity.ActivityReaction, error)
	DeleteByHabit(ctx context.Context, habitID string) error
}

type activityReactionRepository struct{}

func NewActivityReactionRepository() *activityReactionRepository {
	return &activityReactionRepository{}
}

func (r *activityReactionRepository) Create(ctx context.Context, data *entity.ActivityReaction) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "activity_id"},
				{Name: "user_id"},
				{Name: "emoji"},
			},
			DoNothing: true,
		}).Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *activityReactionRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.ActivityReaction{}, "id=?", id).Error
}

func (r *activityReactionRepository) Get(
	ctx context.Context, activityID int64, userID, emoji string,
) (*entity.ActivityReaction, error) {
	var result entity.ActivityReaction
	err := xcontext.DB(ctx).
		Where("activity_id=? AND user_id=? AND emoji=?", activityID, userID, emoji).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *activityReactionRepository) CountByActivityIDs(
	ctx context.Context, activityIDs []int64,
) ([]ActivityEmojiCount, error) {
	if len(activityIDs) == 0 {
		return nil, nil
	}

	var result []ActivityEmojiCount
	err := xcontext.DB(ctx).Model(&entity.ActivityReaction{}).
		Select("activity_id, emoji, COUNT(*) AS count").
		Where("activity_id IN (?)", activityIDs).
		Group("activity_id, emoji").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityReactionRepository) GetByActivityIDsAndUser(
	ctx context.Context, activityIDs []int64, userID string,
) ([]entity.ActivityReaction, error) {
	if len(activityIDs) == 0 {
		return nil, nil
	}

	var result []entity.ActivityReaction
	err := xcontext.DB(ctx).
		Where("activity_id IN (?) AND user_id=?", activityIDs, userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityReactionRepository) DeleteByHabit(ctx context.Context, habitID string) error {
	sub := xcontext.DB(ctx).Model(&entity.ActivityLog{}).
		Select("id").
		Where("habit_id=?", habitID)

	return xcontext.DB(ctx).
		Delete(&entity.ActivityReaction{}, "activity_id IN (?)", sub).Error
}
