package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type HabitEmojiCount struct {
	HabitID string
	Emoji   string
	Count   int64
}

type HabitReactionRepository interface {
	Create(ctx context.Context, data *entity.HabitReaction) (inserted bool, err error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, habitID, userID, emoji string) (*entity.HabitReaction, error)
	CountByHabit(ctx context.Context, habitID string) ([]HabitEmojiCount, error)
	GetByHabitAndUser(ctx context.Context, habitID, userID string) ([]entity.HabitReaction, error)
	DeleteByHabit(ctx context.Context, habitID string) error
}

type habitReactionRepository struct{}

func NewHabitReactionRepository() *habitReactionRepository {
	return &habitReactionRepository{}
}

func (r *habitReactionRepository) Create(ctx context.Context, data *entity.HabitReaction) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "habit_id"},
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

func (r *habitReactionRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.HabitReaction{}, "id=?", id).Error
}

func (r *habitReactionRepository) Get(
	ctx context.Context, habitID, userID, emoji string,
) (*entity.HabitReaction, error) {
	var result entity.HabitReaction
	err := xcontext.DB(ctx).
		Where("habit_id=? AND user_id=? AND emoji=?", habitID, userID, emoji).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *habitReactionRepository) CountByHabit(ctx context.Context, habitID string) ([]HabitEmojiCount, error) {
	var result []HabitEmojiCount
	err := xcontext.DB(ctx).Model(&entity.HabitReaction{}).
		Select("habit_id, emoji, COUNT(*) AS count").
		Where("habit_id=?", habitID).
		Group("habit_id, emoji").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *habitReactionRepository) GetByHabitAndUser(
	ctx context.Context, habitID, userID string,
) ([]entity.HabitReaction, error) {
	var result []entity.HabitReaction
	err := xcontext.DB(ctx).
		Where("habit_id=? AND user_id=?", habitID, userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *habitReactionRepository) DeleteByHabit(ctx context.Context, habitID string) error {
	return xcontext.DB(ctx).Delete(&entity.HabitReaction{}, "habit_id=?", habitID).Error
}
