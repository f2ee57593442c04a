package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
)

type HabitRepository interface {
	Create(ctx context.Context, data *entity.Habit) error
	Update(ctx context.Context, data *entity.Habit) error
	Delete(ctx context.Context, id string) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Habit, error)
	GetListByUser(ctx context.Context, userID string) ([]entity.Habit, error)
	GetActiveByUser(ctx context.Context, userID string) ([]entity.Habit, error)
}

type habitRepository struct{}

func NewHabitRepository() *habitRepository {
	return &habitRepository{}
}

func (r *habitRepository) Create(ctx context.Context, data *entity.Habit) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *habitRepository) Update(ctx context.Context, data *entity.Habit) error {
	return xcontext.DB(ctx).Model(&entity.Habit{}).
		Where("id=?", data.ID).
		Updates(map[string]any{
			"title":          data.Title,
			"type":           data.Type,
			"times_per_week": data.TimesPerWeek,
			"color":          data.Color,
			"icon":           data.Icon,
			"archived":       data.Archived,
		}).Error
}

func (r *habitRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Habit{}, "id=?", id).Error
}

func (r *habitRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Habit, error) {
	var result entity.Habit
	err := xcontext.DB(ctx).Where("id=? AND user_id=?", id, userID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *habitRepository) GetListByUser(ctx context.Context, userID string) ([]entity.Habit, error) {
	var result []entity.Habit
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *habitRepository) GetActiveByUser(ctx context.Context, userID string) ([]entity.Habit, error) {
	var result []entity.Habit
	err := xcontext.DB(ctx).
		Where("user_id=? AND archived=?", userID, false).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
