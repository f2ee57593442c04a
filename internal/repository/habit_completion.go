package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type HabitCompletionRepository interface {
	// Create inserts the mark unless another request got there first; the
	// caller re-reads when no row was inserted.
	Create(ctx context.Context, data *entity.HabitCompletion) (inserted bool, err error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
	DeleteByHabit(ctx context.Context, habitID string) error
	GetByHabitAndDate(ctx context.Context, habitID, date string) (*entity.HabitCompletion, error)
	GetCompletedByHabit(ctx context.Context, habitID string) ([]entity.HabitCompletion, error)
	CountCompletedInRange(ctx context.Context, habitID, from, to string) (int64, error)
}

type habitCompletionRepository struct{}

func NewHabitCompletionRepository() *habitCompletionRepository {
	return &habitCompletionRepository{}
}

func (r *habitCompletionRepository) Create(ctx context.Context, data *entity.HabitCompletion) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "habit_id"},
				{Name: "date"},
			},
			DoNothing: true,
		}).Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *habitCompletionRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	return xcontext.DB(ctx).Model(&entity.HabitCompletion{}).
		Where("id=?", id).
		Update("completed", completed).Error
}

func (r *habitCompletionRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.HabitCompletion{}, "id=?", id).Error
}

func (r *habitCompletionRepository) DeleteByHabit(ctx context.Context, habitID string) error {
	return xcontext.DB(ctx).Delete(&entity.HabitCompletion{}, "habit_id=?", habitID).Error
}

func (r *habitCompletionRepository) GetByHabitAndDate(
	ctx context.Context, habitID, date string,
) (*entity.HabitCompletion, error) {
	var result entity.HabitCompletion
	err := xcontext.DB(ctx).Where("habit_id=? AND date=?", habitID, date).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *habitCompletionRepository) GetCompletedByHabit(
	ctx context.Context, habitID string,
) ([]entity.HabitCompletion, error) {
	var result []entity.HabitCompletion
	err := xcontext.DB(ctx).
		Where("habit_id=? AND completed=?", habitID, true).
		Order("date DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *habitCompletionRepository) CountCompletedInRange(
	ctx context.Context, habitID, from, to string,
) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.HabitCompletion{}).
		Where("habit_id=? AND completed=? AND date BETWEEN ? AND ?", habitID, true, from, to).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
