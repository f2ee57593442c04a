package repository

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type FriendshipRepository interface {
	// Upsert creates one directed edge; an existing edge is left as is.
	Upsert(ctx context.Context, data *entity.Friendship) error
	Delete(ctx context.Context, userID, friendID string) error
	Get(ctx context.Context, userID, friendID string) (*entity.Friendship, error)
	GetListByUser(ctx context.Context, userID string) ([]entity.Friendship, error)
}

type friendshipRepository struct{}

func NewFriendshipRepository() *friendshipRepository {
	return &friendshipRepository{}
}

func (r *friendshipRepository) Upsert(ctx context.Context, data *entity.Friendship) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "friend_id"},
			},
			DoNothing: true,
		}).Create(data).Error
}

func (r *friendshipRepository) Delete(ctx context.Context, userID, friendID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Friendship{}, "user_id=? AND friend_id=?", userID, friendID).Error
}

func (r *friendshipRepository) Get(ctx context.Context, userID, friendID string) (*entity.Friendship, error) {
	var result entity.Friendship
	err := xcontext.DB(ctx).Where("user_id=? AND friend_id=?", userID, friendID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *friendshipRepository) GetListByUser(ctx context.Context, userID string) ([]entity.Friendship, error) {
	var result []entity.Friendship
	err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
