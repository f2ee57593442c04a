package repository

import (
	"context"
	"time"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
)

type FriendInviteRepository interface {
	Create(ctx context.Context, data *entity.FriendInvite) error
	GetByCode(ctx context.Context, code string) (*entity.FriendInvite, error)
	// MarkUsed stamps used_at on the first accept only.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) error
}

type friendInviteRepository struct{}

func NewFriendInviteRepository() *friendInviteRepository {
	return &friendInviteRepository{}
}

func (r *friendInviteRepository) Create(ctx context.Context, data *entity.FriendInvite) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *friendInviteRepository) GetByCode(ctx context.Context, code string) (*entity.FriendInvite, error) {
	var result entity.FriendInvite
	if err := xcontext.DB(ctx).Where("code=?", code).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *friendInviteRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	return xcontext.DB(ctx).Model(&entity.FriendInvite{}).
		Where("id=? AND used_at IS NULL", id).
		Update("used_at", usedAt).Error
}
