package repository

import (
	"context"
	"errors"
	"time"

	"github.com/habitgram/backend/internal/common"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/habitgram/backend/pkg/xredis"
)

const cacheUserTTL = 5 * time.Minute

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
}

type userRepository struct {
	redisClient xredis.Client
}

func NewUserRepository(redisClient xredis.Client) *userRepository {
	return &userRepository{redisClient: redisClient}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	err := r.redisClient.GetObj(ctx, common.RedisKeyUser(id), &record)
	if err == nil {
		return &record, nil
	}

	if !errors.Is(err, xredis.ErrNil) {
		xcontext.Logger(ctx).Warnf("Cannot get user from cache: %v", err)
	}

	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	if err := r.redisClient.SetObj(ctx, common.RedisKeyUser(id), record, cacheUserTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache user: %v", err)
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	var records []entity.User
	if err := xcontext.DB(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.Language != "" {
		updateMap["language"] = data.Language
	}

	if data.PhotoURL != "" {
		updateMap["photo_url"] = data.PhotoURL
	}

	if len(updateMap) == 0 {
		return nil
	}

	err := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
	if err != nil {
		return err
	}

	return r.redisClient.Del(ctx, common.RedisKeyUser(id))
}
