package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/habitgram/backend/internal/common"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateLanguage(context.Context, *model.UpdateLanguageRequest) (*model.UpdateLanguageResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) UpdateLanguage(
	ctx context.Context, req *model.UpdateLanguageRequest,
) (*model.UpdateLanguageResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if _, err := d.userRepo.GetByID(ctx, requestUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	language := normalizeLanguage(req.Language)
	err := d.userRepo.UpdateByID(ctx, requestUserID, &entity.User{Language: language})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user language: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateLanguageResponse{User: model.ConvertUser(user)}, nil
}

// Unknown languages silently fall back to english rather than failing, the
// client sends whatever Telegram reports.
func normalizeLanguage(raw string) string {
	language := strings.ToLower(strings.TrimSpace(raw))
	switch language {
	case common.LanguageEN, common.LanguageRU:
		return language
	default:
		return common.LanguageEN
	}
}
