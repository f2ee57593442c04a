package domain

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/crypto"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const inviteCodeLength = 32

type FriendDomain interface {
	GetList(context.Context, *model.GetFriendsRequest) (*model.GetFriendsResponse, error)
	CreateInvite(context.Context, *model.CreateFriendInviteRequest) (*model.CreateFriendInviteResponse, error)
	AcceptInvite(context.Context, *model.AcceptFriendInviteRequest) (*model.AcceptFriendInviteResponse, error)
	Remove(context.Context, *model.RemoveFriendRequest) (*model.RemoveFriendResponse, error)
	GetProfile(context.Context, *model.GetFriendProfileRequest) (*model.GetFriendProfileResponse, error)
}

type friendDomain struct {
	friendshipRepo repository.FriendshipRepository
	inviteRepo     repository.FriendInviteRepository
	userRepo       repository.UserRepository
}

func NewFriendDomain(
	friendshipRepo repository.FriendshipRepository,
	inviteRepo repository.FriendInviteRepository,
	userRepo repository.UserRepository,
) *friendDomain {
	return &friendDomain{
		friendshipRepo: friendshipRepo,
		inviteRepo:     inviteRepo,
		userRepo:       userRepo,
	}
}

func (d *friendDomain) GetList(
	ctx context.Context, req *model.GetFriendsRequest,
) (*model.GetFriendsResponse, error) {
	friendships, err := d.friendshipRepo.GetListByUser(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friendships: %v", err)
		return nil, errorx.Unknown
	}

	friendIDs := make([]string, 0, len(friendships))
	for _, f := range friendships {
		friendIDs = append(friendIDs, f.FriendID)
	}

	users, err := d.userRepo.GetByIDs(ctx, friendIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friend users: %v", err)
		return nil, errorx.Unknown
	}

	friends := []model.Friend{}
	for i := range users {
		friends = append(friends, model.ConvertFriend(&users[i]))
	}

	return &model.GetFriendsResponse{Friends: friends}, nil
}

func (d *friendDomain) CreateInvite(
	ctx context.Context, req *model.CreateFriendInviteRequest,
) (*model.CreateFriendInviteResponse, error) {
	cfg := xcontext.Configs(ctx).Invite
	invite := &entity.FriendInvite{
		Base:      entity.Base{ID: uuid.NewString()},
		Code:      crypto.GenerateRandomAlphabet(inviteCodeLength),
		InviterID: xcontext.RequestUserID(ctx),
		ExpiresAt: time.Now().Add(cfg.Expiration),
	}

	if err := d.inviteRepo.Create(ctx, invite); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create invite: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateFriendInviteResponse{
		Code:      invite.Code,
		URL:       buildInviteURL(cfg.BotUsername, cfg.MiniAppShortName, cfg.BaseURL, invite.Code),
		ExpiresAt: invite.ExpiresAt.Format(model.DefaultTimeLayout),
	}, nil
}

func (d *friendDomain) AcceptInvite(
	ctx context.Context, req *model.AcceptFriendInviteRequest,
) (*model.AcceptFriendInviteResponse, error) {
	if req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty code")
	}

	invite, err := d.inviteRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found invite")
		}

		xcontext.Logger(ctx).Errorf("Cannot get invite: %v", err)
		return nil, errorx.Unknown
	}

	if invite.ExpiresAt.Before(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "Invite expired")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if invite.InviterID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Cannot accept your own invite")
	}

	inviter, err := d.userRepo.GetByID(ctx, invite.InviterID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get inviter: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	edges := []entity.Friendship{
		{UserID: invite.InviterID, FriendID: requestUserID},
		{UserID: requestUserID, FriendID: invite.InviterID},
	}
	for i := range edges {
		if err := d.friendshipRepo.Upsert(ctx, &edges[i]); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create friendship: %v", err)
			return nil, errorx.Unknown
		}
	}

	// Invites stay accept-many until they expire, UsedAt only records the
	// first acceptance.
	if !invite.UsedAt.Valid {
		if err := d.inviteRepo.MarkUsed(ctx, invite.ID, time.Now()); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark invite used: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AcceptFriendInviteResponse{Friend: model.ConvertFriend(inviter)}, nil
}

func (d *friendDomain) Remove(
	ctx context.Context, req *model.RemoveFriendRequest,
) (*model.RemoveFriendResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if _, err := requireFriend(ctx, d.friendshipRepo, d.userRepo, requestUserID, req.FriendID); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.friendshipRepo.Delete(ctx, requestUserID, req.FriendID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete friendship: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.friendshipRepo.Delete(ctx, req.FriendID, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete reverse friendship: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RemoveFriendResponse{}, nil
}

func (d *friendDomain) GetProfile(
	ctx context.Context, req *model.GetFriendProfileRequest,
) (*model.GetFriendProfileResponse, error) {
	friend, err := requireFriend(ctx, d.friendshipRepo, d.userRepo, xcontext.RequestUserID(ctx), req.FriendID)
	if err != nil {
		return nil, err
	}

	return &model.GetFriendProfileResponse{Friend: model.ConvertFriend(friend)}, nil
}

func buildInviteURL(botUsername, miniAppShortName, baseURL, code string) string {
	if botUsername != "" && miniAppShortName != "" {
		startParam := url.QueryEscape("friend_" + code)
		return fmt.Sprintf("https://t.me/%s/%s?startapp=%s", botUsername, miniAppShortName, startParam)
	}

	return fmt.Sprintf("%s?code=%s", baseURL, code)
}
