package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/testutil"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestFriendDomain() *friendDomain {
	return NewFriendDomain(
		repository.NewFriendshipRepository(),
		repository.NewFriendInviteRepository(),
		repository.NewUserRepository(&testutil.MockRedisClient{}),
	)
}

func Test_friendDomain_inviteFlow(t *testing.T) {
	ctx := testutil.MockContext()
	inviter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	invitee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	friendDomain := newTestFriendDomain()

	inviterCtx := xcontext.WithRequestUserID(ctx, inviter.ID)
	invite, err := friendDomain.CreateInvite(inviterCtx, &model.CreateFriendInviteRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, invite.Code)
	require.True(t, strings.Contains(invite.URL, invite.Code))

	inviteeCtx := xcontext.WithRequestUserID(ctx, invitee.ID)
	accepted, err := friendDomain.AcceptInvite(inviteeCtx, &model.AcceptFriendInviteRequest{
		Code: invite.Code,
	})
	require.NoError(t, err)
	require.Equal(t, inviter.ID, accepted.Friend.ID)

	// Friendship is symmetric.
	inviterFriends, err := friendDomain.GetList(inviterCtx, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, inviterFriends.Friends, 1)
	require.Equal(t, invitee.ID, inviterFriends.Friends[0].ID)

	inviteeFriends, err := friendDomain.GetList(inviteeCtx, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, inviteeFriends.Friends, 1)
	require.Equal(t, inviter.ID, inviteeFriends.Friends[0].ID)

	// Accepting twice stays friends once.
	_, err = friendDomain.AcceptInvite(inviteeCtx, &model.AcceptFriendInviteRequest{
		Code: invite.Code,
	})
	require.NoError(t, err)
	inviterFriends, err = friendDomain.GetList(inviterCtx, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Len(t, inviterFriends.Friends, 1)
}

func Test_friendDomain_AcceptInvite_rejections(t *testing.T) {
	ctx := testutil.MockContext()
	inviter, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	invitee, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)

	friendDomain := newTestFriendDomain()
	inviterCtx := xcontext.WithRequestUserID(ctx, inviter.ID)
	inviteeCtx := xcontext.WithRequestUserID(ctx, invitee.ID)

	invite, err := friendDomain.CreateInvite(inviterCtx, &model.CreateFriendInviteRequest{})
	require.NoError(t, err)

	_, err = friendDomain.AcceptInvite(inviteeCtx, &model.AcceptFriendInviteRequest{Code: "missing"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found invite"), err)

	_, err = friendDomain.AcceptInvite(inviteeCtx, &model.AcceptFriendInviteRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Not allow empty code"), err)

	_, err = friendDomain.AcceptInvite(inviterCtx, &model.AcceptFriendInviteRequest{Code: invite.Code})
	require.Equal(t, errorx.New(errorx.BadRequest, "Cannot accept your own invite"), err)

	// An expired invite is rejected even with a valid code.
	expired := &entity.FriendInvite{
		Base:      entity.Base{ID: uuid.NewString()},
		Code:      "expiredcode",
		InviterID: inviter.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repository.NewFriendInviteRepository().Create(ctx, expired))

	_, err = friendDomain.AcceptInvite(inviteeCtx, &model.AcceptFriendInviteRequest{Code: "expiredcode"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invite expired"), err)
}

func Test_friendDomain_Remove(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	friend, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, testutil.SampleFriendship(ctx, user.ID, friend.ID))

	friendDomain := newTestFriendDomain()
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)
	friendCtx := xcontext.WithRequestUserID(ctx, friend.ID)

	_, err = friendDomain.Remove(userCtx, &model.RemoveFriendRequest{FriendID: friend.ID})
	require.NoError(t, err)

	// Both directions are gone.
	userFriends, err := friendDomain.GetList(userCtx, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Empty(t, userFriends.Friends)

	friendFriends, err := friendDomain.GetList(friendCtx, &model.GetFriendsRequest{})
	require.NoError(t, err)
	require.Empty(t, friendFriends.Friends)

	_, err = friendDomain.Remove(userCtx, &model.RemoveFriendRequest{FriendID: friend.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found friend"), err)
}

func Test_friendDomain_GetProfile(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	friend, err := testutil.SampleUser(ctx, &entity.User{FirstName: "Dana"})
	require.NoError(t, err)

	friendDomain := newTestFriendDomain()
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	_, err = friendDomain.GetProfile(userCtx, &model.GetFriendProfileRequest{FriendID: friend.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found friend"), err)

	require.NoError(t, testutil.SampleFriendship(ctx, user.ID, friend.ID))
	profile, err := friendDomain.GetProfile(userCtx, &model.GetFriendProfileRequest{FriendID: friend.ID})
	require.NoError(t, err)
	require.Equal(t, "Dana", profile.Friend.FirstName)
}
