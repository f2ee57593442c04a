package domain

import (
	"testing"

	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/testutil"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestActivityDomain() *activityDomain {
	return NewActivityDomain(
		repository.NewActivityLogRepository(),
		repository.NewActivityReactionRepository(),
		repository.NewFriendshipRepository(),
		repository.NewUserRepository(&testutil.MockRedisClient{}),
	)
}

func Test_activityDomain_GetFeed_scoping(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	friend, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	stranger, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, testutil.SampleFriendship(ctx, user.ID, friend.ID))

	habitDomain := newTestHabitDomain()
	for _, ownerID := range []string{user.ID, friend.ID, stranger.ID} {
		habit, err := testutil.SampleHabit(ctx, ownerID, nil)
		require.NoError(t, err)
		_, err = habitDomain.Complete(
			xcontext.WithRequestUserID(ctx, ownerID),
			&model.CompleteHabitRequest{ID: habit.ID},
		)
		require.NoError(t, err)
	}

	activityDomain := newTestActivityDomain()
	feed, err := activityDomain.GetFeed(
		xcontext.WithRequestUserID(ctx, user.ID), &model.GetFeedRequest{})
	require.NoError(t, err)

	// Own events and friend events only, the stranger stays invisible.
	require.Len(t, feed.Activities, 2)
	for _, activity := range feed.Activities {
		require.NotEqual(t, stranger.ID, activity.UserID)
		require.NotEmpty(t, activity.UserName)
		require.Equal(t, activity.UserID == user.ID, activity.Mine)
		require.NotNil(t, activity.Reactions)
	}
}

func Test_activityDomain_GetFeed_unfriendHidesEvents(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	friend, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, testutil.SampleFriendship(ctx, user.ID, friend.ID))

	habit, err := testutil.SampleHabit(ctx, friend.ID, nil)
	require.NoError(t, err)
	_, err = newTestHabitDomain().Complete(
		xcontext.WithRequestUserID(ctx, friend.ID),
		&model.CompleteHabitRequest{ID: habit.ID},
	)
	require.NoError(t, err)

	activityDomain := newTestActivityDomain()
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	feed, err := activityDomain.GetFeed(userCtx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Activities, 1)

	_, err = newTestFriendDomain().Remove(userCtx, &model.RemoveFriendRequest{FriendID: friend.ID})
	require.NoError(t, err)

	feed, err = activityDomain.GetFeed(userCtx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Empty(t, feed.Activities)
}

func Test_activityDomain_GetFeed_newestFirst(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	habit, err := testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)
	userCtx := xcontext.WithRequestUserID(ctx, user.ID)

	habitDomain := newTestHabitDomain()
	_, err = habitDomain.Complete(userCtx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	second, err := testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)
	_, err = habitDomain.Complete(userCtx, &model.CompleteHabitRequest{ID: second.ID})
	require.NoError(t, err)

	feed, err := newTestActivityDomain().GetFeed(userCtx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Activities, 2)

	// Same-second events fall back to id order, newest first.
	require.Equal(t, second.ID, feed.Activities[0].HabitID)
	require.Equal(t, habit.ID, feed.Activities[1].HabitID)
}
