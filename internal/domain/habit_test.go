package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/dateutil"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/testutil"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestHabitDomain() *habitDomain {
	return NewHabitDomain(
		repository.NewHabitRepository(),
		repository.NewHabitCompletionRepository(),
		repository.NewActivityLogRepository(),
		repository.NewActivityReactionRepository(),
		repository.NewHabitReactionRepository(),
		repository.NewFriendshipRepository(),
		repository.NewUserRepository(&testutil.MockRedisClient{}),
	)
}

func Test_habitDomain_Create_validation(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	habitDomain := newTestHabitDomain()
	three := 3

	testcases := []struct {
		name         string
		title        string
		habitType    string
		timesPerWeek *int
		expectedErr  string
	}{
		{name: "empty title", title: "   ", habitType: "DAILY", expectedErr: "Not allow empty title"},
		{name: "unknown type", title: "Read", habitType: "MONTHLY", expectedErr: "Invalid habit type MONTHLY"},
		{name: "daily with target", title: "Read", habitType: "DAILY", timesPerWeek: &three,
			expectedErr: "Not allow times per week for daily habit"},
		{name: "weekly without target", title: "Gym", habitType: "WEEKLY",
			expectedErr: "Times per week is required for weekly habit"},
		{name: "daily ok", title: "Read", habitType: "DAILY"},
		{name: "weekly ok", title: "Gym", habitType: "WEEKLY", timesPerWeek: &three},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := habitDomain.Create(ctx, &model.CreateHabitRequest{
				Title:        tc.title,
				Type:         tc.habitType,
				TimesPerWeek: tc.timesPerWeek,
			})

			if tc.expectedErr != "" {
				require.Error(t, err)
				require.Equal(t, tc.expectedErr, err.Error())
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, resp.ID)
			require.Equal(t, tc.habitType, resp.Type)
		})
	}
}

func Test_habitDomain_Complete_idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	habit, err := testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	habitDomain := newTestHabitDomain()

	first, err := habitDomain.Complete(ctx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)
	require.True(t, first.Completed)

	second, err := habitDomain.Complete(ctx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	// The repeated tap must not produce a second completion event.
	activities, err := repository.NewActivityLogRepository().GetListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, entity.ActivityCompleted, activities[0].Type)
}

func Test_habitDomain_Complete_streakAndRecordEvents(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	habit, err := testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	// Six completed days leading up to today, the seventh closes a week.
	completionRepo := repository.NewHabitCompletionRepository()
	for i := 6; i >= 1; i-- {
		_, err := completionRepo.Create(ctx, &entity.HabitCompletion{
			Base:      entity.Base{ID: uuid.NewString()},
			HabitID:   habit.ID,
			Date:      dateutil.FormatDay(time.Now().AddDate(0, 0, -i)),
			Completed: true,
		})
		require.NoError(t, err)
	}

	habitDomain := newTestHabitDomain()
	_, err = habitDomain.Complete(ctx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	activities, err := repository.NewActivityLogRepository().GetListByUser(ctx, user.ID)
	require.NoError(t, err)

	types := []entity.ActivityType{}
	for _, a := range activities {
		types = append(types, a.Type)
	}
	require.Contains(t, types, entity.ActivityCompleted)
	require.Contains(t, types, entity.ActivityStreak)
	require.Contains(t, types, entity.ActivityRecord)

	habits, err := habitDomain.GetList(ctx, &model.GetHabitsRequest{})
	require.NoError(t, err)
	require.Len(t, habits.Habits, 1)
	require.Equal(t, 7, habits.Habits[0].CurrentStreak)
	require.Equal(t, 7, habits.Habits[0].BestStreak)
}

func Test_habitDomain_Complete_noRecordForSingleDay(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	habit, err := testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	habitDomain := newTestHabitDomain()
	_, err = habitDomain.Complete(ctx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	// A one day streak equals the best but must stay quiet.
	activities, err := repository.NewActivityLogRepository().GetListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, entity.ActivityCompleted, activities[0].Type)
}

func Test_habitDomain_Uncomplete(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	habit, err := testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	habitDomain := newTestHabitDomain()
	_, err = habitDomain.Complete(ctx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	_, err = habitDomain.Uncomplete(ctx, &model.UncompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	history, err := habitDomain.GetHistory(ctx, &model.GetHabitHistoryRequest{ID: habit.ID})
	require.NoError(t, err)
	require.Empty(t, history.Completions)

	// Uncompleting an untracked day is a no-op.
	_, err = habitDomain.Uncomplete(ctx, &model.UncompleteHabitRequest{
		ID: habit.ID, Date: "2000-01-01",
	})
	require.NoError(t, err)

	_, err = habitDomain.Uncomplete(ctx, &model.UncompleteHabitRequest{
		ID: habit.ID, Date: "not-a-date",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid date"), err)
}

func Test_habitDomain_Stats(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	habit, err := testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	habitDomain := newTestHabitDomain()
	_, err = habitDomain.Complete(ctx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	stats, err := habitDomain.GetStats(ctx, &model.GetHabitStatsRequest{ID: habit.ID})
	require.NoError(t, err)
	require.Equal(t, 1, stats.CompletedWeek)
	require.Equal(t, 7, stats.TargetWeek)
	require.Equal(t, 14, stats.WeekPercent)
	require.Equal(t, 1, stats.CompletedMonth)
	require.Equal(t, dateutil.DaysInMonth(time.Now()), stats.TargetMonth)
	require.Equal(t, 1, stats.CurrentStreak)
	require.Equal(t, 1, stats.BestStreak)
}

func Test_habitDomain_Stats_weeklyTargets(t *testing.T) {
	ctx := testutil.MockContext()
	user, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	three := 3
	habit, err := testutil.SampleHabit(ctx, user.ID, &entity.Habit{
		Type:         entity.HabitWeekly,
		TimesPerWeek: &three,
	})
	require.NoError(t, err)
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	habitDomain := newTestHabitDomain()
	stats, err := habitDomain.GetStats(ctx, &model.GetHabitStatsRequest{ID: habit.ID})
	require.NoError(t, err)
	require.Equal(t, 3, stats.TargetWeek)
	require.Equal(t, 12, stats.TargetMonth)
	require.Equal(t, 0, stats.WeekPercent)
}

func Test_habitDomain_Delete_cascades(t *testing.T) {
	ctx := testutil.MockContext()
	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	friend, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, testutil.SampleFriendship(ctx, owner.ID, friend.ID))
	habit, err := testutil.SampleHabit(ctx, owner.ID, nil)
	require.NoError(t, err)

	ownerCtx := xcontext.WithRequestUserID(ctx, owner.ID)
	friendCtx := xcontext.WithRequestUserID(ctx, friend.ID)

	habitDomain := newTestHabitDomain()
	_, err = habitDomain.Complete(ownerCtx, &model.CompleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	activityDomain := NewActivityDomain(
		repository.NewActivityLogRepository(),
		repository.NewActivityReactionRepository(),
		repository.NewFriendshipRepository(),
		repository.NewUserRepository(&testutil.MockRedisClient{}),
	)
	feed, err := activityDomain.GetFeed(friendCtx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Activities, 1)

	reactionDomain := newTestReactionDomain()
	_, err = reactionDomain.ToggleForActivity(friendCtx, &model.ToggleActivityReactionRequest{
		ActivityID: feed.Activities[0].ID,
		Emoji:      "🔥",
	})
	require.NoError(t, err)
	_, err = reactionDomain.ToggleForHabit(friendCtx, &model.ToggleHabitReactionRequest{
		FriendID: owner.ID,
		HabitID:  habit.ID,
		Emoji:    "💪",
	})
	require.NoError(t, err)

	_, err = habitDomain.Delete(ownerCtx, &model.DeleteHabitRequest{ID: habit.ID})
	require.NoError(t, err)

	// Everything hanging off the habit is gone, including the friend's view.
	feed, err = activityDomain.GetFeed(friendCtx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Empty(t, feed.Activities)

	_, err = habitDomain.GetStats(ownerCtx, &model.GetHabitStatsRequest{ID: habit.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found habit"), err)

	reactions, err := repository.NewHabitReactionRepository().CountByHabit(ctx, habit.ID)
	require.NoError(t, err)
	require.Empty(t, reactions)
}

func Test_habitDomain_GetFriendList_requiresFriendship(t *testing.T) {
	ctx := testutil.MockContext()
	owner, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	stranger, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleHabit(ctx, owner.ID, nil)
	require.NoError(t, err)

	habitDomain := newTestHabitDomain()
	strangerCtx := xcontext.WithRequestUserID(ctx, stranger.ID)
	_, err = habitDomain.GetFriendList(strangerCtx, &model.GetFriendHabitsRequest{FriendID: owner.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found friend"), err)

	require.NoError(t, testutil.SampleFriendship(ctx, owner.ID, stranger.ID))
	habits, err := habitDomain.GetFriendList(strangerCtx, &model.GetFriendHabitsRequest{FriendID: owner.ID})
	require.NoError(t, err)
	require.Len(t, habits.Habits, 1)
}
