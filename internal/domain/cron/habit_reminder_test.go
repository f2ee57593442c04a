package cron

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/dateutil"
	"github.com/habitgram/backend/pkg/testutil"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID int64
	text   string
}

type mockTelegramEndpoint struct {
	sent []sentMessage
}

func (e *mockTelegramEndpoint) SendMessage(ctx context.Context, chatID int64, text string) error {
	e.sent = append(e.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

// remindNowContext overrides the reminder config so the job fires in the
// current hour regardless of when the test runs.
func remindNowContext() context.Context {
	ctx := testutil.MockContext()

	cfg := xcontext.Configs(ctx)
	cfg.Reminder.BotToken = "test-token"
	cfg.Reminder.HourLocal = time.Now().UTC().Hour()

	return xcontext.WithConfigs(ctx, cfg)
}

func Test_HabitReminderCronJob_Do(t *testing.T) {
	ctx := remindNowContext()
	endpoint := &mockTelegramEndpoint{}
	job := NewHabitReminderCronJob(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		repository.NewHabitRepository(),
		repository.NewHabitCompletionRepository(),
		repository.NewReminderLogRepository(),
		endpoint,
	)

	pendingUser, err := testutil.SampleUser(ctx, &entity.User{
		TelegramID: sql.NullInt64{Valid: true, Int64: 111},
	})
	require.NoError(t, err)
	_, err = testutil.SampleHabit(ctx, pendingUser.ID, nil)
	require.NoError(t, err)

	doneUser, err := testutil.SampleUser(ctx, &entity.User{
		TelegramID: sql.NullInt64{Valid: true, Int64: 222},
	})
	require.NoError(t, err)
	doneHabit, err := testutil.SampleHabit(ctx, doneUser.ID, nil)
	require.NoError(t, err)
	_, err = repository.NewHabitCompletionRepository().Create(ctx, &entity.HabitCompletion{
		Base:      entity.Base{ID: uuid.NewString()},
		HabitID:   doneHabit.ID,
		Date:      dateutil.FormatDay(time.Now().UTC()),
		Completed: true,
	})
	require.NoError(t, err)

	// No linked telegram account, never messaged.
	webUser, err := testutil.SampleUser(ctx, nil)
	require.NoError(t, err)
	_, err = testutil.SampleHabit(ctx, webUser.ID, nil)
	require.NoError(t, err)

	job.Do(ctx)

	require.Len(t, endpoint.sent, 1)
	require.Equal(t, int64(111), endpoint.sent[0].chatID)
	require.Equal(t, "Reminder: you still have 1 habit(s) to complete today.", endpoint.sent[0].text)

	// A second run in the same hour is a no-op, the log dedupes it.
	job.Do(ctx)
	require.Len(t, endpoint.sent, 1)
}

func Test_HabitReminderCronJob_Do_skipsArchivedHabits(t *testing.T) {
	ctx := remindNowContext()
	endpoint := &mockTelegramEndpoint{}
	job := NewHabitReminderCronJob(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		repository.NewHabitRepository(),
		repository.NewHabitCompletionRepository(),
		repository.NewReminderLogRepository(),
		endpoint,
	)

	user, err := testutil.SampleUser(ctx, &entity.User{
		TelegramID: sql.NullInt64{Valid: true, Int64: 333},
	})
	require.NoError(t, err)
	_, err = testutil.SampleHabit(ctx, user.ID, &entity.Habit{Archived: true})
	require.NoError(t, err)

	job.Do(ctx)
	require.Empty(t, endpoint.sent)
}

func Test_HabitReminderCronJob_Do_outsideConfiguredHour(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Reminder.BotToken = "test-token"
	cfg.Reminder.HourLocal = (time.Now().UTC().Hour() + 1) % 24
	ctx = xcontext.WithConfigs(ctx, cfg)

	endpoint := &mockTelegramEndpoint{}
	job := NewHabitReminderCronJob(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		repository.NewHabitRepository(),
		repository.NewHabitCompletionRepository(),
		repository.NewReminderLogRepository(),
		endpoint,
	)

	user, err := testutil.SampleUser(ctx, &entity.User{
		TelegramID: sql.NullInt64{Valid: true, Int64: 444},
	})
	require.NoError(t, err)
	_, err = testutil.SampleHabit(ctx, user.ID, nil)
	require.NoError(t, err)

	job.Do(ctx)
	require.Empty(t, endpoint.sent)
}
