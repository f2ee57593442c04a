package cron

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/common"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/api/telegram"
	"github.com/habitgram/backend/pkg/dateutil"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// HabitReminderCronJob pings users who still have unfinished habits for the
// day. It wakes every half hour but only acts during the configured local
// hour, the reminder log keeps each user at one message per day.
type HabitReminderCronJob struct {
	userRepo         repository.UserRepository
	habitRepo        repository.HabitRepository
	completionRepo   repository.HabitCompletionRepository
	reminderLogRepo  repository.ReminderLogRepository
	telegramEndpoint telegram.IEndpoint
}

func NewHabitReminderCronJob(
	userRepo repository.UserRepository,
	habitRepo repository.HabitRepository,
	completionRepo repository.HabitCompletionRepository,
	reminderLogRepo repository.ReminderLogRepository,
	telegramEndpoint telegram.IEndpoint,
) *HabitReminderCronJob {
	return &HabitReminderCronJob{
		userRepo:         userRepo,
		habitRepo:        habitRepo,
		completionRepo:   completionRepo,
		reminderLogRepo:  reminderLogRepo,
		telegramEndpoint: telegramEndpoint,
	}
}

func (job *HabitReminderCronJob) Do(ctx context.Context) {
	cfg := xcontext.Configs(ctx).Reminder
	if !cfg.Enabled || cfg.BotToken == "" {
		return
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid reminder timezone %s: %v", cfg.Timezone, err)
		return
	}

	now := time.Now().In(location)
	if now.Hour() != cfg.HourLocal {
		return
	}

	today := dateutil.FormatDay(now)
	users, err := job.userRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return
	}

	for _, user := range users {
		if !user.TelegramID.Valid {
			continue
		}

		reminded, err := job.reminderLogRepo.Exist(ctx, user.ID, today)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot check reminder log of %s: %v", user.ID, err)
			continue
		}

		if reminded {
			continue
		}

		pending, err := job.countPending(ctx, user.ID, today)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot count pending habits of %s: %v", user.ID, err)
			continue
		}

		if pending == 0 {
			continue
		}

		message := common.ReminderMessage(user.Language, pending)
		if err := job.telegramEndpoint.SendMessage(ctx, user.TelegramID.Int64, message); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot send reminder to %s: %v", user.ID, err)
			continue
		}

		log := &entity.ReminderLog{
			Base:   entity.Base{ID: uuid.NewString()},
			UserID: user.ID,
			Date:   today,
			SentAt: time.Now(),
		}
		if _, err := job.reminderLogRepo.Create(ctx, log); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot create reminder log of %s: %v", user.ID, err)
		}
	}
}

func (job *HabitReminderCronJob) countPending(
	ctx context.Context, userID, today string,
) (int64, error) {
	habits, err := job.habitRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var pending int64
	for _, habit := range habits {
		completion, err := job.completionRepo.GetByHabitAndDate(ctx, habit.ID, today)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				pending++
				continue
			}
			return 0, err
		}

		if !completion.Completed {
			pending++
		}
	}

	return pending, nil
}

func (job *HabitReminderCronJob) RunNow() bool {
	return false
}

func (job *HabitReminderCronJob) Next() time.Time {
	now := time.Now()
	return now.Truncate(30 * time.Minute).Add(30 * time.Minute)
}
