package main

import (
	"github.com/habitgram/backend/internal/domain/cron"
	"github.com/habitgram/backend/pkg/api/telegram"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadSnowFlake()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()

	telegramEndpoint := telegram.New(xcontext.Configs(s.ctx).Reminder.BotToken)

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewHabitReminderCronJob(
		s.userRepo, s.habitRepo, s.completionRepo, s.reminderLogRepo, telegramEndpoint))
	cronJobManager.Start(s.ctx)

	return nil
}
