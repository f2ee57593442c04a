package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/habitgram/backend/config"
	"github.com/habitgram/backend/internal/domain"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/migration"
	"github.com/habitgram/backend/pkg/logger"
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/habitgram/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	redisClient xredis.Client

	userRepo             repository.UserRepository
	habitRepo            repository.HabitRepository
	completionRepo       repository.HabitCompletionRepository
	activityLogRepo      repository.ActivityLogRepository
	activityReactionRepo repository.ActivityReactionRepository
	habitReactionRepo    repository.HabitReactionRepository
	friendshipRepo       repository.FriendshipRepository
	friendInviteRepo     repository.FriendInviteRepository
	notificationRepo     repository.NotificationRepository
	reminderLogRepo      repository.ReminderLogRepository

	userDomain         domain.UserDomain
	habitDomain        domain.HabitDomain
	activityDomain     domain.ActivityDomain
	friendDomain       domain.FriendDomain
	reactionDomain     domain.ReactionDomain
	notificationDomain domain.NotificationDomain
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "habitgram"),
			Password: getEnv("MYSQL_PASSWORD", "habitgram"),
			Database: getEnv("MYSQL_DATABASE", "habitgram"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Invite: config.InviteConfigs{
			BaseURL:          getEnv("INVITE_BASE_URL", "http://localhost:5173/friends"),
			BotUsername:      getEnv("TELEGRAM_BOT_USERNAME", ""),
			MiniAppShortName: getEnv("TELEGRAM_MINIAPP_SHORT_NAME", ""),
			Expiration:       getDurationEnv("INVITE_EXPIRATION", 7*24*time.Hour),
		},
		Reminder: config.ReminderConfigs{
			Enabled:   getEnv("REMINDER_ENABLED", "false") == "true",
			BotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			HourLocal: getIntEnv("REMINDER_HOUR_LOCAL", 20),
			Timezone:  getEnv("REMINDER_TIMEZONE", "UTC"),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(int64(getIntEnv("SNOWFLAKE_NODE_ID", 1)))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlakeNode(s.ctx, node)
}

func (s *srv) newDatabase() *gorm.DB {
	dbCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       dbCfg.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository(s.redisClient)
	s.habitRepo = repository.NewHabitRepository()
	s.completionRepo = repository.NewHabitCompletionRepository()
	s.activityLogRepo = repository.NewActivityLogRepository()
	s.activityReactionRepo = repository.NewActivityReactionRepository()
	s.habitReactionRepo = repository.NewHabitReactionRepository()
	s.friendshipRepo = repository.NewFriendshipRepository()
	s.friendInviteRepo = repository.NewFriendInviteRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.reminderLogRepo = repository.NewReminderLogRepository()
}

func (s *srv) loadDomains() {
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.habitDomain = domain.NewHabitDomain(s.habitRepo, s.completionRepo, s.activityLogRepo,
		s.activityReactionRepo, s.habitReactionRepo, s.friendshipRepo, s.userRepo)
	s.activityDomain = domain.NewActivityDomain(s.activityLogRepo, s.activityReactionRepo,
		s.friendshipRepo, s.userRepo)
	s.friendDomain = domain.NewFriendDomain(s.friendshipRepo, s.friendInviteRepo, s.userRepo)
	s.reactionDomain = domain.NewReactionDomain(s.activityLogRepo, s.activityReactionRepo,
		s.habitReactionRepo, s.habitRepo, s.friendshipRepo, s.notificationRepo, s.userRepo)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo, s.userRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}

	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}
