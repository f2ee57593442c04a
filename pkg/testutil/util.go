package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/habitgram/backend/config"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/pkg/logger"
	"github.com/habitgram/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		Invite: config.InviteConfigs{
			BaseURL:          "https://habitgram.test/invite",
			BotUsername:      "habitgram_test_bot",
			MiniAppShortName: "habits",
			Expiration:       7 * 24 * time.Hour,
		},
		Reminder: config.ReminderConfigs{
			Enabled:   true,
			HourLocal: 20,
			Timezone:  "UTC",
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlakeNode(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
