package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database DatabaseConfigs
	Redis    RedisConfigs
	Invite   InviteConfigs
	Reminder ReminderConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type InviteConfigs struct {
	// BaseURL is the web fallback when no bot deep link can be built.
	BaseURL          string
	BotUsername      string
	MiniAppShortName string
	Expiration       time.Duration
}

type ReminderConfigs struct {
	Enabled   bool
	BotToken  string
	HourLocal int
	Timezone  string
}
