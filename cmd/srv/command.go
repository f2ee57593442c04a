package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Habitgram"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Category:    "Database",
			Description: `Creates or updates all tables of the engine.`,
		},
		{
			Action:      server.startCron,
			Name:        "remind",
			Usage:       "Start the reminder worker",
			Category:    "Worker",
			Description: `Runs the scheduled jobs, currently the daily habit reminder over Telegram.`,
		},
	}

	s.app = app
}
