package main

import (
	"github.com/habitgram/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()

	xcontext.Logger(s.ctx).Infof("Migration completed")
	return nil
}
