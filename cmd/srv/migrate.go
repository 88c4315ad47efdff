package main

import (
	"github.com/urfave/cli/v2"

	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
)

func (s *srv) startMigrate(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadDatabase()

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	s.logger.Infof("Migrated database tables successfully")
	return nil
}
