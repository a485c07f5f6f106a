package main

import (
	"fmt"

	"github.com/overflow-lab/backend/migration"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadDatabase()
	defer s.close()

	version := cctx.String("version")
	if version == "" {
		if err := migration.AutoMigrate(s.ctx); err != nil {
			return err
		}

		xcontext.Logger(s.ctx).Infof("Auto migrated all tables")
		return nil
	}

	migrator, ok := migration.Migrators[version]
	if !ok {
		return fmt.Errorf("unknown migration version %s", version)
	}

	if err := migrator(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Migrated to version %s", version)
	return nil
}
