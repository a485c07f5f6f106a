package main

import "github.com/urfave/cli/v2"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "config.toml",
		Usage:   "Path of the TOML configuration file",
		EnvVars: []string{"OVERFLOW_CONFIG"},
	}

	envFileFlag = &cli.StringFlag{
		Name:  "env-file",
		Value: ".env",
		Usage: "Environment file loaded before reading the configuration, ignored if it does not exist",
	}
)

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Overflow"
	app.Usage = "Questions and answers backend"
	app.Flags = []cli.Flag{configFlag, envFileFlag}
	app.Before = s.loadConfig
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "Name of the migrator, all tables are auto-migrated if empty",
				},
			},
			Description: `Used to create or update the database schema.`,
		},
		{
			Action:      s.startReindex,
			Name:        "reindex",
			Usage:       "Rebuild the search index",
			Category:    "Search",
			Description: `Used to rebuild the bleve index of posts from the database.`,
		},
	}

	s.app = app
}
