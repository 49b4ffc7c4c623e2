package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "ShareBoost"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, it is the main service included all apis.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Used to start periodic jobs, currently only the rank reconciliation.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate database to a specific version",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "The migration version to apply",
				},
			},
			Category:    "Database",
			Description: `Used to apply a single versioned database migration.`,
		},
	}

	s.app = app
}
