package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var server srv

func main() {
	app := &cli.App{
		Name:  "simplr-events-server",
		Usage: "Issues claimable event tickets in anchored batches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.toml",
				Usage: "the path of configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Start the api server",
				Action: server.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate database tables",
				Action: server.startMigrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
