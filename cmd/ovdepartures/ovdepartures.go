package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/api"
	"github.com/travigo/ovdepartures/pkg/consumer"
	"github.com/travigo/ovdepartures/pkg/elastic_client"
	"github.com/travigo/ovdepartures/pkg/watcher"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("OVDEPARTURES_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("OVDEPARTURES_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := elastic_client.Connect(false); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Elasticsearch")
	}
	defer elastic_client.WaitUntilQueueEmpty()

	commands := watcher.RegisterCLI()
	commands = append(commands,
		consumer.RegisterCLI(),
		api.RegisterCLI(),
	)

	app := &cli.App{
		Name:        "ovdepartures",
		Description: "Departure boards from the OVapi timing data",

		Commands: commands,
	}

	err := app.Run(os.Args)
	if err != nil {
		elastic_client.WaitUntilQueueEmpty()
		log.Fatal().Err(err).Send()
	}
}
