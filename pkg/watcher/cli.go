package watcher

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/notify"
	"github.com/travigo/ovdepartures/pkg/pipeline"
	"github.com/travigo/ovdepartures/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "fetch",
			Usage: "fetch the departures for a single board and print them",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "timing-point",
					Usage: "timing point code to fetch",
				},
				&cli.StringFlag{
					Name:  "stop-area",
					Usage: "stop area code to fetch",
				},
				&cli.BoolFlag{
					Name:  "departures-only",
					Usage: "only request departing passes",
				},
				&cli.StringSliceFlag{
					Name:  "destination",
					Usage: "only keep passes to this destination code, may be repeated",
				},
				&cli.BoolFlag{
					Name:  "town",
					Usage: "prefix stop names with the town",
				},
				&cli.StringFlag{
					Name:  "filter",
					Usage: "expression every departure must match, eg. 'TransportType == \"TRAM\"'",
				},
				&cli.BoolFlag{
					Name:  "debug",
					Usage: "log skipped passes",
				},
				&cli.StringFlag{
					Name:  "notifier",
					Value: "pretty",
					Usage: "where to deliver the result (log, pretty, queue, stomp)",
				},
			},
			Action: func(c *cli.Context) error {
				notifier, err := notify.Setup(c.String("notifier"))
				if err != nil {
					return err
				}
				defer closeNotifier(notifier)

				p := &pipeline.Pipeline{
					Defaults: config.FromEnvironment(util.GetEnvironmentVariables()),
					Notifier: notifier,
				}

				result, err := p.GetData(c.Context, pipeline.Request{
					Identifier: "cli",
					Config: config.Config{
						TimingPointCode:    c.String("timing-point"),
						StopAreaCode:       c.String("stop-area"),
						ShowOnlyDepartures: flagValue(c, "departures-only"),
						Destinations:       c.StringSlice("destination"),
						ShowTownName:       flagValue(c, "town"),
						Filter:             c.String("filter"),
						Debug:              flagValue(c, "debug"),
					},
				})
				if err != nil {
					return err
				}

				if result.Failed() {
					return cli.Exit(result.Error, 1)
				}

				return nil
			},
		},
		{
			Name:  "watch",
			Usage: "keep every board in a config file refreshed",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "config",
					Usage:    "path to the boards config file",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "notifier",
					Value: "queue",
					Usage: "where to deliver results (log, pretty, queue, stomp)",
				},
			},
			Action: func(c *cli.Context) error {
				file, err := config.LoadFile(c.String("config"))
				if err != nil {
					return err
				}

				refreshRate, err := file.Interval()
				if err != nil {
					return err
				}

				notifier, err := notify.Setup(c.String("notifier"))
				if err != nil {
					return err
				}
				defer closeNotifier(notifier)

				watcher := &Watcher{
					Boards:      file.Boards,
					RefreshRate: refreshRate,
					Pipeline: &pipeline.Pipeline{
						Defaults: config.FromEnvironment(util.GetEnvironmentVariables()),
						Notifier: notifier,
					},
				}

				ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := watcher.Run(ctx); err != nil && err != context.Canceled {
					return err
				}

				log.Info().Msg("Departures watcher stopped")

				return nil
			},
		},
	}
}

// flagValue leaves unset flags nil so the environment defaults still apply
func flagValue(c *cli.Context, name string) *bool {
	if !c.IsSet(name) {
		return nil
	}

	return config.Bool(c.Bool(name))
}

func closeNotifier(notifier pipeline.Notifier) {
	closer, ok := notifier.(interface{ Close() error })
	if !ok {
		return
	}

	if err := closer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close notifier")
	}
}
