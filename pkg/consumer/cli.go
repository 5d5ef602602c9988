package consumer

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/notify"
	"github.com/travigo/ovdepartures/pkg/pipeline"
	"github.com/travigo/ovdepartures/pkg/redis_client"
	"github.com/travigo/ovdepartures/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "consumer",
		Usage: "Provides the departures request consumer",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the request consumer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "queue",
						Value: DefaultRequestsQueue,
						Usage: "redis queue to read departures requests from",
					},
					&cli.StringFlag{
						Name:  "notifier",
						Value: "queue",
						Usage: "where to deliver results (log, pretty, queue, stomp)",
					},
					&cli.IntFlag{
						Name:  "consumers",
						Value: 2,
						Usage: "number of queue consumers",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Value: 10,
						Usage: "number of requests handed to a consumer at once",
					},
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":8081",
						Usage: "listen target for the queue stats server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					notifier, err := notify.Setup(c.String("notifier"))
					if err != nil {
						return err
					}

					p := &pipeline.Pipeline{
						Defaults: config.FromEnvironment(util.GetEnvironmentVariables()),
						Notifier: notifier,
					}

					redisConsumer := RedisConsumer{
						QueueName:       c.String("queue"),
						NumberConsumers: c.Int("consumers"),
						BatchSize:       c.Int("batch-size"),
						Timeout:         2 * time.Second,
						Connection:      redis_client.QueueConnection,
						Consumer:        NewRequestBatchConsumer(p),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					statsServer := redisConsumer.StatsServer(c.String("stats-listen"))
					go func() {
						if err := statsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
							log.Error().Err(err).Msg("Stats server stopped")
						}
					}()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					if closer, ok := notifier.(interface{ Close() error }); ok {
						if err := closer.Close(); err != nil {
							log.Error().Err(err).Msg("Failed to close notifier")
						}
					}

					return statsServer.Close()
				},
			},
			{
				Name:  "test-request",
				Usage: "queue a departures request",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "queue",
						Value: DefaultRequestsQueue,
						Usage: "redis queue to publish the request to",
					},
					&cli.StringFlag{
						Name:  "identifier",
						Value: "test-board",
						Usage: "identifier the result will be delivered under",
					},
					&cli.StringFlag{
						Name:  "timing-point",
						Usage: "timing point code to request",
					},
					&cli.StringFlag{
						Name:  "stop-area",
						Usage: "stop area code to request",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					request := pipeline.Request{
						Identifier: c.String("identifier"),
						Config: config.Config{
							TimingPointCode: c.String("timing-point"),
							StopAreaCode:    c.String("stop-area"),
						},
					}

					requestsQueue, err := redis_client.QueueConnection.OpenQueue(c.String("queue"))
					if err != nil {
						return err
					}

					requestBytes, _ := json.Marshal(request)
					if err := requestsQueue.PublishBytes(requestBytes); err != nil {
						return err
					}

					log.Info().Str("identifier", request.Identifier).Str("queue", c.String("queue")).Msg("Queued departures request")

					return nil
				},
			},
		},
	}
}
