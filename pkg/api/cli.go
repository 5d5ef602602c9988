package api

import (
	"github.com/travigo/ovdepartures/pkg/cachedresults"
	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/pipeline"
	"github.com/travigo/ovdepartures/pkg/redis_client"
	"github.com/travigo/ovdepartures/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the departures web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.BoolFlag{
						Name:  "cache",
						Value: true,
						Usage: "cache results in redis",
					},
					&cli.DurationFlag{
						Name:  "cache-expiration",
						Value: cachedresults.DefaultExpiration,
						Usage: "how long a cached result is served for",
					},
				},
				Action: func(c *cli.Context) error {
					var resultsCache *cachedresults.Cache

					if c.Bool("cache") {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						resultsCache = &cachedresults.Cache{}
						resultsCache.Setup(redis_client.Client, c.Duration("cache-expiration"))
					}

					p := &pipeline.Pipeline{
						Defaults: config.FromEnvironment(util.GetEnvironmentVariables()),
					}

					return SetupServer(c.String("listen"), p, resultsCache)
				},
			},
		},
	}
}

