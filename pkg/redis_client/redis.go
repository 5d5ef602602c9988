package redis_client

import (
	"context"
	"strconv"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

const queueConnectionTag = "ovdepartures"

func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["OVDEPARTURES_REDIS_ADDRESS"] != "" {
		address = env["OVDEPARTURES_REDIS_ADDRESS"]
	}

	if env["OVDEPARTURES_REDIS_PASSWORD"] != "" {
		password = env["OVDEPARTURES_REDIS_PASSWORD"]
	}

	if env["OVDEPARTURES_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["OVDEPARTURES_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	// Redis usually starts alongside us so give it a little while to come up
	connectBackoff := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)
	err := backoff.RetryNotify(func() error {
		return client.Ping(context.Background()).Err()
	}, connectBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("address", address).Dur("wait", wait).Msg("Redis not available yet")
	})
	if err != nil {
		return err
	}

	return Use(client)
}

// Use sets up the package with an already connected client
func Use(client *redis.Client) error {
	queueConnection, err := rmq.OpenConnectionWithRedisClient(queueConnectionTag, client, nil)
	if err != nil {
		return err
	}

	Client = client
	QueueConnection = queueConnection

	return nil
}
