package cachedresults

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/pipeline"
)

const DefaultExpiration = 30 * time.Second

// Cache holds successful results for identical request configs so that many displays
// showing the same stop only cause one upstream fetch per expiration window
type Cache struct {
	Cache *cache.Cache[string]
}

func (c *Cache) Setup(client *redis.Client, expiration time.Duration) {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	c.Cache = cache.New[string](redisStore)
}

func (c *Cache) Get(ctx context.Context, request pipeline.Request) (pipeline.Result, bool) {
	if c == nil || c.Cache == nil {
		return pipeline.Result{}, false
	}

	value, err := c.Cache.Get(ctx, Key(request.Config))
	if err != nil {
		return pipeline.Result{}, false
	}

	var result pipeline.Result
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		log.Error().Err(err).Msg("Failed to decode cached departures result")
		return pipeline.Result{}, false
	}
	result.Identifier = request.Identifier

	return result, true
}

// Set stores result unless it failed, failures are always retried
func (c *Cache) Set(ctx context.Context, request pipeline.Request, result pipeline.Result) {
	if c == nil || c.Cache == nil || result.Failed() {
		return
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode departures result for cache")
		return
	}

	if err := c.Cache.Set(ctx, Key(request.Config), string(resultBytes)); err != nil {
		log.Error().Err(err).Msg("Failed to cache departures result")
	}
}

func Key(requestConfig config.Config) string {
	configBytes, _ := json.Marshal(requestConfig)

	return fmt.Sprintf("ovdepartures:results:%x", sha256.Sum256(configBytes))
}
