package notify

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogNotifiers(t *testing.T) {
	notifier, err := Setup("")
	require.NoError(t, err)
	assert.Equal(t, LogNotifier{}, notifier)

	notifier, err = Setup("pretty")
	require.NoError(t, err)
	assert.Equal(t, LogNotifier{Pretty: true}, notifier)
}

func TestSetupQueueNotifier(t *testing.T) {
	redisServer := miniredis.RunT(t)
	t.Setenv("OVDEPARTURES_REDIS_ADDRESS", redisServer.Addr())

	notifier, err := Setup("queue")
	require.NoError(t, err)
	assert.IsType(t, &QueueNotifier{}, notifier)
}

func TestSetupErrors(t *testing.T) {
	t.Setenv("OVDEPARTURES_STOMP_ADDRESS", "")

	_, err := Setup("stomp")
	assert.Error(t, err)

	_, err = Setup("carrier-pigeon")
	assert.Error(t, err)
}
