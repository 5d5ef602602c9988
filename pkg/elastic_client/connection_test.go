package elastic_client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledWithoutConnection(t *testing.T) {
	assert.False(t, Enabled())

	assert.NotPanics(t, func() {
		IndexRequest("ovdepartures-outcomes", strings.NewReader(`{}`))
		WaitUntilQueueEmpty()
	})
}

func TestConnectSkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("OVDEPARTURES_ELASTICSEARCH_ADDRESS", "")

	assert.NoError(t, Connect(false))
	assert.False(t, Enabled())
}
