package notify

import (
	"fmt"

	"github.com/travigo/ovdepartures/pkg/pipeline"
	"github.com/travigo/ovdepartures/pkg/redis_client"
	"github.com/travigo/ovdepartures/pkg/util"
)

var Kinds = []string{"log", "pretty", "queue", "stomp"}

// Setup builds the notifier of the given kind, connecting to redis or the STOMP server as needed
func Setup(kind string) (pipeline.Notifier, error) {
	env := util.GetEnvironmentVariables()

	switch kind {
	case "", "log":
		return LogNotifier{}, nil
	case "pretty":
		return LogNotifier{Pretty: true}, nil
	case "queue":
		if redis_client.QueueConnection == nil {
			if err := redis_client.Connect(); err != nil {
				return nil, err
			}
		}

		notifier, err := NewQueueNotifier(redis_client.QueueConnection, util.GetEnvironmentVariable(env, "OVDEPARTURES_RESULTS_QUEUE", DefaultResultsQueue))
		if err != nil {
			return nil, err
		}

		return notifier, nil
	case "stomp":
		if env["OVDEPARTURES_STOMP_ADDRESS"] == "" {
			return nil, fmt.Errorf("\"OVDEPARTURES_STOMP_ADDRESS\" not set in environment")
		}

		notifier := &StompNotifier{
			Address:     env["OVDEPARTURES_STOMP_ADDRESS"],
			Username:    env["OVDEPARTURES_STOMP_USERNAME"],
			Password:    env["OVDEPARTURES_STOMP_PASSWORD"],
			Destination: env["OVDEPARTURES_STOMP_DESTINATION"],
		}

		if err := notifier.Connect(); err != nil {
			return nil, err
		}

		return notifier, nil
	}

	return nil, fmt.Errorf("unknown notifier %q, expected one of %v", kind, Kinds)
}
