package notify

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/travigo/ovdepartures/pkg/pipeline"
)

const DefaultResultsQueue = "departures-results"

// QueueNotifier publishes every result as JSON onto a redis queue
type QueueNotifier struct {
	Queue rmq.Queue
}

func NewQueueNotifier(connection rmq.Connection, queueName string) (*QueueNotifier, error) {
	queue, err := connection.OpenQueue(queueName)
	if err != nil {
		return nil, err
	}

	return &QueueNotifier{Queue: queue}, nil
}

func (n *QueueNotifier) Notify(_ context.Context, result pipeline.Result) error {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return n.Queue.PublishBytes(resultBytes)
}
