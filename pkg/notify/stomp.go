package notify

import (
	"context"
	"encoding/json"

	"github.com/go-stomp/stomp/v3"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/pipeline"
)

const DefaultStompDestination = "/topic/departures"

type StompNotifier struct {
	Address     string
	Username    string
	Password    string
	Destination string

	conn *stomp.Conn
}

func (n *StompNotifier) Connect() error {
	var stompOptions []func(*stomp.Conn) error
	if n.Username != "" {
		stompOptions = append(stompOptions, stomp.ConnOpt.Login(n.Username, n.Password))
	}

	conn, err := stomp.Dial("tcp", n.Address, stompOptions...)
	if err != nil {
		return err
	}
	n.conn = conn

	log.Info().Str("address", n.Address).Str("destination", n.destination()).Msg("Connected to STOMP server")

	return nil
}

func (n *StompNotifier) Notify(_ context.Context, result pipeline.Result) error {
	if n.conn == nil {
		if err := n.Connect(); err != nil {
			return err
		}
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return n.conn.Send(n.destination(), "application/json", resultBytes,
		stomp.SendOpt.Header("identifier", result.Identifier))
}

func (n *StompNotifier) Close() error {
	if n.conn == nil {
		return nil
	}

	return n.conn.Disconnect()
}

func (n *StompNotifier) destination() string {
	if n.Destination != "" {
		return n.Destination
	}

	return DefaultStompDestination
}
