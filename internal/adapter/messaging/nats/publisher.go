package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Publisher emits JSON-encoded domain events.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Publish(_ context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
