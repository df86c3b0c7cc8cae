// Package events pushes invoice lifecycle notifications to an external
// message broker. Publishing is strictly outbound and best-effort: the API
// never consumes these channels itself, and a broker outage never fails a
// request.
package events

import (
	"context"
	"fmt"

	"github.com/SaiPhaniAnirudh/invoice-manager/config"
)

// Publisher is the broker-agnostic outbound interface.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// NewPublisher selects a broker backend from config. Returns (nil, nil) when
// no backend is configured, which disables event publishing.
func NewPublisher(ctx context.Context, cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQ)
	case "pubsub":
		return NewPubSubPublisher(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}
