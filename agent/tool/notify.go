package tool

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	qstashx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/qstash"
)

// Publisher is satisfied by *qstashx.Client.
type Publisher interface {
	Publish(ctx context.Context, payload any) (string, error)
}

var _ Publisher = (*qstashx.Client)(nil)

// QueueNotifier publishes booking events to a message queue.
type QueueNotifier struct {
	publisher Publisher
}

func NewQueueNotifier(p Publisher) (*QueueNotifier, error) {
	if p == nil {
		return nil, errors.New("publisher is required")
	}
	return &QueueNotifier{publisher: p}, nil
}

type bookingMessage struct {
	Type  string       `json:"type"`
	Event BookingEvent `json:"event"`
}

func (n *QueueNotifier) BookingConfirmed(ctx context.Context, event BookingEvent) error {
	id, err := n.publisher.Publish(ctx, bookingMessage{Type: "booking.confirmed", Event: event})
	if err != nil {
		return err
	}
	log.Info().Str("message_id", id).Str("confirmation", event.ConfirmationNumber).Msg("booking event published")
	return nil
}
