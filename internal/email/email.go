package email

import (
	"context"
	"log/slog"

	"github.com/tripforge/flightbooking/internal/kafka"
)

// Sender delivers booking notifications. The delivery is mocked: messages
// are logged instead of hitting a real mail provider.
type Sender struct {
	log *slog.Logger
}

func NewSender(log *slog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("sending booking notification",
		"event", event.Type,
		"bookingId", event.BookingID,
		"confirmation", event.ConfirmationNumber,
		"provider", event.Provider,
	)
	return nil
}
