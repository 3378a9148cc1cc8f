// Package payments holds the mock payment processor. It approves anything
// that looks like a card, after a bounded simulated delay; there is no real
// payment integration.
package payments

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripforge/flightbooking/internal/domain"
)

type Processor interface {
	Process(ctx context.Context, details domain.PaymentDetails) (string, error)
}

type MockProcessor struct {
	latency       time.Duration
	declineSuffix string
}

type MockProcessorOption func(*MockProcessor)

// WithLatency sets the simulated network delay for each payment attempt.
func WithLatency(d time.Duration) MockProcessorOption {
	return func(p *MockProcessor) { p.latency = d }
}

// WithDeclineSuffix makes the processor decline cards whose number ends in
// the suffix. Gives callers a deterministic failure path.
func WithDeclineSuffix(suffix string) MockProcessorOption {
	return func(p *MockProcessor) { p.declineSuffix = suffix }
}

func NewMockProcessor(opts ...MockProcessorOption) *MockProcessor {
	p := &MockProcessor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates the details and returns a payment transaction ID.
// Rejections come back as *domain.PaymentError and are retryable.
func (p *MockProcessor) Process(ctx context.Context, details domain.PaymentDetails) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}

	card := strings.ReplaceAll(strings.TrimSpace(details.CardNumber), " ", "")
	switch {
	case card == "":
		return "", &domain.PaymentError{Reason: "card number is required", Retryable: true}
	case strings.TrimSpace(details.CardholderName) == "":
		return "", &domain.PaymentError{Reason: "cardholder name is required", Retryable: true}
	case strings.TrimSpace(details.Expiry) == "":
		return "", &domain.PaymentError{Reason: "expiry is required", Retryable: true}
	case strings.TrimSpace(details.CVV) == "":
		return "", &domain.PaymentError{Reason: "cvv is required", Retryable: true}
	}

	if p.declineSuffix != "" && strings.HasSuffix(card, p.declineSuffix) {
		return "", &domain.PaymentError{Reason: "card declined", Retryable: true}
	}

	return "pay_" + uuid.NewString(), nil
}

func (p *MockProcessor) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Processor = (*MockProcessor)(nil)
