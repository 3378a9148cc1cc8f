package booking

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/kafka"
	"github.com/tripforge/flightbooking/internal/metrics"
	"github.com/tripforge/flightbooking/internal/repository"
	"github.com/tripforge/flightbooking/internal/service/payments"
)

type BookingUseCase interface {
	BookFlight(ctx context.Context, input BookFlightInput) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	IssueTicket(ctx context.Context, bookingID string) (*domain.ETicket, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookFlightInput carries the pinned offer and the payment submission.
// The offer is a copy taken at selection time, so a changed result set
// cannot alter what gets booked.
type BookFlightInput struct {
	Offer      domain.FlightOffer
	Passengers int
	Payment    domain.PaymentDetails
}

type BookingService struct {
	bookings  repository.BookingRepository
	processor payments.Processor
	producer  Producer
	topic     string
	log       *slog.Logger
	metrics   *metrics.Metrics
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) { s.metrics = m }
}

func NewBookingService(bookings repository.BookingRepository, processor payments.Processor, log *slog.Logger, opts ...BookingServiceOption) *BookingService {
	s := &BookingService{bookings: bookings, processor: processor, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BookFlight charges the payment and, only on success, creates the booking.
// A rejected payment comes back as *domain.PaymentError with no booking
// created; the caller may retry.
func (s *BookingService) BookFlight(ctx context.Context, input BookFlightInput) (*domain.Booking, error) {
	passengers := input.Passengers
	if passengers <= 0 {
		passengers = 1
	}

	paymentID, err := s.processor.Process(ctx, input.Payment)
	if err != nil {
		if s.metrics != nil && domain.IsPayment(err) {
			s.metrics.PaymentFailures.Inc()
		}
		return nil, err
	}

	offer := input.Offer
	booking := &domain.Booking{
		Type:     domain.BookingTypeFlight,
		Provider: offer.Airline,
		Price:    offer.Price,
		Flight: &domain.FlightDetails{
			FlightNumber:    offer.FlightNumber,
			Origin:          offer.Origin,
			Destination:     offer.Destination,
			Departure:       offer.Departure,
			Arrival:         offer.Arrival,
			DurationMinutes: offer.DurationMinutes,
			Stops:           offer.Stops,
			Aircraft:        offer.Aircraft,
			Passengers:      passengers,
			CabinClass:      offer.CabinClass,
			PassengerName:   input.Payment.CardholderName,
		},
		PaymentStatus:   domain.PaymentCompleted,
		PaymentID:       paymentID,
		TicketGenerated: true,
		Status:          domain.BookingConfirmed,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Delete removes the booking permanently. The system is single-user, so
// there is no ownership check here.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.BookingsDeleted.Inc()
	}
	booking.Status = domain.BookingCancelled
	s.publish(ctx, "booking_cancelled", booking)
	return nil
}

// IssueTicket regenerates the e-ticket for a paid booking. Identity fields
// come from the booking and are stable across calls; GeneratedAt is fresh on
// each one. The store is not touched.
func (s *BookingService) IssueTicket(ctx context.Context, bookingID string) (*domain.ETicket, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus != domain.PaymentCompleted {
		return nil, domain.ErrTicketNotPaid
	}

	passengerName := ""
	if booking.Flight != nil {
		passengerName = booking.Flight.PassengerName
	}

	ticket := &domain.ETicket{
		TicketNumber:       booking.TicketNumber,
		BookingID:          booking.ID,
		ConfirmationNumber: booking.ConfirmationNumber,
		PassengerName:      passengerName,
		QRCode:             qrPayload(booking),
		GeneratedAt:        time.Now().UTC(),
	}

	if s.metrics != nil {
		s.metrics.TicketsIssued.Inc()
	}
	s.publish(ctx, "ticket_issued", booking)
	return ticket, nil
}

// qrPayload is an opaque string keyed to the ticket number, deterministic
// for a given booking.
func qrPayload(b *domain.Booking) string {
	raw := fmt.Sprintf("flightbooking:%s:%s", b.TicketNumber, b.ConfirmationNumber)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:               eventType,
		BookingID:          booking.ID,
		ConfirmationNumber: booking.ConfirmationNumber,
		TicketNumber:       booking.TicketNumber,
		Provider:           booking.Provider,
		Price:              booking.Price,
		OccurredAt:         time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.topic, booking.ID, event); err != nil {
		s.log.Warn("failed to publish booking event", "event", eventType, "bookingId", booking.ID, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
