package booking

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/flightbooking/internal/catalog"
	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/kafka"
	"github.com/tripforge/flightbooking/internal/repository"
	"github.com/tripforge/flightbooking/internal/service/payments"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func validPayment() domain.PaymentDetails {
	return domain.PaymentDetails{
		CardNumber:     "4242 4242 4242 4242",
		CardholderName: "John Doe",
		Expiry:         "12/26",
		CVV:            "123",
	}
}

func TestBookingService_BookFlight(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemBookingRepository()
	svc := NewBookingService(repo, payments.NewMockProcessor(), testLogger())

	offer := catalog.Flights()[0] // Delta 489 nonstop

	booking, err := svc.BookFlight(ctx, BookFlightInput{Offer: offer, Passengers: 2, Payment: validPayment()})
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, domain.BookingTypeFlight, booking.Type)
	assert.Equal(t, "Delta Airlines", booking.Provider)
	assert.Equal(t, float64(489), booking.Price)
	assert.Equal(t, domain.PaymentCompleted, booking.PaymentStatus)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.True(t, booking.TicketGenerated)
	assert.NotEmpty(t, booking.PaymentID)

	require.NotNil(t, booking.Flight)
	assert.Equal(t, "DL 1234", booking.Flight.FlightNumber)
	assert.Equal(t, 2, booking.Flight.Passengers)
	assert.Equal(t, "John Doe", booking.Flight.PassengerName)

	stored, err := svc.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ConfirmationNumber, stored.ConfirmationNumber)
}

func TestBookingService_BookFlightDefaultsPassengers(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(repository.NewMemBookingRepository(), payments.NewMockProcessor(), testLogger())

	booking, err := svc.BookFlight(ctx, BookFlightInput{Offer: catalog.Flights()[0], Payment: validPayment()})
	require.NoError(t, err)
	assert.Equal(t, 1, booking.Flight.Passengers)
}

func TestBookingService_DeclinedPaymentCreatesNothing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemBookingRepository()
	svc := NewBookingService(repo, payments.NewMockProcessor(payments.WithDeclineSuffix("0000")), testLogger())

	payment := validPayment()
	payment.CardNumber = "4242 4242 4242 0000"

	_, err := svc.BookFlight(ctx, BookFlightInput{Offer: catalog.Flights()[0], Payment: payment})
	require.Error(t, err)
	assert.True(t, domain.IsPayment(err))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBookingService_BookFlightPublishesEvent(t *testing.T) {
	ctx := context.Background()
	producer := new(mockProducer)
	svc := NewBookingService(
		repository.NewMemBookingRepository(),
		payments.NewMockProcessor(),
		testLogger(),
		WithProducer(producer, "bookings"),
	)

	producer.On("Publish", ctx, "bookings", mock.AnythingOfType("string"), mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.BookingEvent)
		return ok && event.Type == "booking_created" && event.Provider == "Delta Airlines"
	})).Return(nil)

	_, err := svc.BookFlight(ctx, BookFlightInput{Offer: catalog.Flights()[0], Payment: validPayment()})
	require.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestBookingService_Delete(t *testing.T) {
	ctx := context.Background()
	producer := new(mockProducer)
	svc := NewBookingService(
		repository.NewMemBookingRepository(),
		payments.NewMockProcessor(),
		testLogger(),
		WithProducer(producer, "bookings"),
	)
	producer.On("Publish", ctx, "bookings", mock.AnythingOfType("string"), mock.Anything).Return(nil)

	booking, err := svc.BookFlight(ctx, BookFlightInput{Offer: catalog.Flights()[0], Payment: validPayment()})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))

	_, err = svc.GetByID(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	err = svc.Delete(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	producer.AssertNumberOfCalls(t, "Publish", 2) // created, then cancelled
}

func TestBookingService_IssueTicket(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(repository.NewMemBookingRepository(), payments.NewMockProcessor(), testLogger())

	booking, err := svc.BookFlight(ctx, BookFlightInput{Offer: catalog.Flights()[0], Payment: validPayment()})
	require.NoError(t, err)

	first, err := svc.IssueTicket(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.TicketNumber, first.TicketNumber)
	assert.Equal(t, booking.ID, first.BookingID)
	assert.Equal(t, booking.ConfirmationNumber, first.ConfirmationNumber)
	assert.Equal(t, "John Doe", first.PassengerName)
	assert.NotEmpty(t, first.QRCode)
	assert.False(t, first.GeneratedAt.IsZero())

	// Reissuing yields the same identity, only GeneratedAt moves.
	second, err := svc.IssueTicket(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, first.TicketNumber, second.TicketNumber)
	assert.Equal(t, first.ConfirmationNumber, second.ConfirmationNumber)
	assert.Equal(t, first.QRCode, second.QRCode)
	assert.False(t, second.GeneratedAt.Before(first.GeneratedAt))

	_, err = svc.IssueTicket(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_IssueTicketRequiresCompletedPayment(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemBookingRepository()
	svc := NewBookingService(repo, payments.NewMockProcessor(), testLogger())

	unpaid := &domain.Booking{
		Type:          domain.BookingTypeFlight,
		Provider:      "Delta Airlines",
		PaymentStatus: domain.PaymentPending,
		Status:        domain.BookingConfirmed,
	}
	require.NoError(t, repo.Create(ctx, unpaid))

	_, err := svc.IssueTicket(ctx, unpaid.ID)
	assert.ErrorIs(t, err, domain.ErrTicketNotPaid)
}
