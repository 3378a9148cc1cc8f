package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripforge/flightbooking/internal/domain"
)

const maxNumberAttempts = 5

// MemBookingRepository keeps bookings in memory, newest first. Numbers
// handed out are never reused, even after the booking is deleted.
type MemBookingRepository struct {
	mu       sync.Mutex
	bookings []domain.Booking
	issued   map[string]struct{}
}

func NewMemBookingRepository() *MemBookingRepository {
	return &MemBookingRepository{issued: make(map[string]struct{})}
}

// Create assigns ID, confirmation number, ticket number and timestamps, then
// inserts at the head of the collection. The uniqueness check and the insert
// happen under one lock, so same-tick double submission cannot collide.
func (r *MemBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	confirmation, err := r.uniqueNumber(newConfirmationNumber)
	if err != nil {
		return err
	}
	ticket, err := r.uniqueNumber(newTicketNumber)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	booking.ID = uuid.NewString()
	booking.ConfirmationNumber = confirmation
	booking.TicketNumber = ticket
	booking.CreatedAt = now
	booking.UpdatedAt = now

	r.bookings = append([]domain.Booking{*booking}, r.bookings...)
	return nil
}

func (r *MemBookingRepository) uniqueNumber(gen func() string) (string, error) {
	for i := 0; i < maxNumberAttempts; i++ {
		n := gen()
		if _, taken := r.issued[n]; !taken {
			r.issued[n] = struct{}{}
			return n, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique booking number after %d attempts", maxNumberAttempts)
}

func (r *MemBookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *MemBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

// Delete removes the booking permanently. No tombstone, no undo.
func (r *MemBookingRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return domain.ErrBookingNotFound
}

var _ BookingRepository = (*MemBookingRepository)(nil)
