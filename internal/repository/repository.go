package repository

import (
	"context"

	"github.com/tripforge/flightbooking/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.FlightOffer, error)
	GetByID(ctx context.Context, id string) (*domain.FlightOffer, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error)
}

// BookingRepository is the booking store. Create assigns the booking ID,
// confirmation number, ticket number and timestamps; both numbers are unique
// across the store's lifetime. Listing is most-recent-first.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetAll(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}
