package repository

import (
	"context"
	"sync"

	"github.com/tripforge/flightbooking/internal/domain"
)

// MemFlightRepository serves offers from an in-process catalog snapshot.
type MemFlightRepository struct {
	mu     sync.RWMutex
	offers []domain.FlightOffer
}

func NewMemFlightRepository(offers []domain.FlightOffer) *MemFlightRepository {
	snapshot := make([]domain.FlightOffer, len(offers))
	copy(snapshot, offers)
	return &MemFlightRepository{offers: snapshot}
}

func (r *MemFlightRepository) List(ctx context.Context) ([]domain.FlightOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FlightOffer, len(r.offers))
	copy(out, r.offers)
	return out, nil
}

func (r *MemFlightRepository) GetByID(ctx context.Context, id string) (*domain.FlightOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, offer := range r.offers {
		if offer.ID == id {
			found := offer
			return &found, nil
		}
	}
	return nil, domain.ErrFlightNotFound
}

// Search returns the offers matching every set criterion, in catalog order.
// Zero matches is a valid outcome, not an error.
func (r *MemFlightRepository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]domain.FlightOffer, 0, len(r.offers))
	for _, offer := range r.offers {
		if criteria.Matches(offer) {
			results = append(results, offer)
		}
	}
	return results, nil
}

var _ FlightRepository = (*MemFlightRepository)(nil)
