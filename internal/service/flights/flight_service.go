package flights

import (
	"context"
	"sort"
	"strings"

	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/metrics"
	"github.com/tripforge/flightbooking/internal/repository"
)

type FlightUseCase interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error)
	GetByID(ctx context.Context, id string) (*domain.FlightOffer, error)
	Airports(ctx context.Context, query string) ([]domain.Airport, error)
	Airlines(ctx context.Context) ([]string, error)
}

// Cache holds recent search result sets. Optional: the service works
// without one.
type Cache interface {
	GetSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error)
	SetSearch(ctx context.Context, criteria domain.SearchCriteria, offers []domain.FlightOffer) error
}

type FlightService struct {
	repo     repository.FlightRepository
	cache    Cache
	airports []domain.Airport
	airlines []string
	metrics  *metrics.Metrics
}

type FlightServiceOption func(*FlightService)

func WithCache(cache Cache) FlightServiceOption {
	return func(s *FlightService) { s.cache = cache }
}

func WithMetrics(m *metrics.Metrics) FlightServiceOption {
	return func(s *FlightService) { s.metrics = m }
}

func NewFlightService(repo repository.FlightRepository, airports []domain.Airport, airlines []string, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, airports: airports, airlines: airlines}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search narrows the catalog by the set criteria. An empty result set is a
// valid outcome, never an error.
func (s *FlightService) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	criteria.Normalize()

	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, criteria); err == nil && cached != nil {
			return cached, nil
		}
	}

	results, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetSearch(ctx, criteria, results)
	}
	if s.metrics != nil {
		s.metrics.SearchesTotal.Inc()
		if len(results) == 0 {
			s.metrics.EmptySearches.Inc()
		}
	}
	return results, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.FlightOffer, error) {
	return s.repo.GetByID(ctx, id)
}

// Airports returns airports matching the query against code, name or city,
// case-insensitively. An empty query returns all of them.
func (s *FlightService) Airports(ctx context.Context, query string) ([]domain.Airport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query == "" {
		out := make([]domain.Airport, len(s.airports))
		copy(out, s.airports)
		return out, nil
	}

	q := strings.ToLower(query)
	matched := make([]domain.Airport, 0)
	for _, a := range s.airports {
		if strings.Contains(strings.ToLower(a.Code), q) ||
			strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.City), q) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (s *FlightService) Airlines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, len(s.airlines))
	copy(out, s.airlines)
	return out, nil
}

// Refine keeps the offers passing every set predicate. Predicates are
// independent, so application order cannot change the result set. The input
// slice is not mutated.
func Refine(offers []domain.FlightOffer, filter domain.RefinementFilter) []domain.FlightOffer {
	out := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if filter.Allows(offer) {
			out = append(out, offer)
		}
	}
	return out
}

// Sort returns a new slice ordered by the key. The sort is stable: offers
// equal under the key keep their relative order. Time keys compare the
// zero-padded HH:MM strings directly.
func Sort(offers []domain.FlightOffer, key domain.SortKey) []domain.FlightOffer {
	out := make([]domain.FlightOffer, len(offers))
	copy(out, offers)

	switch key {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case domain.SortDuration:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DurationMinutes < out[j].DurationMinutes })
	case domain.SortDeparture:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Departure.Time < out[j].Departure.Time })
	case domain.SortArrival:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Arrival.Time < out[j].Arrival.Time })
	}
	return out
}

// PriceBounds reports the min and max price across the offers. Used to seed
// the refinement filter when a result set is first displayed.
func PriceBounds(offers []domain.FlightOffer) domain.PriceRange {
	if len(offers) == 0 {
		return domain.PriceRange{Min: 0, Max: 1000}
	}

	bounds := domain.PriceRange{Min: offers[0].Price, Max: offers[0].Price}
	for _, offer := range offers[1:] {
		if offer.Price < bounds.Min {
			bounds.Min = offer.Price
		}
		if offer.Price > bounds.Max {
			bounds.Max = offer.Price
		}
	}
	return bounds
}

var _ FlightUseCase = (*FlightService)(nil)
