// Package workflow drives a single booking session through
// search -> results -> payment -> confirmed. One Workflow instance belongs
// to one user session; instances share nothing but the injected services.
package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/service/booking"
	"github.com/tripforge/flightbooking/internal/service/flights"
)

type State string

const (
	StateSearch    State = "search"
	StateResults   State = "results"
	StatePayment   State = "payment"
	StateConfirmed State = "confirmed"
)

var (
	ErrNoActiveResults   = errors.New("no active result set")
	ErrNoSelection       = errors.New("no flight selected")
	ErrPaymentInFlight   = errors.New("payment already in progress")
	ErrOfferNotDisplayed = errors.New("offer is not in the displayed results")
	ErrAbandoned         = errors.New("workflow was cancelled")
)

// FlightSearcher is the slice of the flight service the workflow needs.
type FlightSearcher interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error)
}

// FlightBooker charges the payment and creates the booking in one step.
type FlightBooker interface {
	BookFlight(ctx context.Context, input booking.BookFlightInput) (*domain.Booking, error)
}

// Workflow is the per-session state machine. All mutating operations are
// serialized on its mutex; the asynchronous search and payment calls run
// outside the lock and re-validate against the epoch before committing, so
// an abandoned request can never overwrite newer state.
type Workflow struct {
	searcher FlightSearcher
	booker   FlightBooker

	mu              sync.Mutex
	epoch           uint64
	state           State
	criteria        domain.SearchCriteria
	results         []domain.FlightOffer
	displayed       []domain.FlightOffer
	filter          domain.RefinementFilter
	sortKey         domain.SortKey
	selected        *domain.FlightOffer
	booking         *domain.Booking
	paymentInFlight bool
}

// Snapshot is the outbound view of the workflow: the current state tag plus
// whatever data that state carries, so the UI never re-derives transitions.
type Snapshot struct {
	State     State                   `json:"state"`
	Criteria  domain.SearchCriteria   `json:"criteria"`
	Results   []domain.FlightOffer    `json:"results"`
	Filter    domain.RefinementFilter `json:"filter"`
	SortKey   domain.SortKey          `json:"sortBy"`
	Selected  *domain.FlightOffer     `json:"selected,omitempty"`
	Booking   *domain.Booking         `json:"booking,omitempty"`
	InPayment bool                    `json:"paymentInFlight"`
}

func New(searcher FlightSearcher, booker FlightBooker) *Workflow {
	return &Workflow{
		searcher: searcher,
		booker:   booker,
		state:    StateSearch,
		sortKey:  domain.SortPriceAsc,
	}
}

// Search validates the criteria and runs the catalog search. On a non-empty
// result the workflow moves to the results state with the refinement filter
// seeded from the result set's price bounds and the default price-ascending
// sort applied. An empty result keeps the workflow in the search state; the
// caller sees the empty slice, not an error.
func (w *Workflow) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.state == StatePayment && w.paymentInFlight {
		w.mu.Unlock()
		return nil, ErrPaymentInFlight
	}
	epoch := w.epoch
	w.mu.Unlock()

	results, err := w.searcher.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.epoch != epoch {
		// The session moved on (cancel or newer search) while this search
		// was in flight. Drop the stale response.
		return nil, ErrAbandoned
	}

	if len(results) == 0 {
		return []domain.FlightOffer{}, nil
	}

	w.epoch++
	w.state = StateResults
	w.criteria = criteria
	w.results = results
	bounds := flights.PriceBounds(results)
	w.filter = domain.RefinementFilter{PriceRange: &bounds}
	w.sortKey = domain.SortPriceAsc
	w.selected = nil
	w.booking = nil
	w.recompute()

	out := make([]domain.FlightOffer, len(w.displayed))
	copy(out, w.displayed)
	return out, nil
}

// SetFilter replaces the refinement filter and recomputes the displayed set.
// Valid only while results are shown; it never touches the booking store.
func (w *Workflow) SetFilter(filter domain.RefinementFilter) ([]domain.FlightOffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateResults {
		return nil, ErrNoActiveResults
	}

	w.filter = filter
	w.recompute()

	out := make([]domain.FlightOffer, len(w.displayed))
	copy(out, w.displayed)
	return out, nil
}

// SetSort replaces the sort key and recomputes the displayed set.
func (w *Workflow) SetSort(key domain.SortKey) ([]domain.FlightOffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateResults {
		return nil, ErrNoActiveResults
	}

	w.sortKey = key
	w.recompute()

	out := make([]domain.FlightOffer, len(w.displayed))
	copy(out, w.displayed)
	return out, nil
}

// SelectFlight pins one offer from the currently displayed set and moves to
// the payment state. The pin is a copy: later filter or sort changes cannot
// alter what gets booked.
func (w *Workflow) SelectFlight(offerID string) (*domain.FlightOffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateResults {
		return nil, ErrNoActiveResults
	}

	for _, offer := range w.displayed {
		if offer.ID == offerID {
			pinned := offer
			w.selected = &pinned
			w.state = StatePayment
			return &pinned, nil
		}
	}
	return nil, ErrOfferNotDisplayed
}

// Back discards the pinned selection and returns to the results state.
// Allowed any time before a payment submission succeeds, but not while one
// is still in flight.
func (w *Workflow) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StatePayment {
		return ErrNoSelection
	}
	if w.paymentInFlight {
		return ErrPaymentInFlight
	}

	w.selected = nil
	w.state = StateResults
	return nil
}

// SubmitPayment runs the payment and, on success, commits the confirmed
// booking and finishes the workflow. Only one payment attempt may be in
// flight per workflow instance; a second submission before the first
// resolves is rejected outright, so double submission cannot create two
// bookings. A rejected payment leaves the workflow in the payment state for
// a retry.
func (w *Workflow) SubmitPayment(ctx context.Context, details domain.PaymentDetails) (*domain.Booking, error) {
	w.mu.Lock()
	if w.state != StatePayment || w.selected == nil {
		w.mu.Unlock()
		return nil, ErrNoSelection
	}
	if w.paymentInFlight {
		w.mu.Unlock()
		return nil, ErrPaymentInFlight
	}
	w.paymentInFlight = true
	epoch := w.epoch
	input := booking.BookFlightInput{
		Offer:      *w.selected,
		Passengers: w.criteria.Passengers,
		Payment:    details,
	}
	w.mu.Unlock()

	created, err := w.booker.BookFlight(ctx, input)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.paymentInFlight = false

	if w.epoch != epoch {
		// Cancelled while the payment was in flight: the workflow state is
		// gone, so the result is not applied here. The booking, if one was
		// created, still lives in the store.
		return nil, ErrAbandoned
	}
	if err != nil {
		// Payment rejected: stay in the payment state, caller may retry or
		// navigate back.
		return nil, err
	}

	w.epoch++
	w.state = StateConfirmed
	w.booking = created
	w.selected = nil
	return created, nil
}

// Cancel discards all workflow state with no side effects on the booking
// store. Any search or payment still in flight is abandoned: its result
// will not be applied.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.epoch++
	w.state = StateSearch
	w.criteria = domain.SearchCriteria{}
	w.results = nil
	w.displayed = nil
	w.filter = domain.RefinementFilter{}
	w.sortKey = domain.SortPriceAsc
	w.selected = nil
	w.booking = nil
}

// Snapshot returns a copy of the current workflow state for rendering.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		State:     w.state,
		Criteria:  w.criteria,
		Filter:    w.filter,
		SortKey:   w.sortKey,
		InPayment: w.paymentInFlight,
	}
	snap.Results = make([]domain.FlightOffer, len(w.displayed))
	copy(snap.Results, w.displayed)
	if w.selected != nil {
		pinned := *w.selected
		snap.Selected = &pinned
	}
	if w.booking != nil {
		b := *w.booking
		snap.Booking = &b
	}
	return snap
}

// recompute derives the displayed set: refinement first, then sort.
// Callers hold the mutex.
func (w *Workflow) recompute() {
	w.displayed = flights.Sort(flights.Refine(w.results, w.filter), w.sortKey)
}
