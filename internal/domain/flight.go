package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinPremium  CabinClass = "premium"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// Airport identifies an airport by its IATA code, full name and city.
type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

// FlightTime is a wall-clock time and calendar date pair. Time is zero-padded
// 24-hour HH:MM, so lexicographic comparison orders it correctly.
type FlightTime struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

// Stopover describes the intermediate airport of a one-or-more-stop offer.
type Stopover struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FlightOffer is a single bookable flight option from the catalog.
// Offers are immutable once seeded; duration is kept as normalized minutes
// and formatted for display only on the way out.
type FlightOffer struct {
	ID              string     `json:"id"`
	Airline         string     `json:"airline"`
	FlightNumber    string     `json:"flightNumber"`
	Origin          Airport    `json:"origin"`
	Destination     Airport    `json:"destination"`
	Departure       FlightTime `json:"departure"`
	Arrival         FlightTime `json:"arrival"`
	DurationMinutes int        `json:"durationMinutes"`
	Stops           int        `json:"stops"`
	Price           float64    `json:"price"`
	CabinClass      CabinClass `json:"cabinClass"`
	Aircraft        string     `json:"aircraft"`
	Amenities       []string   `json:"amenities,omitempty"`
	Stopover        *Stopover  `json:"stopover,omitempty"`
}

// SearchCriteria narrows the catalog by route and departure date.
// Origin and destination match airport code or city, case-insensitive
// substring. Unset fields are not applied.
type SearchCriteria struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departureDate"`
	Passengers    int        `json:"passengers"`
	CabinClass    CabinClass `json:"cabinClass"`
}

// Normalize fills the documented defaults: one passenger, economy class.
func (c *SearchCriteria) Normalize() {
	if c.Passengers <= 0 {
		c.Passengers = 1
	}
	if c.CabinClass == "" {
		c.CabinClass = CabinEconomy
	}
}

// Validate reports the required fields a search submission is missing.
func (c SearchCriteria) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(c.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(c.DepartureDate) == "" {
		missing = append(missing, "departureDate")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Matches reports whether the offer satisfies every set criterion.
func (c SearchCriteria) Matches(offer FlightOffer) bool {
	if c.Origin != "" && !matchesAirport(offer.Origin, c.Origin) {
		return false
	}
	if c.Destination != "" && !matchesAirport(offer.Destination, c.Destination) {
		return false
	}
	if c.DepartureDate != "" && offer.Departure.Date != c.DepartureDate {
		return false
	}
	return true
}

func matchesAirport(a Airport, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Code), q) ||
		strings.Contains(strings.ToLower(a.City), q)
}

// StopsPolicy narrows offers by their stop count.
type StopsPolicy string

const (
	StopsAny     StopsPolicy = "any"
	StopsNonstop StopsPolicy = "nonstop"
	StopsOne     StopsPolicy = "1stop"
	StopsTwoPlus StopsPolicy = "2+stops"
)

// Allows reports whether a stop count passes the policy.
func (p StopsPolicy) Allows(stops int) bool {
	switch p {
	case StopsNonstop:
		return stops == 0
	case StopsOne:
		return stops == 1
	case StopsTwoPlus:
		return stops >= 2
	default:
		return true
	}
}

// PriceRange is an inclusive price window.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RefinementFilter narrows an already-searched result set. All predicates
// are independent and compose with logical AND; zero values mean "no
// restriction" on that dimension.
type RefinementFilter struct {
	Airlines           []string    `json:"airlines,omitempty"`
	Stops              StopsPolicy `json:"stops,omitempty"`
	PriceRange         *PriceRange `json:"priceRange,omitempty"`
	MaxDurationMinutes int         `json:"maxDuration,omitempty"`
}

// Allows reports whether the offer passes every set predicate.
func (f RefinementFilter) Allows(offer FlightOffer) bool {
	if len(f.Airlines) > 0 {
		found := false
		for _, a := range f.Airlines {
			if a == offer.Airline {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.Stops.Allows(offer.Stops) {
		return false
	}
	if f.PriceRange != nil {
		if offer.Price < f.PriceRange.Min || offer.Price > f.PriceRange.Max {
			return false
		}
	}
	if f.MaxDurationMinutes > 0 && offer.DurationMinutes > f.MaxDurationMinutes {
		return false
	}
	return true
}

// SortKey orders a result set.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortDuration  SortKey = "duration"
	SortDeparture SortKey = "departure"
	SortArrival   SortKey = "arrival"
)

// ParseDuration converts a display duration like "5h 15m", "5h" or "45m"
// into minutes.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	minutes := 0
	rest := s
	if i := strings.Index(rest, "h"); i >= 0 {
		hours, err := strconv.Atoi(strings.TrimSpace(rest[:i]))
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", s, err)
		}
		minutes += hours * 60
		rest = strings.TrimSpace(rest[i+1:])
	}
	if rest != "" {
		m, err := strconv.Atoi(strings.TrimSuffix(rest, "m"))
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", s, err)
		}
		minutes += m
	}
	return minutes, nil
}

// FormatDuration renders minutes as the "5h 15m" display form.
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
