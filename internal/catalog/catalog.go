// Package catalog holds the seeded flight inventory. The data set is static
// and loaded into whichever flight repository the app wires up at startup.
package catalog

import "github.com/tripforge/flightbooking/internal/domain"

var (
	jfk = domain.Airport{Code: "JFK", Name: "John F. Kennedy International", City: "New York"}
	lax = domain.Airport{Code: "LAX", Name: "Los Angeles International", City: "Los Angeles"}
)

// Flights returns the seed flight offers. Durations are normalized to
// minutes at ingestion; the display form is derived only for presentation.
func Flights() []domain.FlightOffer {
	return []domain.FlightOffer{
		{
			ID:              "fl_001",
			Airline:         "Delta Airlines",
			FlightNumber:    "DL 1234",
			Origin:          jfk,
			Destination:     lax,
			Departure:       domain.FlightTime{Time: "08:30", Date: "2024-12-15"},
			Arrival:         domain.FlightTime{Time: "11:45", Date: "2024-12-15"},
			DurationMinutes: mustMinutes("5h 15m"),
			Stops:           0,
			Price:           489,
			CabinClass:      domain.CabinEconomy,
			Aircraft:        "Boeing 737-800",
			Amenities:       []string{"WiFi", "Entertainment", "Power Outlets"},
		},
		{
			ID:              "fl_002",
			Airline:         "American Airlines",
			FlightNumber:    "AA 5678",
			Origin:          jfk,
			Destination:     lax,
			Departure:       domain.FlightTime{Time: "14:20", Date: "2024-12-15"},
			Arrival:         domain.FlightTime{Time: "17:35", Date: "2024-12-15"},
			DurationMinutes: mustMinutes("5h 15m"),
			Stops:           0,
			Price:           524,
			CabinClass:      domain.CabinEconomy,
			Aircraft:        "Airbus A321",
			Amenities:       []string{"WiFi", "Entertainment"},
		},
		{
			ID:              "fl_003",
			Airline:         "United Airlines",
			FlightNumber:    "UA 9012",
			Origin:          jfk,
			Destination:     lax,
			Departure:       domain.FlightTime{Time: "19:45", Date: "2024-12-15"},
			Arrival:         domain.FlightTime{Time: "23:00", Date: "2024-12-15"},
			DurationMinutes: mustMinutes("5h 15m"),
			Stops:           0,
			Price:           445,
			CabinClass:      domain.CabinEconomy,
			Aircraft:        "Boeing 777-200",
			Amenities:       []string{"WiFi", "Entertainment", "Power Outlets", "USB Ports"},
		},
		{
			ID:              "fl_004",
			Airline:         "Southwest Airlines",
			FlightNumber:    "WN 3456",
			Origin:          jfk,
			Destination:     lax,
			Departure:       domain.FlightTime{Time: "06:15", Date: "2024-12-15"},
			Arrival:         domain.FlightTime{Time: "12:30", Date: "2024-12-15"},
			DurationMinutes: mustMinutes("8h 15m"),
			Stops:           1,
			Price:           329,
			CabinClass:      domain.CabinEconomy,
			Aircraft:        "Boeing 737-700",
			Stopover:        &domain.Stopover{Code: "DEN", Name: "Denver International", DurationMinutes: mustMinutes("1h 30m")},
		},
		{
			ID:              "fl_005",
			Airline:         "JetBlue Airways",
			FlightNumber:    "B6 7890",
			Origin:          jfk,
			Destination:     lax,
			Departure:       domain.FlightTime{Time: "16:10", Date: "2024-12-15"},
			Arrival:         domain.FlightTime{Time: "22:25", Date: "2024-12-15"},
			DurationMinutes: mustMinutes("8h 15m"),
			Stops:           1,
			Price:           398,
			CabinClass:      domain.CabinEconomy,
			Aircraft:        "Airbus A320",
			Stopover:        &domain.Stopover{Code: "PHX", Name: "Phoenix Sky Harbor", DurationMinutes: mustMinutes("2h")},
		},
		{
			ID:              "fl_006",
			Airline:         "Delta Airlines",
			FlightNumber:    "DL 2468",
			Origin:          lax,
			Destination:     jfk,
			Departure:       domain.FlightTime{Time: "09:15", Date: "2024-12-20"},
			Arrival:         domain.FlightTime{Time: "17:30", Date: "2024-12-20"},
			DurationMinutes: mustMinutes("5h 15m"),
			Stops:           0,
			Price:           512,
			CabinClass:      domain.CabinEconomy,
			Aircraft:        "Boeing 757-200",
		},
	}
}

// Airports returns the airports known to the catalog.
func Airports() []domain.Airport {
	return []domain.Airport{
		jfk,
		lax,
		{Code: "ORD", Name: "O'Hare International", City: "Chicago"},
		{Code: "DFW", Name: "Dallas/Fort Worth International", City: "Dallas"},
		{Code: "DEN", Name: "Denver International", City: "Denver"},
		{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International", City: "Atlanta"},
		{Code: "SEA", Name: "Seattle-Tacoma International", City: "Seattle"},
		{Code: "SFO", Name: "San Francisco International", City: "San Francisco"},
		{Code: "MIA", Name: "Miami International", City: "Miami"},
		{Code: "BOS", Name: "Logan International", City: "Boston"},
	}
}

// Airlines returns the carriers known to the catalog.
func Airlines() []string {
	return []string{
		"Delta Airlines",
		"American Airlines",
		"United Airlines",
		"Southwest Airlines",
		"JetBlue Airways",
		"Alaska Airlines",
		"Spirit Airlines",
		"Frontier Airlines",
	}
}

func mustMinutes(display string) int {
	m, err := domain.ParseDuration(display)
	if err != nil {
		panic(err)
	}
	return m
}
