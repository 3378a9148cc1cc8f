package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "hours and minutes", input: "5h 15m", want: 315},
		{name: "hours only", input: "5h", want: 300},
		{name: "minutes only", input: "45m", want: 45},
		{name: "compact", input: "2h", want: 120},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "five hours", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDuration(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5h 15m", FormatDuration(315))
	assert.Equal(t, "5h", FormatDuration(300))
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "0m", FormatDuration(0))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, display := range []string{"5h 15m", "8h 15m", "1h 30m", "45m", "2h"} {
		minutes, err := ParseDuration(display)
		assert.NoError(t, err)
		assert.Equal(t, display, FormatDuration(minutes))
	}
}

func TestStopsPolicy_Allows(t *testing.T) {
	assert.True(t, StopsAny.Allows(0))
	assert.True(t, StopsAny.Allows(3))
	assert.True(t, StopsNonstop.Allows(0))
	assert.False(t, StopsNonstop.Allows(1))
	assert.True(t, StopsOne.Allows(1))
	assert.False(t, StopsOne.Allows(0))
	assert.True(t, StopsTwoPlus.Allows(2))
	assert.True(t, StopsTwoPlus.Allows(5))
	assert.False(t, StopsTwoPlus.Allows(1))
	// Unknown policy is treated as "any".
	assert.True(t, StopsPolicy("").Allows(4))
}

func TestSearchCriteria_Validate(t *testing.T) {
	valid := SearchCriteria{Origin: "JFK", Destination: "LAX", DepartureDate: "2024-12-15"}
	assert.NoError(t, valid.Validate())

	err := SearchCriteria{Origin: "JFK"}.Validate()
	assert.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"destination", "departureDate"}, ve.Fields)
}

func TestSearchCriteria_Matches(t *testing.T) {
	offer := FlightOffer{
		Origin:      Airport{Code: "JFK", Name: "John F. Kennedy International", City: "New York"},
		Destination: Airport{Code: "LAX", Name: "Los Angeles International", City: "Los Angeles"},
		Departure:   FlightTime{Time: "08:30", Date: "2024-12-15"},
	}

	// Case-insensitive substring against code or city.
	assert.True(t, SearchCriteria{Origin: "new york"}.Matches(offer))
	assert.True(t, SearchCriteria{Origin: "jfk"}.Matches(offer))
	assert.True(t, SearchCriteria{Origin: "YoRk"}.Matches(offer))
	assert.True(t, SearchCriteria{Destination: "los"}.Matches(offer))
	assert.False(t, SearchCriteria{Origin: "chicago"}.Matches(offer))

	// Exact date equality.
	assert.True(t, SearchCriteria{DepartureDate: "2024-12-15"}.Matches(offer))
	assert.False(t, SearchCriteria{DepartureDate: "2024-12-16"}.Matches(offer))

	// Unset criteria pass everything through.
	assert.True(t, SearchCriteria{}.Matches(offer))
}

func TestRefinementFilter_Allows(t *testing.T) {
	offer := FlightOffer{Airline: "Delta Airlines", Stops: 0, Price: 489, DurationMinutes: 315}

	assert.True(t, RefinementFilter{}.Allows(offer))
	assert.True(t, RefinementFilter{Airlines: []string{"Delta Airlines"}}.Allows(offer))
	assert.False(t, RefinementFilter{Airlines: []string{"United Airlines"}}.Allows(offer))
	assert.True(t, RefinementFilter{Stops: StopsNonstop}.Allows(offer))
	assert.False(t, RefinementFilter{Stops: StopsOne}.Allows(offer))
	assert.True(t, RefinementFilter{PriceRange: &PriceRange{Min: 0, Max: 489}}.Allows(offer))
	assert.False(t, RefinementFilter{PriceRange: &PriceRange{Min: 0, Max: 488}}.Allows(offer))
	assert.True(t, RefinementFilter{MaxDurationMinutes: 315}.Allows(offer))
	assert.False(t, RefinementFilter{MaxDurationMinutes: 314}.Allows(offer))
}
