package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripforge/flightbooking/internal/domain"
)

const flightColumns = `id, airline, flight_number,
	origin_code, origin_name, origin_city,
	destination_code, destination_name, destination_city,
	departure_time, departure_date, arrival_time, arrival_date,
	duration_minutes, stops, price, cabin_class, aircraft, amenities,
	stopover_code, stopover_name, stopover_duration_minutes`

// PGFlightRepository reads offers from Postgres. Used when the app is
// configured with the postgres storage backend instead of the seeded
// in-memory catalog.
type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewPGFlightRepository(db *pgxpool.Pool) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.FlightOffer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_date, departure_time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOffers(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.FlightOffer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE ($1 = '' OR origin_code ILIKE '%' || $1 || '%' OR origin_city ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR destination_code ILIKE '%' || $2 || '%' OR destination_city ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR departure_date = $3)
		ORDER BY departure_date, departure_time, id`,
		criteria.Origin, criteria.Destination, criteria.DepartureDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOffers(rows)
}

func scanOffers(rows pgx.Rows) ([]domain.FlightOffer, error) {
	offers := make([]domain.FlightOffer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
	}
	return offers, rows.Err()
}

func scanOffer(row pgx.Row) (*domain.FlightOffer, error) {
	var (
		f                domain.FlightOffer
		stopoverCode     *string
		stopoverName     *string
		stopoverDuration *int
	)
	if err := row.Scan(
		&f.ID, &f.Airline, &f.FlightNumber,
		&f.Origin.Code, &f.Origin.Name, &f.Origin.City,
		&f.Destination.Code, &f.Destination.Name, &f.Destination.City,
		&f.Departure.Time, &f.Departure.Date, &f.Arrival.Time, &f.Arrival.Date,
		&f.DurationMinutes, &f.Stops, &f.Price, &f.CabinClass, &f.Aircraft, &f.Amenities,
		&stopoverCode, &stopoverName, &stopoverDuration,
	); err != nil {
		return nil, err
	}
	if stopoverCode != nil {
		f.Stopover = &domain.Stopover{Code: *stopoverCode}
		if stopoverName != nil {
			f.Stopover.Name = *stopoverName
		}
		if stopoverDuration != nil {
			f.Stopover.DurationMinutes = *stopoverDuration
		}
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
