package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripforge/flightbooking/internal/domain"
)

const pgUniqueViolation = "23505"

// PGBookingRepository persists bookings in Postgres. Confirmation and ticket
// numbers are protected by unique constraints; inserts retry with fresh
// numbers on a collision.
type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewPGBookingRepository(db *pgxpool.Pool) *PGBookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	details, err := json.Marshal(booking.Flight)
	if err != nil {
		return fmt.Errorf("marshal booking details: %w", err)
	}

	booking.ID = uuid.NewString()

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		booking.ConfirmationNumber = newConfirmationNumber()
		booking.TicketNumber = newTicketNumber()

		err := r.db.QueryRow(ctx, `INSERT INTO bookings
			(id, type, provider, price, confirmation_number, ticket_number, details, payment_status, payment_id, ticket_generated, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at, updated_at`,
			booking.ID, booking.Type, booking.Provider, booking.Price,
			booking.ConfirmationNumber, booking.TicketNumber, details,
			booking.PaymentStatus, booking.PaymentID, booking.TicketGenerated, booking.Status).
			Scan(&booking.CreatedAt, &booking.UpdatedAt)
		if err == nil {
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			continue
		}
		return err
	}
	return fmt.Errorf("could not generate a unique booking number after %d attempts", maxNumberAttempts)
}

func (r *PGBookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type, provider, price, confirmation_number, ticket_number, details, payment_status, payment_id, ticket_generated, status, created_at, updated_at
		FROM bookings ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, type, provider, price, confirmation_number, ticket_number, details, payment_status, payment_id, ticket_generated, status, created_at, updated_at
		FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b       domain.Booking
		details []byte
	)
	if err := row.Scan(&b.ID, &b.Type, &b.Provider, &b.Price, &b.ConfirmationNumber, &b.TicketNumber, &details,
		&b.PaymentStatus, &b.PaymentID, &b.TicketGenerated, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &b.Flight); err != nil {
			return nil, fmt.Errorf("unmarshal booking details: %w", err)
		}
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
