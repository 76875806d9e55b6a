// Package repo contains all database access logic for the roamwyth API.
// Each resource has its own file with an interface and a Postgres implementation.
// Only SQL and type mapping live here.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/roamwyth/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, pgx.Tx
// and pgxmock pools. Integration tests pass a transaction that is rolled back
// after each test; unit tests pass a pgxmock pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip together with its owner participant row and
	// returns the persisted record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns one page of the trips a user owns, newest first,
	// and the total number of trips they own.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListForUser returns every trip the user owns or has confirmed.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, name, destination, start_date, end_date,
	is_flexible_dates, flexible_month, is_logged_past_trip, visibility, created_at, updated_at`

// Create inserts the trip and the owner's participant row in one statement so
// a trip can never exist without its owner on it.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH t AS (
			INSERT INTO trips (owner_id, name, destination, start_date, end_date,
			                   is_flexible_dates, flexible_month, is_logged_past_trip, visibility)
			VALUES (@owner_id, @name, @destination, @start_date, @end_date,
			        @is_flexible_dates, @flexible_month, @is_logged_past_trip, @visibility)
			RETURNING ` + tripColumns + `
		), p AS (
			INSERT INTO trip_participants (trip_id, user_id, status)
			SELECT id, owner_id, 'owner' FROM t
		)
		SELECT ` + tripColumns + ` FROM t`

	args := tripArgs(trip)
	args["owner_id"] = trip.OwnerID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns one page of owned trips plus the total count.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips WHERE owner_id = @owner_id`
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	return trips, total, nil
}

// ListForUser returns trips the user owns or has confirmed, in creation order.
// Ordering for display is applied later by the temporal policy.
func (r *pgTripRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id IN (
			SELECT trip_id FROM trip_participants
			WHERE user_id = @user_id AND status IN ('owner', 'confirmed')
		)
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForUser: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForUser: %w", err)
	}
	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// owner_id is deliberately absent from the SET list.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name                = @name,
		    destination         = @destination,
		    start_date          = @start_date,
		    end_date            = @end_date,
		    is_flexible_dates   = @is_flexible_dates,
		    flexible_month      = @flexible_month,
		    is_logged_past_trip = @is_logged_past_trip,
		    visibility          = @visibility,
		    updated_at          = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key. Participant rows cascade.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripArgs maps the writable trip fields to named query arguments.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	var month *string
	if trip.FlexibleMonth != "" {
		month = &trip.FlexibleMonth
	}
	return pgx.NamedArgs{
		"name":                trip.Name,
		"destination":         trip.Destination,
		"start_date":          trip.StartDate, // nil becomes NULL
		"end_date":            trip.EndDate,
		"is_flexible_dates":   trip.IsFlexibleDates,
		"flexible_month":      month,
		"is_logged_past_trip": trip.IsLoggedPastTrip,
		"visibility":          string(trip.Visibility),
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

func collectTrips(rows pgx.Rows) ([]domain.Trip, error) {
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, nullable date and nullable month conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id, owner  pgtype.UUID
		start, end pgtype.Date
		month      pgtype.Text
		visibility string
	)

	err := s.Scan(&id, &owner, &t.Name, &t.Destination, &start, &end,
		&t.IsFlexibleDates, &month, &t.IsLoggedPastTrip, &visibility, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(owner.Bytes)
	t.StartDate = dateOrNil(start)
	t.EndDate = dateOrNil(end)
	t.FlexibleMonth = month.String
	// Stored as-is: an unknown value is left for the visibility policy to fail closed on.
	t.Visibility = domain.Visibility(visibility)
	return t, nil
}

func dateOrNil(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	v := d.Time
	return &v
}
