package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/roamwyth/backend/internal/domain"
)

// ParticipantRepo defines the persistence operations for trip_participants.
type ParticipantRepo interface {
	// Invite adds the user to the trip with status invited.
	// Returns domain.ErrConflict if the user already has a row on the trip.
	Invite(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error)

	// Get returns a single participant row.
	// Returns domain.ErrNotFound if the user is not on the trip.
	Get(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error)

	// ListByTrip returns all participant rows of a trip, owner first.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// ListByUser returns every participant row belonging to the user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error)

	// SetStatus changes a participant's status.
	// Returns domain.ErrNotFound if the user is not on the trip.
	SetStatus(ctx context.Context, tripID, userID uuid.UUID, status domain.ParticipantStatus) (domain.Participant, error)

	// SetOverride stores or clears (nil) the personal visibility override.
	// Returns domain.ErrNotFound if the user is not on the trip.
	SetOverride(ctx context.Context, tripID, userID uuid.UUID, override *domain.Visibility) (domain.Participant, error)
}

type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

const participantColumns = `trip_id, user_id, status, personal_visibility_override, created_at, updated_at`

// Invite relies on ON CONFLICT DO NOTHING: an existing row makes RETURNING
// produce no row, which is reported as a conflict.
func (r *pgParticipantRepo) Invite(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error) {
	const q = `
		INSERT INTO trip_participants (trip_id, user_id, status)
		VALUES (@trip_id, @user_id, 'invited')
		ON CONFLICT (trip_id, user_id) DO NOTHING
		RETURNING ` + participantColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	p, err := scanParticipant(row)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Invite: %w", domain.ErrConflict)
	}
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Invite: %w", err)
	}
	return p, nil
}

func (r *pgParticipantRepo) Get(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error) {
	const q = `
		SELECT ` + participantColumns + `
		FROM trip_participants
		WHERE trip_id = @trip_id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	p, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Get: %w", err)
	}
	return p, nil
}

func (r *pgParticipantRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT ` + participantColumns + `
		FROM trip_participants
		WHERE trip_id = @trip_id
		ORDER BY status = 'owner' DESC, created_at, user_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTrip: %w", err)
	}
	ps, err := collectParticipants(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTrip: %w", err)
	}
	return ps, nil
}

func (r *pgParticipantRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT ` + participantColumns + `
		FROM trip_participants
		WHERE user_id = @user_id
		ORDER BY created_at, trip_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByUser: %w", err)
	}
	ps, err := collectParticipants(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByUser: %w", err)
	}
	return ps, nil
}

func (r *pgParticipantRepo) SetStatus(ctx context.Context, tripID, userID uuid.UUID, status domain.ParticipantStatus) (domain.Participant, error) {
	const q = `
		UPDATE trip_participants
		SET status = @status, updated_at = now()
		WHERE trip_id = @trip_id AND user_id = @user_id
		RETURNING ` + participantColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"user_id": userID,
		"status":  string(status),
	})
	p, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.SetStatus: %w", err)
	}
	return p, nil
}

func (r *pgParticipantRepo) SetOverride(ctx context.Context, tripID, userID uuid.UUID, override *domain.Visibility) (domain.Participant, error) {
	const q = `
		UPDATE trip_participants
		SET personal_visibility_override = @override, updated_at = now()
		WHERE trip_id = @trip_id AND user_id = @user_id
		RETURNING ` + participantColumns

	var value *string
	if override != nil {
		s := string(*override)
		value = &s
	}

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":  tripID,
		"user_id":  userID,
		"override": value,
	})
	p, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.SetOverride: %w", err)
	}
	return p, nil
}

func collectParticipants(rows pgx.Rows) ([]domain.Participant, error) {
	defer rows.Close()

	ps := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return ps, nil
}

func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p              domain.Participant
		tripID, userID pgtype.UUID
		status         string
		override       pgtype.Text
	)

	err := s.Scan(&tripID, &userID, &status, &override, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.TripID = uuid.UUID(tripID.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	p.Status = domain.ParticipantStatus(status)
	if override.Valid {
		v := domain.Visibility(override.String)
		p.PersonalVisibilityOverride = &v
	}
	return p, nil
}
