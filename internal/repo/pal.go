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

// PalRepo defines the persistence operations for travel_pals.
// A pair of users has at most one row, whichever of them asked first.
type PalRepo interface {
	// Request records a pending request from requester to addressee.
	// Returns domain.ErrConflict if the pair already has a row in either direction.
	Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error)

	// Accept marks a pending request as accepted.
	// Returns domain.ErrNotFound if no pending request from requester to addressee exists.
	Accept(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error)

	// Delete removes the pair's row regardless of direction or status.
	// Returns domain.ErrNotFound if the pair has no row.
	Delete(ctx context.Context, a, b uuid.UUID) error

	// ListAccepted returns the IDs of every accepted pal of the user.
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// ListPending returns requests addressed to the user that await an answer.
	ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error)

	// AreAccepted reports whether a and b are accepted travel pals.
	AreAccepted(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type pgPalRepo struct {
	db db
}

// NewPalRepo constructs a PalRepo backed by the provided db connection.
func NewPalRepo(db db) PalRepo {
	return &pgPalRepo{db: db}
}

const palColumns = `requester_id, addressee_id, status, created_at, accepted_at`

// Request inserts only when neither direction exists yet; the unique index on
// (least, greatest) backs this up against concurrent requests.
func (r *pgPalRepo) Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error) {
	const q = `
		INSERT INTO travel_pals (requester_id, addressee_id, status)
		SELECT @requester_id, @addressee_id, 'pending'
		WHERE NOT EXISTS (
			SELECT 1 FROM travel_pals
			WHERE (requester_id = @requester_id AND addressee_id = @addressee_id)
			   OR (requester_id = @addressee_id AND addressee_id = @requester_id)
		)
		ON CONFLICT DO NOTHING
		RETURNING ` + palColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"requester_id": requesterID, "addressee_id": addresseeID})
	p, err := scanPal(row)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Pal{}, fmt.Errorf("repo.PalRepo.Request: %w", domain.ErrConflict)
	}
	if err != nil {
		return domain.Pal{}, fmt.Errorf("repo.PalRepo.Request: %w", err)
	}
	return p, nil
}

func (r *pgPalRepo) Accept(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error) {
	const q = `
		UPDATE travel_pals
		SET status = 'accepted', accepted_at = now()
		WHERE requester_id = @requester_id AND addressee_id = @addressee_id AND status = 'pending'
		RETURNING ` + palColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"requester_id": requesterID, "addressee_id": addresseeID})
	p, err := scanPal(row)
	if err != nil {
		return domain.Pal{}, fmt.Errorf("repo.PalRepo.Accept: %w", err)
	}
	return p, nil
}

func (r *pgPalRepo) Delete(ctx context.Context, a, b uuid.UUID) error {
	const q = `
		DELETE FROM travel_pals
		WHERE (requester_id = @a AND addressee_id = @b)
		   OR (requester_id = @b AND addressee_id = @a)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"a": a, "b": b})
	if err != nil {
		return fmt.Errorf("repo.PalRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PalRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgPalRepo) ListAccepted(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
		SELECT CASE WHEN requester_id = @user_id THEN addressee_id ELSE requester_id END
		FROM travel_pals
		WHERE status = 'accepted' AND (requester_id = @user_id OR addressee_id = @user_id)
		ORDER BY accepted_at, 1`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.PalRepo.ListAccepted: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.PalRepo.ListAccepted: scan: %w", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PalRepo.ListAccepted: rows: %w", err)
	}
	return ids, nil
}

func (r *pgPalRepo) ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error) {
	const q = `
		SELECT ` + palColumns + `
		FROM travel_pals
		WHERE addressee_id = @user_id AND status = 'pending'
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.PalRepo.ListPending: %w", err)
	}
	defer rows.Close()

	pals := []domain.Pal{}
	for rows.Next() {
		p, err := scanPal(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PalRepo.ListPending: scan: %w", err)
		}
		pals = append(pals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PalRepo.ListPending: rows: %w", err)
	}
	return pals, nil
}

func (r *pgPalRepo) AreAccepted(ctx context.Context, a, b uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM travel_pals
			WHERE status = 'accepted'
			  AND ((requester_id = @a AND addressee_id = @b)
			    OR (requester_id = @b AND addressee_id = @a))
		)`

	var ok bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"a": a, "b": b}).Scan(&ok); err != nil {
		return false, fmt.Errorf("repo.PalRepo.AreAccepted: %w", err)
	}
	return ok, nil
}

func scanPal(s scanner) (domain.Pal, error) {
	var (
		p                    domain.Pal
		requester, addressee pgtype.UUID
		status               string
		acceptedAt           pgtype.Timestamptz
	)

	err := s.Scan(&requester, &addressee, &status, &p.CreatedAt, &acceptedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Pal{}, domain.ErrNotFound
		}
		return domain.Pal{}, err
	}

	p.RequesterID = uuid.UUID(requester.Bytes)
	p.AddresseeID = uuid.UUID(addressee.Bytes)
	p.Status = domain.PalStatus(status)
	if acceptedAt.Valid {
		t := acceptedAt.Time
		p.AcceptedAt = &t
	}
	return p, nil
}
