package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/pkg/composables"
	"github.com/formatix/erp/pkg/mapping"
	"github.com/formatix/erp/pkg/repo"
)

const (
	sessionFindQuery = `
		SELECT id, deal_id, start_at, end_at, room_id, main_trainer_id, support_trainer_id, address, state, created_at, updated_at
		FROM sessions`

	sessionInsertQuery = `
		INSERT INTO sessions (id, deal_id, start_at, end_at, room_id, main_trainer_id, support_trainer_id, address, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

	sessionUpdateQuery = `
		UPDATE sessions
		SET start_at = $2, end_at = $3, room_id = $4, main_trainer_id = $5, support_trainer_id = $6, address = $7, state = $8, updated_at = $9
		WHERE id = $1`

	bookingsQuery = `
		SELECT room_id, start_at, end_at, id
		FROM sessions
		WHERE room_id IS NOT NULL`
)

type SessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &SessionRepository{}
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (session.Session, error) {
	sessions, err := r.querySessions(ctx, repo.Join(sessionFindQuery, "WHERE id = $1"), id.String())
	if err != nil {
		return session.Session{}, err
	}
	if len(sessions) == 0 {
		return session.Session{}, session.ErrNotFound
	}
	return sessions[0], nil
}

func (r *SessionRepository) GetByDealID(ctx context.Context, dealID uuid.UUID) ([]session.Session, error) {
	query := repo.Join(sessionFindQuery, "WHERE deal_id = $1 ORDER BY start_at, created_at, id")
	return r.querySessions(ctx, query, dealID.String())
}

func (r *SessionRepository) ListBookings(ctx context.Context, excluding map[uuid.UUID]struct{}) ([]session.Booking, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := bookingsQuery
	args := []interface{}{}
	if len(excluding) > 0 {
		ids := make([]string, 0, len(excluding))
		for id := range excluding {
			ids = append(ids, id.String())
		}
		query = repo.Join(bookingsQuery, "AND NOT (id = ANY($1::uuid[]))")
		args = append(args, ids)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing room bookings")
	}
	defer rows.Close()

	var bookings []session.Booking
	for rows.Next() {
		var row sessionRow
		if err := rows.Scan(&row.RoomID, &row.StartAt, &row.EndAt, &row.ID); err != nil {
			return nil, err
		}
		b, err := toBooking(row)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *SessionRepository) Create(ctx context.Context, s session.Session) (session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return session.Session{}, err
	}

	now := time.Now().UTC()
	_, err = tx.Exec(
		ctx,
		sessionInsertQuery,
		s.ID().String(),
		s.DealID().String(),
		s.Window().Start,
		s.Window().End,
		mapping.PointerToPgUUID(s.RoomID()),
		mapping.PointerToPgUUID(s.MainTrainerID()),
		mapping.PointerToPgUUID(s.SupportTrainerID()),
		mapping.ValueToSQLNullString(s.Address()),
		string(s.State()),
		now,
	)
	if err != nil {
		return session.Session{}, gerrors.Wrap(err, "creating session")
	}
	return r.GetByID(ctx, s.ID())
}

func (r *SessionRepository) Update(ctx context.Context, s session.Session) (session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return session.Session{}, err
	}

	tag, err := tx.Exec(
		ctx,
		sessionUpdateQuery,
		s.ID().String(),
		s.Window().Start,
		s.Window().End,
		mapping.PointerToPgUUID(s.RoomID()),
		mapping.PointerToPgUUID(s.MainTrainerID()),
		mapping.PointerToPgUUID(s.SupportTrainerID()),
		mapping.ValueToSQLNullString(s.Address()),
		string(s.State()),
		time.Now().UTC(),
	)
	if err != nil {
		return session.Session{}, gerrors.Wrap(err, "updating session")
	}
	if tag.RowsAffected() == 0 {
		return session.Session{}, session.ErrNotFound
	}
	return r.GetByID(ctx, s.ID())
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM sessions WHERE id = $1", id.String())
	if err != nil {
		return gerrors.Wrap(err, "deleting session")
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) ReplaceTrainerLinks(ctx context.Context, sessionID uuid.UUID, trainerIDs []uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM session_trainers WHERE session_id = $1", sessionID.String()); err != nil {
		return gerrors.Wrap(err, "clearing trainer links")
	}
	for position, trainerID := range trainerIDs {
		_, err := tx.Exec(
			ctx,
			"INSERT INTO session_trainers (session_id, trainer_id, position) VALUES ($1, $2, $3)",
			sessionID.String(),
			trainerID.String(),
			position,
		)
		if err != nil {
			return gerrors.Wrap(err, "inserting trainer link")
		}
	}
	return nil
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...interface{}) ([]session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, gerrors.Wrap(err, "querying sessions")
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		var row sessionRow
		if err := rows.Scan(
			&row.ID,
			&row.DealID,
			&row.StartAt,
			&row.EndAt,
			&row.RoomID,
			&row.MainTrainerID,
			&row.SupportTrainerID,
			&row.Address,
			&row.State,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		s, err := toDomainSession(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
