package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("session not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	GetByDealID(ctx context.Context, dealID uuid.UUID) ([]Session, error)
	// ListBookings returns every persisted room reservation in the system,
	// excluding sessions whose ids appear in the excluding set.
	ListBookings(ctx context.Context, excluding map[uuid.UUID]struct{}) ([]Booking, error)
	Create(ctx context.Context, s Session) (Session, error)
	Update(ctx context.Context, s Session) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ReplaceTrainerLinks swaps the session's trainer link rows for the
	// given set, main trainer first.
	ReplaceTrainerLinks(ctx context.Context, sessionID uuid.UUID, trainerIDs []uuid.UUID) error
}
