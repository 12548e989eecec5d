package room

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("room not found")

type Repository interface {
	GetAll(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (Room, error)
	Create(ctx context.Context, r Room) (Room, error)
}
