package deal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("deal not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Deal, error)
}
