package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/formatix/erp/modules/scheduling/domain/entities/deal"
	"github.com/formatix/erp/pkg/composables"
)

const dealFindQuery = `SELECT id, name, pipeline, course_id, amount::text, address FROM deals`

type DealRepository struct{}

func NewDealRepository() deal.Repository {
	return &DealRepository{}
}

func (r *DealRepository) GetByID(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return deal.Deal{}, err
	}

	var row dealRow
	err = tx.QueryRow(ctx, dealFindQuery+" WHERE id = $1", id.String()).Scan(
		&row.ID,
		&row.Name,
		&row.Pipeline,
		&row.CourseID,
		&row.Amount,
		&row.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deal.Deal{}, deal.ErrNotFound
		}
		return deal.Deal{}, gerrors.Wrap(err, "querying deal")
	}
	return toDomainDeal(row)
}
