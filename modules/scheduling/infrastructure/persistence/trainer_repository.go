package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/formatix/erp/modules/scheduling/domain/entities/trainer"
	"github.com/formatix/erp/pkg/composables"
)

const trainerFindQuery = `SELECT id, first_name, last_name, email FROM trainers`

// TrainerRepository is the trainer directory. "First match in directory
// order" is ascending id; every lookup is ORDER BY id LIMIT 1 so that
// ambiguous names resolve deterministically.
type TrainerRepository struct{}

func NewTrainerRepository() trainer.Repository {
	return &TrainerRepository{}
}

func (r *TrainerRepository) GetAll(ctx context.Context) ([]trainer.Trainer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, trainerFindQuery+" ORDER BY id")
	if err != nil {
		return nil, gerrors.Wrap(err, "querying trainers")
	}
	defer rows.Close()

	var trainers []trainer.Trainer
	for rows.Next() {
		var row trainerRow
		if err := rows.Scan(&row.ID, &row.FirstName, &row.LastName, &row.Email); err != nil {
			return nil, err
		}
		trainers = append(trainers, toDomainTrainer(row))
	}
	return trainers, rows.Err()
}

func (r *TrainerRepository) GetByExactName(ctx context.Context, name string) (trainer.Trainer, error) {
	query := trainerFindQuery + `
		WHERE LOWER(TRIM(first_name || ' ' || last_name)) = LOWER(TRIM($1))
		ORDER BY id LIMIT 1`
	return r.queryOne(ctx, query, name)
}

func (r *TrainerRepository) GetByNameParts(ctx context.Context, first, last string) (trainer.Trainer, error) {
	query := trainerFindQuery + `
		WHERE first_name ILIKE '%' || $1 || '%' AND last_name ILIKE '%' || $2 || '%'
		ORDER BY id LIMIT 1`
	return r.queryOne(ctx, query, strings.TrimSpace(first), strings.TrimSpace(last))
}

func (r *TrainerRepository) GetBySubstring(ctx context.Context, text string) (trainer.Trainer, error) {
	query := trainerFindQuery + `
		WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		ORDER BY id LIMIT 1`
	return r.queryOne(ctx, query, strings.TrimSpace(text))
}

func (r *TrainerRepository) queryOne(ctx context.Context, query string, args ...interface{}) (trainer.Trainer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return trainer.Trainer{}, err
	}

	var row trainerRow
	err = tx.QueryRow(ctx, query, args...).Scan(&row.ID, &row.FirstName, &row.LastName, &row.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trainer.Trainer{}, trainer.ErrNotFound
		}
		return trainer.Trainer{}, gerrors.Wrap(err, "querying trainer")
	}
	return toDomainTrainer(row), nil
}
