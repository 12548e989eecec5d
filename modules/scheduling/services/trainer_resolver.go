package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/entities/trainer"
)

// trainerResolver maps free-text trainer names onto directory identities.
// It is best effort: a name that matches nothing resolves to nil, never
// to an error. Only storage failures propagate. Results are cached for
// the lifetime of one batch.
type trainerResolver struct {
	directory trainer.Repository
	cache     map[string]*uuid.UUID
}

func newTrainerResolver(directory trainer.Repository) *trainerResolver {
	return &trainerResolver{
		directory: directory,
		cache:     make(map[string]*uuid.UUID),
	}
}

// Resolve runs the lookup ladder: exact full-name match first, then
// first/last token containment, then a single substring match against
// either name. The first directory match wins at every rung.
func (r *trainerResolver) Resolve(ctx context.Context, name string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	id, err := r.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	r.cache[name] = id
	return id, nil
}

func (r *trainerResolver) resolve(ctx context.Context, name string) (*uuid.UUID, error) {
	found, err := r.directory.GetByExactName(ctx, name)
	if err == nil {
		id := found.ID()
		return &id, nil
	}
	if !errors.Is(err, trainer.ErrNotFound) {
		return nil, err
	}

	if tokens := strings.Fields(name); len(tokens) >= 2 {
		first := tokens[0]
		last := strings.Join(tokens[1:], " ")
		found, err = r.directory.GetByNameParts(ctx, first, last)
		if err == nil {
			id := found.ID()
			return &id, nil
		}
		if !errors.Is(err, trainer.ErrNotFound) {
			return nil, err
		}
	}

	found, err = r.directory.GetBySubstring(ctx, name)
	if err == nil {
		id := found.ID()
		return &id, nil
	}
	if !errors.Is(err, trainer.ErrNotFound) {
		return nil, err
	}

	return nil, nil
}
