package services

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/formatix/erp/modules/scheduling/domain/entities/trainer"
)

type TrainerService struct {
	repo trainer.Repository
}

func NewTrainerService(repo trainer.Repository) *TrainerService {
	return &TrainerService{repo: repo}
}

func (s *TrainerService) GetAll(ctx context.Context) ([]trainer.Trainer, error) {
	return s.repo.GetAll(ctx)
}

// Search ranks the directory against q with normalized fuzzy matching
// (case and diacritics folded), best matches first. It backs the
// operations UI typeahead and plays no part in import resolution.
func (s *TrainerService) Search(ctx context.Context, q string) ([]trainer.Trainer, error) {
	trainers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if q == "" {
		return trainers, nil
	}

	names := make([]string, len(trainers))
	for i, t := range trainers {
		names[i] = t.FullName()
	}

	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.Sort(ranks)

	result := make([]trainer.Trainer, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, trainers[rank.OriginalIndex])
	}
	return result, nil
}
