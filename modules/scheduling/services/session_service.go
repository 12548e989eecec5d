package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
)

type SessionService struct {
	repo session.Repository
}

func NewSessionService(repo session.Repository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (session.Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SessionService) GetByDealID(ctx context.Context, dealID uuid.UUID) ([]session.Session, error) {
	return s.repo.GetByDealID(ctx, dealID)
}
