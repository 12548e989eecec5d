package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/entities/room"
	"github.com/formatix/erp/pkg/eventbus"
)

type RoomService struct {
	repo      room.Repository
	publisher eventbus.EventBus
}

func NewRoomService(repo room.Repository, publisher eventbus.EventBus) *RoomService {
	return &RoomService{repo: repo, publisher: publisher}
}

func (s *RoomService) GetAll(ctx context.Context) ([]room.Room, error) {
	return s.repo.GetAll(ctx)
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (room.Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoomService) Create(ctx context.Context, r room.Room) (room.Room, error) {
	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return room.Room{}, err
	}
	s.publisher.Publish(&RoomCreatedEvent{Result: created})
	return created, nil
}

type RoomCreatedEvent struct {
	Result room.Room
}
