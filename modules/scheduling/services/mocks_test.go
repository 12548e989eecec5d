package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/entities/deal"
	"github.com/formatix/erp/modules/scheduling/domain/entities/room"
	"github.com/formatix/erp/modules/scheduling/domain/entities/trainer"
)

type stubPublisher struct {
	events []interface{}
}

func (p *stubPublisher) Publish(args ...interface{})     { p.events = append(p.events, args...) }
func (p *stubPublisher) Subscribe(handler interface{})   {}
func (p *stubPublisher) Unsubscribe(handler interface{}) {}
func (p *stubPublisher) Clear()                          {}
func (p *stubPublisher) SubscribersCount() int           { return 0 }

type memSessionRepo struct {
	sessions map[uuid.UUID]session.Session
	// extraBookings simulates room reservations held by other deals.
	extraBookings []session.Booking
	trainerLinks  map[uuid.UUID][]uuid.UUID
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		sessions:     make(map[uuid.UUID]session.Session),
		trainerLinks: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *memSessionRepo) put(s session.Session) { m.sessions[s.ID()] = s }

func (m *memSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (m *memSessionRepo) GetByDealID(ctx context.Context, dealID uuid.UUID) ([]session.Session, error) {
	var out []session.Session
	for _, s := range m.sessions {
		if s.DealID() == dealID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSessionRepo) ListBookings(ctx context.Context, excluding map[uuid.UUID]struct{}) ([]session.Booking, error) {
	var out []session.Booking
	for _, s := range m.sessions {
		if s.RoomID() == nil {
			continue
		}
		if _, skip := excluding[s.ID()]; skip {
			continue
		}
		out = append(out, session.Booking{RoomID: *s.RoomID(), Window: s.Window(), SessionID: s.ID()})
	}
	out = append(out, m.extraBookings...)
	return out, nil
}

func (m *memSessionRepo) Create(ctx context.Context, s session.Session) (session.Session, error) {
	m.sessions[s.ID()] = s
	return s, nil
}

func (m *memSessionRepo) Update(ctx context.Context, s session.Session) (session.Session, error) {
	if _, ok := m.sessions[s.ID()]; !ok {
		return session.Session{}, session.ErrNotFound
	}
	m.sessions[s.ID()] = s
	return s, nil
}

func (m *memSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.sessions[id]; !ok {
		return session.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memSessionRepo) ReplaceTrainerLinks(ctx context.Context, sessionID uuid.UUID, trainerIDs []uuid.UUID) error {
	m.trainerLinks[sessionID] = trainerIDs
	return nil
}

type memRoomRepo struct {
	rooms []room.Room
}

func (m *memRoomRepo) GetAll(ctx context.Context) ([]room.Room, error) { return m.rooms, nil }

func (m *memRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (room.Room, error) {
	for _, r := range m.rooms {
		if r.ID() == id {
			return r, nil
		}
	}
	return room.Room{}, room.ErrNotFound
}

func (m *memRoomRepo) Create(ctx context.Context, r room.Room) (room.Room, error) {
	created := room.Hydrate(uuid.New(), r.Name(), r.Capacity())
	m.rooms = append(m.rooms, created)
	return created, nil
}

// memTrainerRepo implements the directory lookup ladder in memory using
// the same case-insensitive containment semantics as the SQL repository;
// "first match in directory order" is slice order.
type memTrainerRepo struct {
	trainers []trainer.Trainer
}

func (m *memTrainerRepo) GetAll(ctx context.Context) ([]trainer.Trainer, error) {
	return m.trainers, nil
}

func (m *memTrainerRepo) GetByExactName(ctx context.Context, name string) (trainer.Trainer, error) {
	for _, t := range m.trainers {
		if strings.EqualFold(t.FullName(), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return trainer.Trainer{}, trainer.ErrNotFound
}

func (m *memTrainerRepo) GetByNameParts(ctx context.Context, first, last string) (trainer.Trainer, error) {
	for _, t := range m.trainers {
		if containsFold(t.FirstName(), first) && containsFold(t.LastName(), last) {
			return t, nil
		}
	}
	return trainer.Trainer{}, trainer.ErrNotFound
}

func (m *memTrainerRepo) GetBySubstring(ctx context.Context, text string) (trainer.Trainer, error) {
	for _, t := range m.trainers {
		if containsFold(t.FirstName(), text) || containsFold(t.LastName(), text) {
			return t, nil
		}
	}
	return trainer.Trainer{}, trainer.ErrNotFound
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

type memDealRepo struct {
	deals map[uuid.UUID]deal.Deal
}

func newMemDealRepo(deals ...deal.Deal) *memDealRepo {
	m := &memDealRepo{deals: make(map[uuid.UUID]deal.Deal)}
	for _, d := range deals {
		m.deals[d.ID()] = d
	}
	return m
}

func (m *memDealRepo) GetByID(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	d, ok := m.deals[id]
	if !ok {
		return deal.Deal{}, deal.ErrNotFound
	}
	return d, nil
}
