package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/value_objects/timewindow"
)

type State string

const (
	StateDraft     State = "draft"
	StateScheduled State = "scheduled"
	StateConfirmed State = "confirmed"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Session is one scheduled training occurrence owned by exactly one deal.
// The struct is value-style: mutators return copies so a reconciliation
// plan can be built without touching loaded records.
type Session struct {
	id               uuid.UUID
	dealID           uuid.UUID
	window           timewindow.TimeWindow
	roomID           *uuid.UUID
	mainTrainerID    *uuid.UUID
	supportTrainerID *uuid.UUID
	address          string
	state            State
	createdAt        time.Time
	updatedAt        time.Time
}

func New(dealID uuid.UUID, window timewindow.TimeWindow, address string, state State) Session {
	return Session{
		id:      uuid.New(),
		dealID:  dealID,
		window:  window,
		address: strings.TrimSpace(address),
		state:   state,
	}
}

func Hydrate(
	id uuid.UUID,
	dealID uuid.UUID,
	window timewindow.TimeWindow,
	roomID *uuid.UUID,
	mainTrainerID *uuid.UUID,
	supportTrainerID *uuid.UUID,
	address string,
	state State,
	createdAt time.Time,
	updatedAt time.Time,
) Session {
	return Session{
		id:               id,
		dealID:           dealID,
		window:           window,
		roomID:           roomID,
		mainTrainerID:    mainTrainerID,
		supportTrainerID: supportTrainerID,
		address:          strings.TrimSpace(address),
		state:            state,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (s Session) ID() uuid.UUID                 { return s.id }
func (s Session) DealID() uuid.UUID             { return s.dealID }
func (s Session) Window() timewindow.TimeWindow { return s.window }
func (s Session) RoomID() *uuid.UUID            { return s.roomID }
func (s Session) MainTrainerID() *uuid.UUID     { return s.mainTrainerID }
func (s Session) SupportTrainerID() *uuid.UUID  { return s.supportTrainerID }
func (s Session) Address() string               { return s.address }
func (s Session) State() State                  { return s.state }
func (s Session) CreatedAt() time.Time          { return s.createdAt }
func (s Session) UpdatedAt() time.Time          { return s.updatedAt }
func (s Session) IsZero() bool                  { return s.id == uuid.Nil }

func (s Session) WithWindow(window timewindow.TimeWindow) Session {
	s.window = window
	return s
}

func (s Session) WithRoomID(roomID *uuid.UUID) Session {
	s.roomID = roomID
	return s
}

func (s Session) WithMainTrainerID(id *uuid.UUID) Session {
	s.mainTrainerID = id
	return s
}

func (s Session) WithSupportTrainerID(id *uuid.UUID) Session {
	s.supportTrainerID = id
	return s
}

func (s Session) WithAddress(address string) Session {
	s.address = strings.TrimSpace(address)
	return s
}

func (s Session) WithState(state State) Session {
	s.state = state
	return s
}

// TrainerIDs returns the assigned trainer ids, main first. A support
// trainer resolving to the same identity as the main appears once, so
// the link rows derived from this set stay unique per trainer.
func (s Session) TrainerIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, 2)
	if s.mainTrainerID != nil {
		ids = append(ids, *s.mainTrainerID)
	}
	if s.supportTrainerID != nil && (s.mainTrainerID == nil || *s.supportTrainerID != *s.mainTrainerID) {
		ids = append(ids, *s.supportTrainerID)
	}
	return ids
}

// Booking is a persisted room reservation: the room held by a session
// over its time window. The allocator seeds its conflict index from the
// full booking list.
type Booking struct {
	RoomID    uuid.UUID
	Window    timewindow.TimeWindow
	SessionID uuid.UUID
}
