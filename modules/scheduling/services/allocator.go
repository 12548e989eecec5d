package services

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/value_objects/timewindow"
)

// plannedAssignment is a room reservation made earlier in the current
// batch, visible to later allocations but not yet committed.
type plannedAssignment struct {
	sessionID uuid.UUID
	roomID    uuid.UUID
	window    timewindow.TimeWindow
}

// roomAllocator assigns rooms within one batch. It is built per import
// call and never shared: all of its state (persisted booking index,
// deletion set, planned assignments) is private to the batch.
type roomAllocator struct {
	roomIDs  []uuid.UUID
	bookings map[uuid.UUID][]session.Booking
	deleted  map[uuid.UUID]struct{}
	planned  []plannedAssignment
	rng      *rand.Rand
}

func newRoomAllocator(
	roomIDs []uuid.UUID,
	bookings []session.Booking,
	deleted map[uuid.UUID]struct{},
	rng *rand.Rand,
) *roomAllocator {
	byRoom := make(map[uuid.UUID][]session.Booking, len(roomIDs))
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}
	if deleted == nil {
		deleted = map[uuid.UUID]struct{}{}
	}
	return &roomAllocator{
		roomIDs:  roomIDs,
		bookings: byRoom,
		deleted:  deleted,
		rng:      rng,
	}
}

// Allocate returns a conflict-free room for the window, or ok=false when
// every candidate clashes. current identifies the session being placed so
// it may keep its own slot. preferred, when set, is tried before the
// randomized permutation so an unchanged session keeps a stable room.
// Candidates are drawn in uniformly shuffled order to spread load across
// rooms over repeated imports.
func (a *roomAllocator) Allocate(window timewindow.TimeWindow, current uuid.UUID, preferred *uuid.UUID) (uuid.UUID, bool) {
	if preferred != nil && *preferred != uuid.Nil && a.fits(*preferred, window, current) {
		a.record(current, *preferred, window)
		return *preferred, true
	}

	permutation := make([]uuid.UUID, len(a.roomIDs))
	copy(permutation, a.roomIDs)
	a.rng.Shuffle(len(permutation), func(i, j int) {
		permutation[i], permutation[j] = permutation[j], permutation[i]
	})

	for _, candidate := range permutation {
		if a.fits(candidate, window, current) {
			a.record(current, candidate, window)
			return candidate, true
		}
	}
	return uuid.Nil, false
}

func (a *roomAllocator) fits(roomID uuid.UUID, window timewindow.TimeWindow, current uuid.UUID) bool {
	for _, b := range a.bookings[roomID] {
		if !b.Window.Overlaps(window) {
			continue
		}
		if _, gone := a.deleted[b.SessionID]; gone {
			continue
		}
		if b.SessionID == current {
			continue
		}
		return false
	}
	for _, p := range a.planned {
		if p.roomID != roomID {
			continue
		}
		if p.sessionID == current {
			continue
		}
		if p.window.Overlaps(window) {
			return false
		}
	}
	return true
}

func (a *roomAllocator) record(sessionID, roomID uuid.UUID, window timewindow.TimeWindow) {
	a.planned = append(a.planned, plannedAssignment{
		sessionID: sessionID,
		roomID:    roomID,
		window:    window,
	})
}
