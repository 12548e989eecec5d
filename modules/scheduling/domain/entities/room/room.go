package room

import (
	"strings"

	"github.com/google/uuid"
)

// Room is a physical resource shared system-wide; at most one session may
// hold it during any instant.
type Room struct {
	id       uuid.UUID
	name     string
	capacity int
}

func New(name string, capacity int) Room {
	return Room{
		name:     strings.TrimSpace(name),
		capacity: capacity,
	}
}

func Hydrate(id uuid.UUID, name string, capacity int) Room {
	return Room{
		id:       id,
		name:     strings.TrimSpace(name),
		capacity: capacity,
	}
}

func (r Room) ID() uuid.UUID { return r.id }
func (r Room) Name() string  { return r.name }
func (r Room) Capacity() int { return r.capacity }
func (r Room) IsZero() bool  { return r.id == uuid.Nil && r.name == "" }
