package session

import (
	"github.com/google/uuid"
)

// ImportedEvent is published after a batch import commits.
type ImportedEvent struct {
	DealID  uuid.UUID
	Created int
	Updated int
	Removed int
}

type CreatedEvent struct {
	Result Session
}

type UpdatedEvent struct {
	Result Session
}

type DeletedEvent struct {
	SessionID uuid.UUID
	DealID    uuid.UUID
}
