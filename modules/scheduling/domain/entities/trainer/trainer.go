package trainer

import (
	"strings"

	"github.com/google/uuid"
)

// Trainer is a directory entry resolved-to by free-text name matching.
// The import engine never creates trainers.
type Trainer struct {
	id        uuid.UUID
	firstName string
	lastName  string
	email     string
}

func Hydrate(id uuid.UUID, firstName, lastName, email string) Trainer {
	return Trainer{
		id:        id,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     strings.TrimSpace(email),
	}
}

func (t Trainer) ID() uuid.UUID     { return t.id }
func (t Trainer) FirstName() string { return t.firstName }
func (t Trainer) LastName() string  { return t.lastName }
func (t Trainer) Email() string     { return t.email }
func (t Trainer) IsZero() bool      { return t.id == uuid.Nil }

func (t Trainer) FullName() string {
	return strings.TrimSpace(t.firstName + " " + t.lastName)
}
