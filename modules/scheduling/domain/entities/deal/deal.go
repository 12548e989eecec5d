package deal

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pipeline classifies where a deal lives in the commercial funnel.
// Open-enrollment deals are taught at customer premises or online and
// never receive a physical room.
type Pipeline string

const (
	PipelineIntra          Pipeline = "intra"
	PipelineOpenEnrollment Pipeline = "open_enrollment"
)

// Deal is a commercial engagement synchronized from the CRM. courseID
// links the deal to its catalog entry; sessions cannot be created for a
// deal without one.
type Deal struct {
	id       uuid.UUID
	name     string
	pipeline Pipeline
	courseID *uuid.UUID
	amount   decimal.Decimal
	address  string
}

func Hydrate(id uuid.UUID, name string, pipeline Pipeline, courseID *uuid.UUID, amount decimal.Decimal, address string) Deal {
	return Deal{
		id:       id,
		name:     strings.TrimSpace(name),
		pipeline: pipeline,
		courseID: courseID,
		amount:   amount,
		address:  strings.TrimSpace(address),
	}
}

func (d Deal) ID() uuid.UUID           { return d.id }
func (d Deal) Name() string            { return d.name }
func (d Deal) Pipeline() Pipeline      { return d.pipeline }
func (d Deal) CourseID() *uuid.UUID    { return d.courseID }
func (d Deal) Amount() decimal.Decimal { return d.amount }
func (d Deal) Address() string         { return d.address }
func (d Deal) IsZero() bool            { return d.id == uuid.Nil }

// NeedsRoom reports whether sessions of this deal occupy physical rooms.
func (d Deal) NeedsRoom() bool {
	return d.pipeline != PipelineOpenEnrollment
}

// HasCourse reports whether the deal carries the catalog link required to
// create sessions.
func (d Deal) HasCourse() bool {
	return d.courseID != nil && *d.courseID != uuid.Nil
}
