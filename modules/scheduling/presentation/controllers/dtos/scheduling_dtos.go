package dtos

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/entities/importrow"
	"github.com/formatix/erp/modules/scheduling/domain/entities/room"
	"github.com/formatix/erp/modules/scheduling/domain/entities/trainer"
	"github.com/formatix/erp/pkg/constants"
	"github.com/formatix/erp/pkg/serrors"
)

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// ImportRowDTO mirrors one spreadsheet line; dates accept the same
// formats the spreadsheet path does, serial numbers included.
type ImportRowDTO struct {
	SessionNumber  string `json:"sessionNumber" validate:"required"`
	Start          string `json:"start" validate:"required"`
	End            string `json:"end" validate:"required"`
	MainTrainer    string `json:"mainTrainer"`
	SupportTrainer string `json:"supportTrainer"`
	State          string `json:"state"`
}

type ImportSessionsRequest struct {
	Rows []ImportRowDTO `json:"rows" validate:"required,min=1,dive"`
}

func (r *ImportSessionsRequest) Validate() error {
	return constants.Validate.Struct(r)
}

// FieldErrors turns a validator failure into the per-field error map
// controllers attach to the response meta.
func FieldErrors(err error) serrors.ValidationErrors {
	out := serrors.ValidationErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "min":
			out[fe.Field()] = serrors.NewFieldRequiredError(fe.Field())
		default:
			out[fe.Field()] = serrors.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return out
}

func (r *ImportSessionsRequest) ToRawRows() []importrow.RawRow {
	raws := make([]importrow.RawRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		raws = append(raws, importrow.RawRow{
			SessionNumber:      row.SessionNumber,
			Start:              row.Start,
			End:                row.End,
			MainTrainerName:    row.MainTrainer,
			SupportTrainerName: row.SupportTrainer,
			State:              row.State,
		})
	}
	return raws
}

type SessionResponse struct {
	ID               uuid.UUID  `json:"id"`
	DealID           uuid.UUID  `json:"dealId"`
	Start            time.Time  `json:"start"`
	End              time.Time  `json:"end"`
	RoomID           *uuid.UUID `json:"roomId,omitempty"`
	MainTrainerID    *uuid.UUID `json:"mainTrainerId,omitempty"`
	SupportTrainerID *uuid.UUID `json:"supportTrainerId,omitempty"`
	Address          string     `json:"address,omitempty"`
	State            string     `json:"state"`
}

func SessionToResponse(s session.Session) SessionResponse {
	return SessionResponse{
		ID:               s.ID(),
		DealID:           s.DealID(),
		Start:            s.Window().Start,
		End:              s.Window().End,
		RoomID:           s.RoomID(),
		MainTrainerID:    s.MainTrainerID(),
		SupportTrainerID: s.SupportTrainerID(),
		Address:          s.Address(),
		State:            string(s.State()),
	}
}

type RoomResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
}

func RoomToResponse(r room.Room) RoomResponse {
	return RoomResponse{ID: r.ID(), Name: r.Name(), Capacity: r.Capacity()}
}

type TrainerResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email,omitempty"`
}

func TrainerToResponse(t trainer.Trainer) TrainerResponse {
	return TrainerResponse{ID: t.ID(), FullName: t.FullName(), Email: t.Email()}
}
