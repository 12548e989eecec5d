package persistence

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/entities/deal"
	"github.com/formatix/erp/modules/scheduling/domain/entities/room"
	"github.com/formatix/erp/modules/scheduling/domain/entities/trainer"
	"github.com/formatix/erp/modules/scheduling/domain/value_objects/timewindow"
	"github.com/formatix/erp/pkg/mapping"
)

type sessionRow struct {
	ID               pgtype.UUID
	DealID           pgtype.UUID
	StartAt          pgtype.Timestamptz
	EndAt            pgtype.Timestamptz
	RoomID           pgtype.UUID
	MainTrainerID    pgtype.UUID
	SupportTrainerID pgtype.UUID
	Address          pgtype.Text
	State            string
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

func toDomainSession(row sessionRow) (session.Session, error) {
	window, err := timewindow.New(row.StartAt.Time.UTC(), row.EndAt.Time.UTC())
	if err != nil {
		return session.Session{}, fmt.Errorf("stored session %s has invalid window: %w", mapping.PgUUIDToUUID(row.ID), err)
	}
	return session.Hydrate(
		mapping.PgUUIDToUUID(row.ID),
		mapping.PgUUIDToUUID(row.DealID),
		window,
		mapping.PgUUIDToPointer(row.RoomID),
		mapping.PgUUIDToPointer(row.MainTrainerID),
		mapping.PgUUIDToPointer(row.SupportTrainerID),
		row.Address.String,
		session.State(row.State),
		row.CreatedAt.Time.UTC(),
		row.UpdatedAt.Time.UTC(),
	), nil
}

func toBooking(row sessionRow) (session.Booking, error) {
	window, err := timewindow.New(row.StartAt.Time.UTC(), row.EndAt.Time.UTC())
	if err != nil {
		return session.Booking{}, fmt.Errorf("stored booking for session %s has invalid window: %w", mapping.PgUUIDToUUID(row.ID), err)
	}
	return session.Booking{
		RoomID:    mapping.PgUUIDToUUID(row.RoomID),
		Window:    window,
		SessionID: mapping.PgUUIDToUUID(row.ID),
	}, nil
}

type roomRow struct {
	ID       pgtype.UUID
	Name     string
	Capacity int
}

func toDomainRoom(row roomRow) room.Room {
	return room.Hydrate(mapping.PgUUIDToUUID(row.ID), row.Name, row.Capacity)
}

type trainerRow struct {
	ID        pgtype.UUID
	FirstName string
	LastName  string
	Email     pgtype.Text
}

func toDomainTrainer(row trainerRow) trainer.Trainer {
	return trainer.Hydrate(mapping.PgUUIDToUUID(row.ID), row.FirstName, row.LastName, row.Email.String)
}

type dealRow struct {
	ID       pgtype.UUID
	Name     string
	Pipeline string
	CourseID pgtype.UUID
	// amount is selected as text and parsed; pgx numerics do not map
	// onto decimal.Decimal directly.
	Amount  pgtype.Text
	Address pgtype.Text
}

func toDomainDeal(row dealRow) (deal.Deal, error) {
	amount := decimal.Zero
	if row.Amount.Valid && row.Amount.String != "" {
		parsed, err := decimal.NewFromString(row.Amount.String)
		if err != nil {
			return deal.Deal{}, fmt.Errorf("stored deal %s has invalid amount %q: %w", mapping.PgUUIDToUUID(row.ID), row.Amount.String, err)
		}
		amount = parsed
	}
	return deal.Hydrate(
		mapping.PgUUIDToUUID(row.ID),
		row.Name,
		deal.Pipeline(row.Pipeline),
		mapping.PgUUIDToPointer(row.CourseID),
		amount,
		row.Address.String,
	), nil
}
