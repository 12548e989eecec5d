package services

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/entities/deal"
	"github.com/formatix/erp/modules/scheduling/domain/entities/importrow"
	"github.com/formatix/erp/modules/scheduling/domain/entities/room"
	"github.com/formatix/erp/modules/scheduling/domain/entities/trainer"
	"github.com/formatix/erp/modules/scheduling/domain/value_objects/timewindow"
	"github.com/formatix/erp/pkg/composables"
	"github.com/formatix/erp/pkg/eventbus"
	"github.com/formatix/erp/pkg/serrors"
)

// ImportResult is the outcome of one accepted batch. DroppedRows and
// UnresolvedTrainers report non-fatal conditions; they never fail the
// import.
type ImportResult struct {
	Created            int `json:"created"`
	Updated            int `json:"updated"`
	Removed            int `json:"removed"`
	DroppedRows        int `json:"droppedRows"`
	UnresolvedTrainers int `json:"unresolvedTrainers"`
}

// inTxWithOptions is swappable in tests.
var inTxWithOptions = composables.InTxWithOptions

// ImportService reconciles a bulk session import against the sessions a
// deal already has: matched rows update in place, surplus records are
// deleted, surplus rows become new sessions. Rooms are allocated so that
// no two sessions anywhere in the system overlap in the same room,
// including assignments planned earlier in the same batch.
type ImportService struct {
	sessions  session.Repository
	rooms     room.Repository
	trainers  trainer.Repository
	deals     deal.Repository
	publisher eventbus.EventBus
	logger    *logrus.Logger
}

func NewImportService(
	sessions session.Repository,
	rooms room.Repository,
	trainers trainer.Repository,
	deals deal.Repository,
	publisher eventbus.EventBus,
	logger *logrus.Logger,
) *ImportService {
	return &ImportService{
		sessions:  sessions,
		rooms:     rooms,
		trainers:  trainers,
		deals:     deals,
		publisher: publisher,
		logger:    logger,
	}
}

// ImportSessions is the batch entry point. The whole plan is applied in
// one repeatable-read transaction: on any write failure nothing of the
// batch is visible. There are no retries here; a retried batch may
// legitimately allocate different rooms.
func (s *ImportService) ImportSessions(ctx context.Context, dealID uuid.UUID, raws []importrow.RawRow) (ImportResult, error) {
	if dealID == uuid.Nil {
		return ImportResult{}, serrors.NewValidationError("deal id is required")
	}
	if len(raws) == 0 {
		return ImportResult{}, serrors.NewValidationError("no rows submitted")
	}

	d, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, deal.ErrNotFound) {
			return ImportResult{}, serrors.NewNotFoundError("deal does not exist")
		}
		return ImportResult{}, serrors.NewPersistenceError("loading deal", err)
	}
	if !d.HasCourse() {
		return ImportResult{}, serrors.NewNotFoundError("deal has no catalog course; sessions cannot be created")
	}

	rows, dropped := importrow.ParseRows(raws)
	if len(rows) == 0 {
		return ImportResult{}, serrors.NewValidationError("no valid sessions in submitted rows")
	}

	result := ImportResult{DroppedRows: dropped}
	var events []interface{}

	txOpts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead}
	err = inTxWithOptions(ctx, txOpts, func(txCtx context.Context) error {
		applied, batchEvents, err := s.runBatch(txCtx, d, rows)
		if err != nil {
			return err
		}
		result.Created = applied.Created
		result.Updated = applied.Updated
		result.Removed = applied.Removed
		result.UnresolvedTrainers = applied.UnresolvedTrainers
		events = batchEvents
		return nil
	})
	if err != nil {
		var be *serrors.BaseError
		if errors.As(err, &be) {
			return ImportResult{}, err
		}
		return ImportResult{}, serrors.NewPersistenceError("applying import batch", err)
	}

	s.logger.WithFields(logrus.Fields{
		"deal_id": dealID,
		"created": result.Created,
		"updated": result.Updated,
		"removed": result.Removed,
		"dropped": result.DroppedRows,
	}).Info("session import applied")
	for _, ev := range events {
		s.publisher.Publish(ev)
	}
	s.publisher.Publish(&session.ImportedEvent{
		DealID:  dealID,
		Created: result.Created,
		Updated: result.Updated,
		Removed: result.Removed,
	})

	return result, nil
}

// runBatch computes the reconciliation plan, resolves trainers and rooms
// for every planned session, then applies deletions, updates and
// creations in that order. Per-session events are returned rather than
// published; they only go out once the transaction commits.
func (s *ImportService) runBatch(ctx context.Context, d deal.Deal, rows []importrow.ImportRow) (ImportResult, []interface{}, error) {
	var result ImportResult
	var events []interface{}

	existing, err := s.sessions.GetByDealID(ctx, d.ID())
	if err != nil {
		return result, nil, err
	}

	plan := pairBySortedPosition(existing, rows)

	allocator, err := s.buildAllocator(ctx, d, plan.deletedIDs)
	if err != nil {
		return result, nil, err
	}
	resolver := newTrainerResolver(s.trainers)

	for _, del := range plan.deletions {
		if err := s.sessions.Delete(ctx, del.ID()); err != nil {
			return result, nil, err
		}
		result.Removed++
		events = append(events, &session.DeletedEvent{SessionID: del.ID(), DealID: d.ID()})
	}

	for _, pair := range plan.updates {
		updated := pair.existing.
			WithWindow(pair.row.Window).
			WithState(pair.row.State).
			WithAddress(d.Address())

		updated, unresolved, err := s.assignTrainers(ctx, resolver, updated, pair.row)
		if err != nil {
			return result, nil, err
		}
		result.UnresolvedTrainers += unresolved

		updated = updated.WithRoomID(s.assignRoom(d, allocator, pair.row.Window, updated.ID(), pair.existing.RoomID()))

		updated, err = s.sessions.Update(ctx, updated)
		if err != nil {
			return result, nil, err
		}
		if err := s.sessions.ReplaceTrainerLinks(ctx, updated.ID(), updated.TrainerIDs()); err != nil {
			return result, nil, err
		}
		result.Updated++
		events = append(events, &session.UpdatedEvent{Result: updated})
	}

	for _, row := range plan.creations {
		created := session.New(d.ID(), row.Window, d.Address(), row.State)

		created, unresolved, err := s.assignTrainers(ctx, resolver, created, row)
		if err != nil {
			return result, nil, err
		}
		result.UnresolvedTrainers += unresolved

		created = created.WithRoomID(s.assignRoom(d, allocator, row.Window, created.ID(), nil))

		created, err = s.sessions.Create(ctx, created)
		if err != nil {
			return result, nil, err
		}
		if err := s.sessions.ReplaceTrainerLinks(ctx, created.ID(), created.TrainerIDs()); err != nil {
			return result, nil, err
		}
		result.Created++
		events = append(events, &session.CreatedEvent{Result: created})
	}

	return result, events, nil
}

func (s *ImportService) buildAllocator(ctx context.Context, d deal.Deal, deletedIDs map[uuid.UUID]struct{}) (*roomAllocator, error) {
	if !d.NeedsRoom() {
		return nil, nil
	}

	allRooms, err := s.rooms.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	roomIDs := make([]uuid.UUID, len(allRooms))
	for i, r := range allRooms {
		roomIDs[i] = r.ID()
	}

	bookings, err := s.sessions.ListBookings(ctx, deletedIDs)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return newRoomAllocator(roomIDs, bookings, deletedIDs, rng), nil
}

// assignRoom returns the room for a session, or nil when the deal's
// pipeline skips rooms or every candidate conflicts. Rooms are a soft
// constraint: exhaustion never fails the batch.
func (s *ImportService) assignRoom(
	d deal.Deal,
	allocator *roomAllocator,
	window timewindow.TimeWindow,
	sessionID uuid.UUID,
	preferred *uuid.UUID,
) *uuid.UUID {
	if allocator == nil {
		return nil
	}
	roomID, ok := allocator.Allocate(window, sessionID, preferred)
	if !ok {
		s.logger.WithFields(logrus.Fields{
			"deal_id":    d.ID(),
			"session_id": sessionID,
			"window":     window.String(),
		}).Warn("no room available for session window")
		return nil
	}
	return &roomID
}

func (s *ImportService) assignTrainers(
	ctx context.Context,
	resolver *trainerResolver,
	sess session.Session,
	row importrow.ImportRow,
) (session.Session, int, error) {
	unresolved := 0

	mainID, err := resolver.Resolve(ctx, row.MainTrainerName)
	if err != nil {
		return sess, 0, err
	}
	if mainID == nil && row.MainTrainerName != "" {
		unresolved++
	}

	supportID, err := resolver.Resolve(ctx, row.SupportTrainerName)
	if err != nil {
		return sess, 0, err
	}
	if supportID == nil && row.SupportTrainerName != "" {
		unresolved++
	}

	return sess.WithMainTrainerID(mainID).WithSupportTrainerID(supportID), unresolved, nil
}
