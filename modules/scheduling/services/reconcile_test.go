package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/entities/importrow"
	"github.com/formatix/erp/modules/scheduling/domain/value_objects/timewindow"
)

func window(t *testing.T, day, startHour, endHour int) timewindow.TimeWindow {
	t.Helper()
	w, err := timewindow.New(
		time.Date(2024, 6, day, startHour, 0, 0, 0, time.UTC),
		time.Date(2024, 6, day, endHour, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return w
}

func existingSession(t *testing.T, dealID uuid.UUID, day int, createdAt time.Time) session.Session {
	t.Helper()
	return session.Hydrate(
		uuid.New(), dealID, window(t, day, 9, 17),
		nil, nil, nil, "", session.StateScheduled,
		createdAt, createdAt,
	)
}

func row(t *testing.T, number string, day int) importrow.ImportRow {
	t.Helper()
	return importrow.ImportRow{
		SessionNumber: number,
		Window:        window(t, day, 9, 17),
		State:         session.StateConfirmed,
	}
}

func TestPairBySortedPosition_MoreRowsThanSessions(t *testing.T) {
	dealID := uuid.New()
	now := time.Now()
	existing := []session.Session{
		existingSession(t, dealID, 3, now),
		existingSession(t, dealID, 1, now),
		existingSession(t, dealID, 2, now),
	}
	rows := []importrow.ImportRow{
		row(t, "1", 1), row(t, "2", 2), row(t, "3", 3), row(t, "4", 4), row(t, "5", 5),
	}

	plan := pairBySortedPosition(existing, rows)

	require.Len(t, plan.updates, 3)
	require.Len(t, plan.creations, 2)
	require.Empty(t, plan.deletions)
	require.Empty(t, plan.deletedIDs)

	// sessions paired in start order with rows in number order
	for i, pair := range plan.updates {
		require.Equal(t, i+1, pair.existing.Window().Start.Day())
		require.Equal(t, i+1, pair.row.Window.Start.Day())
	}
	require.Equal(t, "4", plan.creations[0].SessionNumber)
	require.Equal(t, "5", plan.creations[1].SessionNumber)
}

func TestPairBySortedPosition_MoreSessionsThanRows(t *testing.T) {
	dealID := uuid.New()
	now := time.Now()
	existing := []session.Session{
		existingSession(t, dealID, 1, now),
		existingSession(t, dealID, 2, now),
		existingSession(t, dealID, 3, now),
		existingSession(t, dealID, 4, now),
		existingSession(t, dealID, 5, now),
	}
	rows := []importrow.ImportRow{row(t, "1", 1), row(t, "2", 2)}

	plan := pairBySortedPosition(existing, rows)

	require.Len(t, plan.updates, 2)
	require.Empty(t, plan.creations)
	require.Len(t, plan.deletions, 3)
	require.Len(t, plan.deletedIDs, 3)
	for _, del := range plan.deletions {
		require.Contains(t, plan.deletedIDs, del.ID())
		require.GreaterOrEqual(t, del.Window().Start.Day(), 3, "latest sessions become deletions")
	}
}

func TestPairBySortedPosition_NumericAwareRowOrder(t *testing.T) {
	rows := []importrow.ImportRow{
		row(t, "10", 10), row(t, "2", 2), row(t, "1", 1),
	}

	plan := pairBySortedPosition(nil, rows)

	require.Len(t, plan.creations, 3)
	require.Equal(t, "1", plan.creations[0].SessionNumber)
	require.Equal(t, "2", plan.creations[1].SessionNumber)
	require.Equal(t, "10", plan.creations[2].SessionNumber)
}

func TestPairBySortedPosition_TiesBrokenByCreatedAtThenID(t *testing.T) {
	dealID := uuid.New()
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	a := existingSession(t, dealID, 1, late)
	b := existingSession(t, dealID, 1, early)
	plan := pairBySortedPosition([]session.Session{a, b}, []importrow.ImportRow{row(t, "1", 1)})

	require.Len(t, plan.updates, 1)
	require.Equal(t, b.ID(), plan.updates[0].existing.ID(), "earlier createdAt pairs first")
	require.Equal(t, a.ID(), plan.deletions[0].ID())
}

func TestPairBySortedPosition_DoesNotMutateInputs(t *testing.T) {
	dealID := uuid.New()
	now := time.Now()
	existing := []session.Session{
		existingSession(t, dealID, 2, now),
		existingSession(t, dealID, 1, now),
	}
	first := existing[0].ID()

	_ = pairBySortedPosition(existing, []importrow.ImportRow{row(t, "1", 1)})

	require.Equal(t, first, existing[0].ID(), "input slice order must be preserved")
}

func TestPairBySortedPosition_ConcurrentBatchesStayOrdered(t *testing.T) {
	dealID := uuid.New()
	now := time.Now()
	existing := []session.Session{
		existingSession(t, dealID, 1, now),
		existingSession(t, dealID, 2, now),
	}
	rows := []importrow.ImportRow{
		row(t, "10", 10), row(t, "2", 2), row(t, "1", 1), row(t, "3", 3),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				plan := pairBySortedPosition(existing, rows)
				require.Equal(t, "1", plan.updates[0].row.SessionNumber)
				require.Equal(t, "2", plan.updates[1].row.SessionNumber)
				require.Equal(t, "3", plan.creations[0].SessionNumber)
				require.Equal(t, "10", plan.creations[1].SessionNumber)
			}
		}()
	}
	wg.Wait()
}
