package services

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/entities/importrow"
)

// reconcilePlan is the full set of writes a batch will perform, computed
// before any mutation. deletedIDs lets the room allocator treat rooms of
// to-be-deleted sessions as freed capacity ahead of the actual delete.
type reconcilePlan struct {
	updates    []pairedSession
	creations  []importrow.ImportRow
	deletions  []session.Session
	deletedIDs map[uuid.UUID]struct{}
}

// pairedSession is an existing record matched to an incoming row by
// sorted position.
type pairedSession struct {
	existing session.Session
	row      importrow.ImportRow
}

// pairBySortedPosition pairs existing sessions with incoming rows
// index-for-index after sorting both sides by their canonical order. The
// pairing is positional on purpose: row 1 of a re-imported sheet is
// assumed to correspond to session 1 of the existing plan, regardless of
// content drift.
func pairBySortedPosition(existing []session.Session, rows []importrow.ImportRow) reconcilePlan {
	sortedExisting := slices.Clone(existing)
	slices.SortStableFunc(sortedExisting, compareSessions)

	// The collator orders session numbers numerically where they look
	// numeric, so "2" sorts before "10". CompareString mutates collator
	// state, so the instance is per call, never shared between batches.
	collator := collate.New(language.Und, collate.Numeric)
	sortedRows := slices.Clone(rows)
	slices.SortStableFunc(sortedRows, func(a, b importrow.ImportRow) int {
		return collator.CompareString(a.SessionNumber, b.SessionNumber)
	})

	paired := min(len(sortedExisting), len(sortedRows))

	plan := reconcilePlan{
		updates:    make([]pairedSession, 0, paired),
		deletedIDs: make(map[uuid.UUID]struct{}),
	}
	for i := 0; i < paired; i++ {
		plan.updates = append(plan.updates, pairedSession{
			existing: sortedExisting[i],
			row:      sortedRows[i],
		})
	}
	for _, s := range sortedExisting[paired:] {
		plan.deletions = append(plan.deletions, s)
		plan.deletedIDs[s.ID()] = struct{}{}
	}
	plan.creations = append(plan.creations, sortedRows[paired:]...)

	return plan
}

// compareSessions is the canonical total order over existing sessions:
// window start, then creation timestamp, then id string.
func compareSessions(a, b session.Session) int {
	if c := a.Window().Start.Compare(b.Window().Start); c != 0 {
		return c
	}
	if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
		return c
	}
	return strings.Compare(a.ID().String(), b.ID().String())
}
