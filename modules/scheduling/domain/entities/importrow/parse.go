package importrow

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
)

// Spreadsheet serial dates count days since 1899-12-30 UTC.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const millisPerDay = 86_400_000

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDateTime accepts an ISO-ish date string or a spreadsheet serial
// number (possibly fractional). Numeric-looking values are interpreted as
// serials before any date layout is tried.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		return fromSerial(serial)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date value %q", value)
}

func fromSerial(serial float64) (time.Time, error) {
	if serial <= 0 {
		return time.Time{}, fmt.Errorf("serial date %v out of range", serial)
	}
	ms := serialEpoch.UnixMilli() + int64(serial*millisPerDay)
	return time.UnixMilli(ms).UTC(), nil
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldLabel lowercases and strips diacritics so that "Confirmé" and
// "confirme" compare equal.
func foldLabel(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

var stateLabels = map[string]session.State{
	"draft":     session.StateDraft,
	"brouillon": session.StateDraft,
	"scheduled": session.StateScheduled,
	"planned":   session.StateScheduled,
	"planifie":  session.StateScheduled,
	"prevu":     session.StateScheduled,
	"confirmed": session.StateConfirmed,
	"confirme":  session.StateConfirmed,
	"completed": session.StateCompleted,
	"done":      session.StateCompleted,
	"termine":   session.StateCompleted,
	"realise":   session.StateCompleted,
	"cancelled": session.StateCancelled,
	"canceled":  session.StateCancelled,
	"annule":    session.StateCancelled,
}

// ParseState maps a free-text label onto a session state. Unrecognized
// labels fall back to draft; the import flow treats that as a lenient
// default, not an error.
func ParseState(value string) session.State {
	if state, ok := stateLabels[foldLabel(value)]; ok {
		return state
	}
	return session.StateDraft
}
