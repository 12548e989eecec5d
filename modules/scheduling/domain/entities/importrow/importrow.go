package importrow

import (
	"fmt"
	"strings"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
	"github.com/formatix/erp/modules/scheduling/domain/value_objects/timewindow"
)

// RawRow is one spreadsheet line as received: every cell is a string,
// dates possibly serial numbers, the state a free-text label.
type RawRow struct {
	SessionNumber      string
	Start              string
	End                string
	MainTrainerName    string
	SupportTrainerName string
	State              string
}

// ImportRow is a validated row ready for reconciliation.
type ImportRow struct {
	SessionNumber      string
	Window             timewindow.TimeWindow
	MainTrainerName    string
	SupportTrainerName string
	State              session.State
}

// ParseRow validates a raw row. Rows failing here are dropped from the
// batch by the caller; only a batch with zero surviving rows is fatal.
func ParseRow(raw RawRow) (ImportRow, error) {
	number := strings.TrimSpace(raw.SessionNumber)
	if number == "" {
		return ImportRow{}, fmt.Errorf("row has no session number")
	}

	start, err := ParseDateTime(raw.Start)
	if err != nil {
		return ImportRow{}, fmt.Errorf("row %s: invalid start: %w", number, err)
	}
	end, err := ParseDateTime(raw.End)
	if err != nil {
		return ImportRow{}, fmt.Errorf("row %s: invalid end: %w", number, err)
	}

	window, err := timewindow.New(start, end)
	if err != nil {
		return ImportRow{}, fmt.Errorf("row %s: %w", number, err)
	}

	return ImportRow{
		SessionNumber:      number,
		Window:             window,
		MainTrainerName:    strings.TrimSpace(raw.MainTrainerName),
		SupportTrainerName: strings.TrimSpace(raw.SupportTrainerName),
		State:              ParseState(raw.State),
	}, nil
}

// ParseRows parses every raw row, returning the surviving rows and the
// number dropped.
func ParseRows(raws []RawRow) ([]ImportRow, int) {
	rows := make([]ImportRow, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		row, err := ParseRow(raw)
		if err != nil {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, dropped
}
