package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/formatix/erp/modules/scheduling/domain/entities/importrow"
)

// Expected column layout of an import workbook, first sheet:
//
//	A session number | B start | C end | D main trainer | E support trainer | F state
//
// The first row is treated as a header when it does not parse as data.
const (
	colSessionNumber  = 0
	colStart          = 1
	colEnd            = 2
	colMainTrainer    = 3
	colSupportTrainer = 4
	colState          = 5
)

// ReadSessionRows extracts raw import rows from an uploaded .xlsx file.
// Cells are read raw so date cells arrive as spreadsheet serial numbers,
// which is what the row parser expects.
func ReadSessionRows(r io.Reader) ([]importrow.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	raws := make([]importrow.RawRow, 0, len(rows))
	for i, cells := range rows {
		raw := importrow.RawRow{
			SessionNumber:      cell(cells, colSessionNumber),
			Start:              cell(cells, colStart),
			End:                cell(cells, colEnd),
			MainTrainerName:    cell(cells, colMainTrainer),
			SupportTrainerName: cell(cells, colSupportTrainer),
			State:              cell(cells, colState),
		}
		if i == 0 && looksLikeHeader(raw) {
			continue
		}
		if raw.SessionNumber == "" && raw.Start == "" && raw.End == "" {
			continue
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func cell(cells []string, index int) string {
	if index >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[index])
}

// looksLikeHeader is satisfied when the date columns hold no parseable
// value, which is true for label rows like "Start"/"End".
func looksLikeHeader(raw importrow.RawRow) bool {
	if _, err := importrow.ParseDateTime(raw.Start); err == nil {
		return false
	}
	if _, err := importrow.ParseDateTime(raw.End); err == nil {
		return false
	}
	return true
}
