package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestReadSessionRows_SkipsHeaderAndBlankRows(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Session", "Start", "End", "Main trainer", "Support trainer", "State"},
		{"1", "2024-03-01 09:00", "2024-03-01 12:00", "Ana Costa", "", "confirmed"},
		{"", "", "", "", "", ""},
		{"2", "2024-03-02 09:00", "2024-03-02 12:00", "", "Luc Moreau", "draft"},
	})

	raws, err := ReadSessionRows(r)
	require.NoError(t, err)
	require.Len(t, raws, 2)
	require.Equal(t, "1", raws[0].SessionNumber)
	require.Equal(t, "Ana Costa", raws[0].MainTrainerName)
	require.Equal(t, "confirmed", raws[0].State)
	require.Equal(t, "Luc Moreau", raws[1].SupportTrainerName)
}

func TestReadSessionRows_NoHeaderRow(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"1", "2024-03-01 09:00", "2024-03-01 12:00", "", "", ""},
	})

	raws, err := ReadSessionRows(r)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.Equal(t, "1", raws[0].SessionNumber)
}

func TestReadSessionRows_SerialDateCells(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"1", 45000.375, 45000.5, "", "", ""},
	})

	raws, err := ReadSessionRows(r)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.Equal(t, "45000.375", raws[0].Start)
	require.Equal(t, "45000.5", raws[0].End)
}

func TestReadSessionRows_NotAWorkbook(t *testing.T) {
	_, err := ReadSessionRows(bytes.NewReader([]byte("not an xlsx")))
	require.Error(t, err)
}
