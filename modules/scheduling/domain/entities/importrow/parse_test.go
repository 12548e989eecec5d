package importrow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/formatix/erp/modules/scheduling/domain/aggregates/session"
)

func TestParseDateTime_SpreadsheetSerial(t *testing.T) {
	got, err := ParseDateTime("45000")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateTime_FractionalSerial(t *testing.T) {
	got, err := ParseDateTime("45000.5")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, time.March, 15, 12, 0, 0, 0, time.UTC), got)
}

func TestParseDateTime_ISO(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2024-05-01T09:30:00Z", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-05-01T09:30:00", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-05-01 09:30", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"01/05/2024 09:30", time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseDateTime(tt.value)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	for _, value := range []string{"", "  ", "not a date", "-12"} {
		_, err := ParseDateTime(value)
		require.Error(t, err, "value %q", value)
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		label string
		want  session.State
	}{
		{"confirmed", session.StateConfirmed},
		{"Confirmé", session.StateConfirmed},
		{"CONFIRME", session.StateConfirmed},
		{"planifié", session.StateScheduled},
		{"Planned", session.StateScheduled},
		{"terminé", session.StateCompleted},
		{"annulé", session.StateCancelled},
		{"canceled", session.StateCancelled},
		{"brouillon", session.StateDraft},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			require.Equal(t, tt.want, ParseState(tt.label))
		})
	}
}

func TestParseState_UnknownDefaultsToDraft(t *testing.T) {
	require.Equal(t, session.StateDraft, ParseState("something else"))
	require.Equal(t, session.StateDraft, ParseState(""))
}

func TestParseRow_RejectsInvertedWindow(t *testing.T) {
	_, err := ParseRow(RawRow{
		SessionNumber: "1",
		Start:         "2024-05-01T12:00:00Z",
		End:           "2024-05-01T09:00:00Z",
	})
	require.Error(t, err)
}

func TestParseRow_RejectsMissingFields(t *testing.T) {
	_, err := ParseRow(RawRow{Start: "2024-05-01T09:00:00Z", End: "2024-05-01T12:00:00Z"})
	require.Error(t, err, "missing session number")

	_, err = ParseRow(RawRow{SessionNumber: "1", End: "2024-05-01T12:00:00Z"})
	require.Error(t, err, "missing start")

	_, err = ParseRow(RawRow{SessionNumber: "1", Start: "2024-05-01T09:00:00Z"})
	require.Error(t, err, "missing end")
}

func TestParseRows_DropsInvalidKeepsValid(t *testing.T) {
	rows, dropped := ParseRows([]RawRow{
		{SessionNumber: "1", Start: "2024-05-01T09:00:00Z", End: "2024-05-01T12:00:00Z", State: "confirmé"},
		{SessionNumber: "2", Start: "garbage", End: "2024-05-02T12:00:00Z"},
		{SessionNumber: "3", Start: "45000", End: "45000.5", MainTrainerName: " Ana Pérez "},
	})
	require.Len(t, rows, 2)
	require.Equal(t, 1, dropped)
	require.Equal(t, "1", rows[0].SessionNumber)
	require.Equal(t, session.StateConfirmed, rows[0].State)
	require.Equal(t, "3", rows[1].SessionNumber)
	require.Equal(t, "Ana Pérez", rows[1].MainTrainerName)
}
