package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end string) TimeWindow {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	w, err := New(s, e)
	require.NoError(t, err)
	return w
}

func TestNew_RejectsInvertedWindow(t *testing.T) {
	s := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	_, err := New(s, s)
	require.Error(t, err)

	_, err = New(s, s.Add(-time.Hour))
	require.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	base := mustWindow(t, "2024-05-01T09:00:00Z", "2024-05-01T12:00:00Z")

	tests := []struct {
		name  string
		other TimeWindow
		want  bool
	}{
		{"fully inside", mustWindow(t, "2024-05-01T10:00:00Z", "2024-05-01T11:00:00Z"), true},
		{"fully covering", mustWindow(t, "2024-05-01T08:00:00Z", "2024-05-01T13:00:00Z"), true},
		{"left overlap", mustWindow(t, "2024-05-01T08:00:00Z", "2024-05-01T09:30:00Z"), true},
		{"right overlap", mustWindow(t, "2024-05-01T11:30:00Z", "2024-05-01T14:00:00Z"), true},
		{"touching start counts", mustWindow(t, "2024-05-01T07:00:00Z", "2024-05-01T09:00:00Z"), true},
		{"touching end counts", mustWindow(t, "2024-05-01T12:00:00Z", "2024-05-01T13:00:00Z"), true},
		{"strictly before", mustWindow(t, "2024-05-01T06:00:00Z", "2024-05-01T08:59:00Z"), false},
		{"strictly after", mustWindow(t, "2024-05-01T12:01:00Z", "2024-05-01T14:00:00Z"), false},
		{"different day", mustWindow(t, "2024-05-02T09:00:00Z", "2024-05-02T12:00:00Z"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, base.Overlaps(tt.other))
			require.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}
