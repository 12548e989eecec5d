package timewindow

import (
	"fmt"
	"time"
)

// TimeWindow is a closed interval [Start, End]. Sessions and room
// bookings both carry one.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, fmt.Errorf("time window end %s is not after start %s", end, start)
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Overlaps reports whether the two closed intervals share at least one
// instant. Touching endpoints count as overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return !w.Start.After(other.End) && !w.End.Before(other.Start)
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s]", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}
