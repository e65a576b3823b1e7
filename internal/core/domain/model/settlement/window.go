package settlement

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrWindowIsNotConstructed is returned when using an improperly initialized Window.
var ErrWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"window must be created via NewWindow constructor")

// Window is an inclusive [start, end] date range at day granularity, used to
// bound settlement generation. Both bounds are normalized to midnight in
// their own location; a timestamp anywhere on the end day is still inside
// the window.
type Window struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time

	guard guard.ConstructorGuard
}

// NewWindow creates a Window from two timestamps, keeping only their dates.
// The end date must not precede the start date.
func NewWindow(start, end time.Time) (Window, error) {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	if endDay.Before(startDay) {
		return Window{}, errs.NewValueIsInvalidErrorWithCause(
			"window", fmt.Errorf("end %s precedes start %s",
				endDay.Format(time.DateOnly), startDay.Format(time.DateOnly)))
	}

	return Window{
		start: startDay,
		end:   endDay,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// LastCalendarWeek returns the calendar week just elapsed relative to now:
// Monday 00:00 through Sunday of the previous week, in now's location.
// The scheduler computes this and passes it to the generator as plain
// values; the generator itself never consults the wall clock.
func LastCalendarWeek(now time.Time) Window {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	thisMonday := truncateToDay(now).AddDate(0, 0, -daysSinceMonday)

	lastMonday := thisMonday.AddDate(0, 0, -7)
	lastSunday := thisMonday.AddDate(0, 0, -1)

	window, _ := NewWindow(lastMonday, lastSunday)
	return window
}

// Validate checks that the Window was created through a constructor.
func (w Window) Validate() error {
	return w.guard.Validate(ErrWindowIsNotConstructed)
}

// Start returns the first day of the window at midnight.
func (w Window) Start() time.Time {
	return w.start
}

// End returns the last day of the window at midnight. The window includes
// the whole of this day.
func (w Window) End() time.Time {
	return w.end
}

// EndExclusive returns midnight of the day after the window, for use in
// half-open range queries.
func (w Window) EndExclusive() time.Time {
	return w.end.AddDate(0, 0, 1)
}

// Contains reports whether the timestamp falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.start) && ts.Before(w.EndExclusive())
}

// IsEqual reports whether two windows cover exactly the same date range.
func (w Window) IsEqual(other Window) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// String implements fmt.Stringer.
func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]", w.start.Format(time.DateOnly), w.end.Format(time.DateOnly))
}

func truncateToDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
