package domain

import "time"

// Interval is a contiguous range of observation dates, inclusive of both
// boundary dates. Comparisons happen at day granularity in UTC, matching how
// the campaign analysis sliced its series by date label.
type Interval struct {
	Name string
	From time.Time // first included date, UTC midnight
	To   time.Time // last included date, UTC midnight
}

// Contains reports whether t falls on a date inside the interval. A sample
// taken at any time of day on the To date is still included.
func (iv Interval) Contains(t time.Time) bool {
	d := t.UTC().Truncate(24 * time.Hour)
	return !d.Before(iv.From) && !d.After(iv.To)
}

// Campaign sub-periods. The ship was moored to four successive floes; the
// winter/summer split falls in the transition between floe 2 and floe 3.
var (
	Floe1  = Interval{Name: "floe 1", From: date(2015, 1, 1), To: date(2015, 2, 21)}
	Floe2  = Interval{Name: "floe 2", From: date(2015, 2, 23), To: date(2015, 3, 21)}
	Floe3  = Interval{Name: "floe 3", From: date(2015, 4, 18), To: date(2015, 6, 5)}
	Floe4  = Interval{Name: "floe 4", From: date(2015, 6, 7), To: date(2015, 6, 21)}
	Winter = Interval{Name: "winter", From: date(2015, 1, 1), To: date(2015, 4, 1)}
	Summer = Interval{Name: "summer", From: date(2015, 4, 7), To: date(2015, 6, 21)}

	// Experiment spans the full observation period.
	Experiment = Interval{Name: "experiment", From: date(2015, 1, 1), To: date(2015, 6, 21)}
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
