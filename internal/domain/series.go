package domain

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Sample is one observation row: a timestamp plus one value per column.
// Columns are depth levels for ice-core series and a single sensor otherwise.
// Missing values are NaN.
type Sample struct {
	Time   time.Time
	Values []float64
}

// Series is a time-indexed, possibly multi-column measurement series.
type Series struct {
	Name    string
	Samples []Sample
}

// Append adds one observation row to the series.
func (s *Series) Append(t time.Time, values ...float64) {
	s.Samples = append(s.Samples, Sample{Time: t, Values: values})
}

// Len returns the number of observation rows.
func (s Series) Len() int { return len(s.Samples) }

// Mean reduces the series to a single scalar: each row is averaged across its
// columns, then the row means are averaged across time. NaN values are
// excluded at both stages, so column order never affects the result. A series
// that is empty after filtering yields NaN, never a silent zero.
func (s Series) Mean() float64 {
	rowMeans := make([]float64, 0, len(s.Samples))
	for _, smp := range s.Samples {
		if m := nanMean(smp.Values); !math.IsNaN(m) {
			rowMeans = append(rowMeans, m)
		}
	}
	if len(rowMeans) == 0 {
		return math.NaN()
	}
	return stat.Mean(rowMeans, nil)
}

// Window returns the sub-series whose samples fall inside the interval.
func (s Series) Window(iv Interval) Series {
	out := Series{Name: s.Name}
	for _, smp := range s.Samples {
		if iv.Contains(smp.Time) {
			out.Samples = append(out.Samples, smp)
		}
	}
	return out
}

// Missing reports how many individual values in the series are NaN.
func (s Series) Missing() int {
	n := 0
	for _, smp := range s.Samples {
		for _, v := range smp.Values {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// nanMean averages a row of values, skipping NaN. Returns NaN when nothing
// remains.
func nanMean(values []float64) float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return math.NaN()
	}
	return stat.Mean(kept, nil)
}
