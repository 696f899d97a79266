// Package loader reads the published campaign dataset files into domain
// series. Parsing is the only responsibility here; all aggregation happens
// in the domain package.
package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/polarmet/icephys/internal/domain"
)

// timeLayouts are the timestamp formats seen across the dataset exports.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Columns reads a tabular CSV export and returns one single-column series per
// requested value column, keyed by column name. Empty cells and non-numeric
// sentinels become NaN so they are excluded from aggregation rather than
// counted as zero.
func Columns(path, timeCol string, valueCols ...string) (map[string]domain.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	index := make(map[string]int, len(all[0]))
	for i, h := range all[0] {
		index[strings.TrimSpace(h)] = i
	}

	timeIdx, ok := index[timeCol]
	if !ok {
		return nil, fmt.Errorf("%s: missing time column %q", path, timeCol)
	}
	colIdx := make([]int, len(valueCols))
	for i, c := range valueCols {
		idx, ok := index[c]
		if !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, c)
		}
		colIdx[i] = idx
	}

	series := make(map[string]domain.Series, len(valueCols))
	for _, c := range valueCols {
		series[c] = domain.Series{Name: c}
	}

	for line, row := range all[1:] {
		t, err := ParseTime(row[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line+2, err)
		}
		for i, c := range valueCols {
			s := series[c]
			s.Append(t, parseFloatOrNaN(row[colIdx[i]]))
			series[c] = s
		}
	}
	return series, nil
}

// ParseTime parses a dataset timestamp in any of the known layouts, in UTC.
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// parseFloatOrNaN parses a cell as float64, returning NaN for anything that
// is not a valid number.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
