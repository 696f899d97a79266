package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/polarmet/icephys/internal/domain"
)

// SurfaceTemperature reads the atmospheric-derived surface temperature
// spreadsheet: a header row, then timestamps in the first column and
// temperature in Kelvin in the second. Cells that do not parse as numbers
// become NaN.
func SurfaceTemperature(path string) (domain.Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Series{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return domain.Series{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return domain.Series{}, fmt.Errorf("no data rows in %s", path)
	}

	s := domain.Series{Name: "surface_temperature"}
	for i, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		t, err := ParseTime(row[0])
		if err != nil {
			return domain.Series{}, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		s.Append(t, parseFloatOrNaN(row[1]))
	}
	if s.Len() == 0 {
		return domain.Series{}, fmt.Errorf("no data rows in %s", path)
	}
	return s, nil
}
