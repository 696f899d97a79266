package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/polarmet/icephys/internal/domain"
)

// coreJSON mirrors one record of the ice-core physics JSON. Pointer slices
// preserve the distinction between a null depth sample and zero.
type coreJSON struct {
	Properties struct {
		Time               string   `json:"time"`
		SurfaceTemperature *float64 `json:"surface_temperature"`
	} `json:"properties"`
	Density        []*float64 `json:"density"`
	SampleTopCm    []*float64 `json:"sample_top_cm"`
	SampleBottomCm []*float64 `json:"sample_bottom_cm"`
	Salinity       []*float64 `json:"sea_ice_salinity"`
}

type coreFile struct {
	Records []coreJSON `json:"records"`
}

// IceCores reads the ice-core physics dataset. Records keep their sparse
// schema: absent fields stay empty and null depth samples become NaN.
func IceCores(path string) ([]domain.CoreRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var file coreFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	records := make([]domain.CoreRecord, 0, len(file.Records))
	for i, rec := range file.Records {
		t, err := ParseTime(rec.Properties.Time)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", path, i, err)
		}
		records = append(records, domain.CoreRecord{
			Time:               t,
			SurfaceTemperature: rec.Properties.SurfaceTemperature,
			Density:            floats(rec.Density),
			SampleTopCm:        floats(rec.SampleTopCm),
			SampleBottomCm:     floats(rec.SampleBottomCm),
			Salinity:           floats(rec.Salinity),
		})
	}
	return records, nil
}

// floats converts a nullable JSON array into a float slice with NaN for null.
func floats(ps []*float64) []float64 {
	if len(ps) == 0 {
		return nil
	}
	out := make([]float64, len(ps))
	for i, p := range ps {
		if p == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *p
		}
	}
	return out
}
