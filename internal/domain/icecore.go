package domain

import (
	"math"
	"time"
)

// CoreRecord is one ice-core sampling event. The schema is sparse: any of the
// depth-resolved fields may be absent from a given record, and individual
// depth samples may be NaN where the source carried null.
type CoreRecord struct {
	Time               time.Time
	SurfaceTemperature *float64  // °C; nil when the record carried none
	Density            []float64 // kg/m³ per depth sample
	SampleTopCm        []float64 // top of each density sample, cm from surface
	SampleBottomCm     []float64 // bottom of each density sample
	Salinity           []float64 // sea-ice salinity per depth sample, g/kg
}

// DensitySeries collects depth-resolved density rows across sampling events.
// Records without density measurements are skipped, not zero-filled.
func DensitySeries(records []CoreRecord) Series {
	s := Series{Name: "ice_density"}
	for _, r := range records {
		if len(r.Density) == 0 {
			continue
		}
		s.Samples = append(s.Samples, Sample{Time: r.Time, Values: r.Density})
	}
	return s
}

// SalinitySeries reduces each core's depth-resolved salinity to a per-core
// mean, matching how the campaign analysis treated bulk salinity. Cores with
// no valid salinity sample are skipped.
func SalinitySeries(records []CoreRecord) Series {
	s := Series{Name: "ice_salinity"}
	for _, r := range records {
		if len(r.Salinity) == 0 {
			continue
		}
		m := nanMean(r.Salinity)
		if math.IsNaN(m) {
			continue
		}
		s.Append(r.Time, m)
	}
	return s
}

// SurfaceTemperatureSeries collects the scalar surface temperature (°C) from
// records that carry one.
func SurfaceTemperatureSeries(records []CoreRecord) Series {
	s := Series{Name: "ice_surface_temperature"}
	for _, r := range records {
		if r.SurfaceTemperature == nil {
			continue
		}
		s.Append(r.Time, *r.SurfaceTemperature)
	}
	return s
}
