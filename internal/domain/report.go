package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Scalar is a derived value that marshals NaN and infinities as JSON null,
// since encoding/json rejects them. An undefined statistic (for example a
// mean over an empty sub-period) therefore survives serialization as null
// rather than a false zero.
type Scalar float64

// IsDefined reports whether the value is a finite number.
func (s Scalar) IsDefined() bool {
	f := float64(s)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.IsDefined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Scalar(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Scalar(f)
	return nil
}

// PeriodMeans holds a series mean over the whole experiment and over each
// named campaign sub-period.
type PeriodMeans struct {
	Experiment Scalar `json:"experiment"`
	Floe1      Scalar `json:"floe_1"`
	Floe2      Scalar `json:"floe_2"`
	Floe3      Scalar `json:"floe_3"`
	Floe4      Scalar `json:"floe_4"`
	Winter     Scalar `json:"winter"`
	Summer     Scalar `json:"summer"`
}

// MeansByPeriod reduces a series over the experiment and every sub-period.
func MeansByPeriod(s Series) PeriodMeans {
	return PeriodMeans{
		Experiment: Scalar(s.Mean()),
		Floe1:      Scalar(s.Window(Floe1).Mean()),
		Floe2:      Scalar(s.Window(Floe2).Mean()),
		Floe3:      Scalar(s.Window(Floe3).Mean()),
		Floe4:      Scalar(s.Window(Floe4).Mean()),
		Winter:     Scalar(s.Window(Winter).Mean()),
		Summer:     Scalar(s.Window(Summer).Mean()),
	}
}

// SeasonalValues holds a parameter evaluated at the experiment-mean, the
// winter-mean, and the summer-mean surface temperature.
type SeasonalValues struct {
	Experiment Scalar `json:"experiment"`
	Winter     Scalar `json:"winter"`
	Summer     Scalar `json:"summer"`
}

// Report is the full set of derived surface parameters from one analysis run.
type Report struct {
	RoughnessLength        Scalar         `json:"roughness_length_m"`
	SurfaceTemperature     PeriodMeans    `json:"ice_surface_temperature_c"`
	Salinity               PeriodMeans    `json:"ice_salinity_ppt"`
	Density                PeriodMeans    `json:"ice_density_kg_m3"`
	HeatCapacity           SeasonalValues `json:"heat_capacity_j_kg_k"`
	VolumetricHeatCapacity SeasonalValues `json:"heat_capacity_j_m3_k"`
	CorrectionTerm         PeriodMeans    `json:"heat_capacity_correction_j_kg_k"`
	Albedo                 PeriodMeans    `json:"surface_albedo"`
	GeneratedAt            time.Time      `json:"generated_at"`
}
