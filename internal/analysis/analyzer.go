// Package analysis orchestrates one load-reduce-compute pass over the
// campaign datasets and produces the derived-parameter report.
package analysis

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polarmet/icephys/internal/config"
	"github.com/polarmet/icephys/internal/domain"
	"github.com/polarmet/icephys/internal/loader"
	"github.com/polarmet/icephys/internal/observability"
)

// Analyzer loads the campaign datasets and derives the surface parameters.
// A run is a single synchronous pass; the latest report is retained for the
// HTTP adapter.
type Analyzer struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics

	mu     sync.RWMutex
	report *domain.Report
}

// New creates an Analyzer.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{cfg: cfg, logger: logger, metrics: metrics}
}

// Report returns the most recent report, or nil if no run has completed.
func (a *Analyzer) Report() *domain.Report {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.report
}

// CheckReadiness returns nil once a run has produced a report.
func (a *Analyzer) CheckReadiness(_ context.Context) error {
	if a.Report() == nil {
		return errors.New("no analysis run has completed yet")
	}
	return nil
}

// Run executes one complete pass: load every dataset, reduce the series, and
// evaluate the surface parameter equations. Any load failure aborts the run;
// arithmetic results, including Inf or NaN from degenerate inputs, propagate
// into the report unguarded.
func (a *Analyzer) Run(ctx context.Context) (*domain.Report, error) {
	start := time.Now()
	a.metrics.AnalysisRunning.Set(1)
	defer a.metrics.AnalysisRunning.Set(0)
	a.logger.Info("analysis started")

	in, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	report := derive(in)
	report.GeneratedAt = domain.Now()

	a.mu.Lock()
	a.report = report
	a.mu.Unlock()

	a.metrics.ParametersComputed.Add(float64(parameterCount))
	a.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	a.logger.Info("analysis complete",
		"roughness_length_m", float64(report.RoughnessLength),
		"heat_capacity_j_kg_k", float64(report.HeatCapacity.Experiment),
		"duration", time.Since(start),
	)
	return report, nil
}

// parameterCount is the number of top-level derived parameters per run:
// roughness length, three heat capacities, three volumetric capacities,
// the correction term, and albedo.
const parameterCount = 9

// inputs holds every series the derivation needs, fully resident in memory.
type inputs struct {
	windSpeed2m      domain.Series
	windSpeed10m     domain.Series
	frictionVelocity domain.Series
	surfaceTempC     domain.Series // from ice cores, °C
	salinity         domain.Series
	density          domain.Series
	atmosTempK       domain.Series // atmospheric-derived, Kelvin
	albedo           domain.Series
}

func (a *Analyzer) load(ctx context.Context) (*inputs, error) {
	var in inputs

	steps := []struct {
		dataset string
		load    func() error
	}{
		{"met", func() error {
			cols, err := loader.Columns(a.cfg.MetDataPath, "timestamp", "wind_speed_2m", "wind_speed_10m")
			if err != nil {
				return err
			}
			in.windSpeed2m = cols["wind_speed_2m"]
			in.windSpeed10m = cols["wind_speed_10m"]
			return nil
		}},
		{"flux", func() error {
			cols, err := loader.Columns(a.cfg.FluxDataPath, "timestamp", "friction_velocity")
			if err != nil {
				return err
			}
			in.frictionVelocity = cols["friction_velocity"]
			return nil
		}},
		{"ice_cores", func() error {
			records, err := loader.IceCores(a.cfg.IceCoreDataPath)
			if err != nil {
				return err
			}
			in.surfaceTempC = domain.SurfaceTemperatureSeries(records)
			in.salinity = domain.SalinitySeries(records)
			in.density = domain.DensitySeries(records)
			return nil
		}},
		{"surface_temp", func() error {
			series, err := loader.SurfaceTemperature(a.cfg.SurfaceTempPath)
			if err != nil {
				return err
			}
			in.atmosTempK = series
			return nil
		}},
		{"albedo", func() error {
			cols, err := loader.Columns(a.cfg.AlbedoDataPath, "timestamp", "surface_albedo_mean")
			if err != nil {
				return err
			}
			in.albedo = cols["surface_albedo_mean"]
			return nil
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		begin := time.Now()
		if err := step.load(); err != nil {
			return nil, err
		}
		a.metrics.DatasetsLoaded.WithLabelValues(step.dataset).Inc()
		a.metrics.LoadDuration.WithLabelValues(step.dataset).Observe(time.Since(begin).Seconds())
		a.logger.Debug("dataset loaded", "dataset", step.dataset, "duration", time.Since(begin))
	}

	a.observeSeries("met", in.windSpeed2m, in.windSpeed10m)
	a.observeSeries("flux", in.frictionVelocity)
	a.observeSeries("ice_cores", in.surfaceTempC, in.salinity, in.density)
	a.observeSeries("surface_temp", in.atmosTempK)
	a.observeSeries("albedo", in.albedo)

	return &in, nil
}

func (a *Analyzer) observeSeries(dataset string, series ...domain.Series) {
	for _, s := range series {
		a.metrics.SamplesRead.WithLabelValues(dataset).Add(float64(s.Len()))
		a.metrics.SamplesMissing.WithLabelValues(dataset).Add(float64(s.Missing()))
	}
}

// derive evaluates the three parameter equations over the loaded series,
// following the campaign analysis step for step.
func derive(in *inputs) *domain.Report {
	u1 := in.windSpeed2m.Mean()
	u2 := in.windSpeed10m.Mean()
	ustar := in.frictionVelocity.Mean()

	salinity := in.salinity.Mean()
	density := in.density.Mean()

	tAll := in.atmosTempK.Mean()
	tWinter := in.atmosTempK.Window(domain.Winter).Mean()
	tSummer := in.atmosTempK.Window(domain.Summer).Mean()

	cAll := domain.HeatCapacity(salinity, tAll)
	cWinter := domain.HeatCapacity(salinity, tWinter)
	cSummer := domain.HeatCapacity(salinity, tSummer)

	correction := domain.HeatCapacityCorrectionSeries(in.surfaceTempC, salinity)

	return &domain.Report{
		RoughnessLength:    domain.Scalar(domain.RoughnessLength(u1, u2, ustar)),
		SurfaceTemperature: domain.MeansByPeriod(in.surfaceTempC),
		Salinity:           domain.MeansByPeriod(in.salinity),
		Density:            domain.MeansByPeriod(in.density),
		HeatCapacity: domain.SeasonalValues{
			Experiment: domain.Scalar(cAll),
			Winter:     domain.Scalar(cWinter),
			Summer:     domain.Scalar(cSummer),
		},
		VolumetricHeatCapacity: domain.SeasonalValues{
			Experiment: domain.Scalar(domain.VolumetricHeatCapacity(cAll, density)),
			Winter:     domain.Scalar(domain.VolumetricHeatCapacity(cWinter, density)),
			Summer:     domain.Scalar(domain.VolumetricHeatCapacity(cSummer, density)),
		},
		CorrectionTerm: domain.MeansByPeriod(correction),
		Albedo:         domain.MeansByPeriod(in.albedo),
	}
}
