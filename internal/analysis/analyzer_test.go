package analysis_test

import (
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/polarmet/icephys/internal/analysis"
	"github.com/polarmet/icephys/internal/config"
	"github.com/polarmet/icephys/internal/domain"
	"github.com/polarmet/icephys/internal/observability"
)

// writeFixtures lays down a minimal, hand-computable campaign dataset:
// one winter observation (Jan 15) and one summer observation (May 15).
func writeFixtures(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	met := write("met.csv", `timestamp,wind_speed_2m,wind_speed_10m
2015-01-15 12:00:00,5.0,7.0
2015-05-15 12:00:00,5.0,7.0
`)
	flux := write("flux.csv", `timestamp,friction_velocity
2015-01-15 12:00:00,0.3
2015-05-15 12:00:00,0.3
`)
	albedo := write("albedo.csv", `timestamp,surface_albedo_mean
2015-01-15 12:00:00,0.86
2015-05-15 12:00:00,0.80
`)
	cores := write("cores.json", `{
  "records": [
    {
      "properties": {"time": "2015-01-15T09:00:00Z", "surface_temperature": -20.0},
      "density": [900.0],
      "sample_top_cm": [0],
      "sample_bottom_cm": [10],
      "sea_ice_salinity": [4.0, 6.0]
    },
    {
      "properties": {"time": "2015-05-15T09:00:00Z", "surface_temperature": -5.0},
      "density": [880.0],
      "sample_top_cm": [0],
      "sample_bottom_cm": [10],
      "sea_ice_salinity": [6.0]
    }
  ]
}`)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "timestamp"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "surface_temperature_k"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "2015-01-15 12:00:00"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "253.15"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "2015-05-15 12:00:00"))
	require.NoError(t, f.SetCellValue(sheet, "B3", "268.15"))
	ts := filepath.Join(dir, "ts.xlsx")
	require.NoError(t, f.SaveAs(ts))

	return &config.Config{
		MetDataPath:     met,
		FluxDataPath:    flux,
		IceCoreDataPath: cores,
		AlbedoDataPath:  albedo,
		SurfaceTempPath: ts,
	}
}

func TestAnalyzer_Run(t *testing.T) {
	generatedAt := time.Date(2015, time.July, 1, 8, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(generatedAt))
	defer domain.SetClock(nil)

	cfg := writeFixtures(t)
	a := analysis.New(cfg, slog.Default(), observability.NewMetricsForTesting())

	require.Error(t, a.CheckReadiness(context.Background()), "not ready before the first run")
	assert.Nil(t, a.Report())

	report, err := a.Run(context.Background())
	require.NoError(t, err)

	// Roughness length from U1=5, U2=7, u*=0.3.
	wantZ0 := 8.0 / (math.Exp(0.4*7/0.3) - math.Exp(0.4*5/0.3))
	assert.InEpsilon(t, wantZ0, float64(report.RoughnessLength), 1e-12)

	// Salinity: per-core means 5.0 and 6.0, reduced over every sub-period.
	assert.InDelta(t, 5.5, float64(report.Salinity.Experiment), 1e-12)
	assert.InDelta(t, 5.0, float64(report.Salinity.Floe1), 1e-12)
	assert.InDelta(t, 5.0, float64(report.Salinity.Winter), 1e-12)
	assert.InDelta(t, 6.0, float64(report.Salinity.Floe3), 1e-12)
	assert.InDelta(t, 6.0, float64(report.Salinity.Summer), 1e-12)
	assert.False(t, report.Salinity.Floe2.IsDefined())
	assert.InDelta(t, 890.0, float64(report.Density.Experiment), 1e-12)

	// Ice surface temperature splits cleanly into winter and summer.
	assert.InDelta(t, -12.5, float64(report.SurfaceTemperature.Experiment), 1e-12)
	assert.InDelta(t, -20.0, float64(report.SurfaceTemperature.Winter), 1e-12)
	assert.InDelta(t, -5.0, float64(report.SurfaceTemperature.Summer), 1e-12)
	assert.False(t, report.SurfaceTemperature.Floe2.IsDefined())

	// Heat capacity at the atmospheric-derived mean temperatures.
	assert.InEpsilon(t, domain.HeatCapacity(5.5, 260.65), float64(report.HeatCapacity.Experiment), 1e-12)
	assert.InEpsilon(t, domain.HeatCapacity(5.5, 253.15), float64(report.HeatCapacity.Winter), 1e-12)
	assert.InEpsilon(t, domain.HeatCapacity(5.5, 268.15), float64(report.HeatCapacity.Summer), 1e-12)
	assert.Greater(t, float64(report.HeatCapacity.Winter), float64(report.HeatCapacity.Summer),
		"the colder winter temperature gives the larger capacity")

	assert.InEpsilon(t,
		domain.HeatCapacity(5.5, 253.15)*890.0,
		float64(report.VolumetricHeatCapacity.Winter), 1e-12)

	// Correction term follows the ice-core surface temperatures in Kelvin.
	wantCorr := (domain.HeatCapacityCorrection(5.5, 253.15) + domain.HeatCapacityCorrection(5.5, 268.15)) / 2
	assert.InEpsilon(t, wantCorr, float64(report.CorrectionTerm.Experiment), 1e-12)

	assert.InDelta(t, 0.83, float64(report.Albedo.Experiment), 1e-12)
	assert.InDelta(t, 0.86, float64(report.Albedo.Winter), 1e-12)
	assert.InDelta(t, 0.80, float64(report.Albedo.Floe3), 1e-12)

	assert.Equal(t, generatedAt, report.GeneratedAt)

	require.NoError(t, a.CheckReadiness(context.Background()))
	assert.Same(t, report, a.Report())
}

func TestAnalyzer_Run_MissingDataset(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.FluxDataPath = filepath.Join(t.TempDir(), "missing.csv")

	a := analysis.New(cfg, slog.Default(), observability.NewMetricsForTesting())
	_, err := a.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, a.Report())
}

func TestAnalyzer_Run_Cancelled(t *testing.T) {
	cfg := writeFixtures(t)
	a := analysis.New(cfg, slog.Default(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
