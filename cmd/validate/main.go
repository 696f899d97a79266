// Command validate performs integrity checks over a campaign dataset
// directory before an analysis run. It verifies dataset shape, physical
// value ranges, cross-dataset consistency, and that the derived parameters
// recompute to sane values.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/polarmet/icephys/internal/domain"
	"github.com/polarmet/icephys/internal/loader"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "", "directory containing campaign dataset files")
	flag.Parse()

	if *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataDir); code != 0 {
		os.Exit(code)
	}
}

// datasets holds every loaded series for cross-phase checks.
type datasets struct {
	windSpeed2m      domain.Series
	windSpeed10m     domain.Series
	frictionVelocity domain.Series
	cores            []domain.CoreRecord
	surfaceTempC     domain.Series
	salinity         domain.Series
	density          domain.Series
	atmosTempK       domain.Series
	albedo           domain.Series
}

func run(dataDir string) int {
	fmt.Println("=== Campaign Dataset Integrity Validation ===")
	fmt.Println()

	ds, err := loadAll(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateShape(ds),
		validateRanges(ds),
		validateConsistency(ds),
		validateDerivation(ds),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-46s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d met, %d flux, %d ice cores, %d surface temp, %d albedo\n",
		ds.windSpeed2m.Len(), ds.frictionVelocity.Len(), len(ds.cores),
		ds.atmosTempK.Len(), ds.albedo.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadAll(dir string) (*datasets, error) {
	var ds datasets

	met, err := loader.Columns(filepath.Join(dir, "nice_met.csv"),
		"timestamp", "wind_speed_2m", "wind_speed_10m")
	if err != nil {
		return nil, fmt.Errorf("load met: %w", err)
	}
	ds.windSpeed2m = met["wind_speed_2m"]
	ds.windSpeed10m = met["wind_speed_10m"]

	flux, err := loader.Columns(filepath.Join(dir, "nice_flux.csv"),
		"timestamp", "friction_velocity")
	if err != nil {
		return nil, fmt.Errorf("load flux: %w", err)
	}
	ds.frictionVelocity = flux["friction_velocity"]

	ds.cores, err = loader.IceCores(filepath.Join(dir, "nice_ice_core_physics.json"))
	if err != nil {
		return nil, fmt.Errorf("load ice cores: %w", err)
	}
	ds.surfaceTempC = domain.SurfaceTemperatureSeries(ds.cores)
	ds.salinity = domain.SalinitySeries(ds.cores)
	ds.density = domain.DensitySeries(ds.cores)

	ds.atmosTempK, err = loader.SurfaceTemperature(filepath.Join(dir, "nice_surface_temp.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("load surface temp: %w", err)
	}

	albedo, err := loader.Columns(filepath.Join(dir, "nice_albedo.csv"),
		"timestamp", "surface_albedo_mean")
	if err != nil {
		return nil, fmt.Errorf("load albedo: %w", err)
	}
	ds.albedo = albedo["surface_albedo_mean"]

	return &ds, nil
}

// ── Phase 1: Dataset Shape ──

func validateShape(ds *datasets) *phase {
	p := &phase{name: "Phase 1: Dataset Shape"}

	series := map[string]domain.Series{
		"wind_speed_2m":       ds.windSpeed2m,
		"wind_speed_10m":      ds.windSpeed10m,
		"friction_velocity":   ds.frictionVelocity,
		"surface_temperature": ds.atmosTempK,
		"surface_albedo_mean": ds.albedo,
	}
	for name, s := range series {
		if s.Len() == 0 {
			p.errorf("%s: no observation rows", name)
		}
	}

	if len(ds.cores) == 0 {
		p.errorf("ice cores: no sampling events")
	}
	for i, rec := range ds.cores {
		if len(rec.Density) > 0 &&
			(len(rec.SampleTopCm) != len(rec.Density) || len(rec.SampleBottomCm) != len(rec.Density)) {
			p.errorf("ice core %d: density has %d samples but depth bounds have %d/%d",
				i, len(rec.Density), len(rec.SampleTopCm), len(rec.SampleBottomCm))
		}
	}
	return p
}

// ── Phase 2: Physical Ranges ──

func validateRanges(ds *datasets) *phase {
	p := &phase{name: "Phase 2: Physical Ranges"}

	checkRange(p, ds.windSpeed2m, 0, 50, "m/s")
	checkRange(p, ds.windSpeed10m, 0, 60, "m/s")
	checkRange(p, ds.frictionVelocity, 0, 2, "m/s")
	checkRange(p, ds.surfaceTempC, -60, 5, "°C")
	checkRange(p, ds.salinity, 0, 35, "g/kg")
	checkRange(p, ds.density, 600, 1100, "kg/m³")
	checkRange(p, ds.atmosTempK, 180, 300, "K")
	checkRange(p, ds.albedo, 0, 1, "")

	return p
}

// checkRange flags finite values outside [min, max]. NaN means missing and
// is never an error here.
func checkRange(p *phase, s domain.Series, min, max float64, unit string) {
	for _, smp := range s.Samples {
		for _, v := range smp.Values {
			if math.IsNaN(v) {
				continue
			}
			if v < min || v > max {
				p.errorf("%s at %s: %g outside [%g, %g] %s",
					s.Name, smp.Time.Format(time.RFC3339), v, min, max, unit)
			}
		}
	}
}

// ── Phase 3: Cross-Dataset Consistency ──

func validateConsistency(ds *datasets) *phase {
	p := &phase{name: "Phase 3: Cross-Dataset Consistency"}

	checkWithinCampaign(p, ds.windSpeed2m)
	checkWithinCampaign(p, ds.frictionVelocity)
	checkWithinCampaign(p, ds.surfaceTempC)
	checkWithinCampaign(p, ds.atmosTempK)
	checkWithinCampaign(p, ds.albedo)

	for _, s := range []domain.Series{ds.atmosTempK, ds.albedo} {
		if s.Window(domain.Winter).Len() == 0 {
			p.errorf("%s: no samples in the winter sub-period", s.Name)
		}
		if s.Window(domain.Summer).Len() == 0 {
			p.errorf("%s: no samples in the summer sub-period", s.Name)
		}
	}
	return p
}

func checkWithinCampaign(p *phase, s domain.Series) {
	for _, smp := range s.Samples {
		if !domain.Experiment.Contains(smp.Time) {
			p.errorf("%s: sample at %s outside the campaign period",
				s.Name, smp.Time.Format(time.RFC3339))
		}
	}
}

// ── Phase 4: Recomputation Sanity ──

func validateDerivation(ds *datasets) *phase {
	p := &phase{name: "Phase 4: Recomputation Sanity"}

	u1 := ds.windSpeed2m.Mean()
	u2 := ds.windSpeed10m.Mean()
	ustar := ds.frictionVelocity.Mean()
	z0 := domain.RoughnessLength(u1, u2, ustar)
	if math.IsNaN(z0) || math.IsInf(z0, 0) {
		p.errorf("roughness length is not finite (u1=%g u2=%g u*=%g)", u1, u2, ustar)
	} else if z0 <= 0 {
		p.errorf("roughness length %g is not positive; expected u2 > u1", z0)
	}

	salinity := ds.salinity.Mean()
	tWinter := ds.atmosTempK.Window(domain.Winter).Mean()
	tSummer := ds.atmosTempK.Window(domain.Summer).Mean()
	cWinter := domain.HeatCapacity(salinity, tWinter)
	cSummer := domain.HeatCapacity(salinity, tSummer)

	if cWinter < domain.FreshIceHeatCapacity || cSummer < domain.FreshIceHeatCapacity {
		p.errorf("heat capacity below fresh-ice baseline (winter=%g summer=%g)", cWinter, cSummer)
	}
	if tWinter < tSummer && cWinter < cSummer {
		p.errorf("colder winter (%.2f K vs %.2f K) should give the larger heat capacity (winter=%g summer=%g)",
			tWinter, tSummer, cWinter, cSummer)
	}

	if aw, as := ds.albedo.Window(domain.Winter).Mean(), ds.albedo.Window(domain.Summer).Mean(); aw < as {
		p.errorf("winter albedo %.3f below summer albedo %.3f; melt season should lower it", aw, as)
	}
	return p
}
