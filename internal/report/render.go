// Package report renders the derived-parameter report as the plain-text
// summary printed to stdout.
package report

import (
	"fmt"
	"io"

	"github.com/polarmet/icephys/internal/domain"
)

// Render writes the summary in the order and units of the campaign analysis.
func Render(w io.Writer, r *domain.Report) {
	fmt.Fprintf(w, "Surface Roughness Length (m): %s\n", raw(r.RoughnessLength))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Ice Surface Temperature (c):")
	renderPeriods(w, r.SurfaceTemperature, fixed)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Ice Core Salinity (g/kg):")
	renderPeriods(w, r.Salinity, fixed)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Surface Heat Capacity (J/(kg K)):")
	renderSeasons(w, r.HeatCapacity)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Ice Density (kg/m3):")
	renderPeriods(w, r.Density, fixed)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Surface Heat Capacity (J/(m3 K)):")
	renderSeasons(w, r.VolumetricHeatCapacity)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Heat Capacity Correction Term (J/(kg K)):")
	renderPeriods(w, r.CorrectionTerm, sci)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Surface Albedo:")
	renderPeriods(w, r.Albedo, fixed)
}

func renderPeriods(w io.Writer, m domain.PeriodMeans, format func(domain.Scalar) string) {
	fmt.Fprintf(w, "  Experiment Mean: %s\n", format(m.Experiment))
	fmt.Fprintf(w, "  Floe 1 Mean:     %s\n", format(m.Floe1))
	fmt.Fprintf(w, "  Floe 2 Mean:     %s\n", format(m.Floe2))
	fmt.Fprintf(w, "  Floe 3 Mean:     %s\n", format(m.Floe3))
	fmt.Fprintf(w, "  Floe 4 Mean:     %s\n", format(m.Floe4))
	fmt.Fprintf(w, "  Winter Mean:     %s\n", format(m.Winter))
	fmt.Fprintf(w, "  Summer Mean:     %s\n", format(m.Summer))
}

func renderSeasons(w io.Writer, v domain.SeasonalValues) {
	fmt.Fprintf(w, "  Experiment: %s\n", sci(v.Experiment))
	fmt.Fprintf(w, "  Winter:     %s\n", sci(v.Winter))
	fmt.Fprintf(w, "  Summer:     %s\n", sci(v.Summer))
}

// raw formats a value with %g, keeping small magnitudes readable without
// forcing scientific notation.
func raw(v domain.Scalar) string {
	if !v.IsDefined() {
		return "undefined"
	}
	return fmt.Sprintf("%g", float64(v))
}

// fixed formats a value to two decimals, or "undefined" when no data
// survived filtering.
func fixed(v domain.Scalar) string {
	if !v.IsDefined() {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", float64(v))
}

// sci formats a value in scientific notation, matching the campaign
// analysis output for the heat capacities.
func sci(v domain.Scalar) string {
	if !v.IsDefined() {
		return "undefined"
	}
	return fmt.Sprintf("%e", float64(v))
}
