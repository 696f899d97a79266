package domain

import "math"

// Physical constants used by the derived-parameter equations.
const (
	// VonKarman is the von Kármán constant of the logarithmic wind profile.
	VonKarman = 0.4

	// LowerSensorHeight and UpperSensorHeight are the met-tower wind sensor
	// heights in meters.
	LowerSensorHeight = 2.0
	UpperSensorHeight = 10.0

	// FreshIceHeatCapacity is c0, the heat capacity of fresh ice, J/(kg K).
	FreshIceHeatCapacity = 2054.0

	// LatentHeatFusion is Li, the latent heat of fusion of ice, J/kg.
	LatentHeatFusion = 3.340e5

	// OceanFreezingTempConst is μ, the ocean freezing temperature constant,
	// °C per ppt of salinity.
	OceanFreezingTempConst = 0.054

	// KelvinOffset converts °C to K.
	KelvinOffset = 273.15
)

// RoughnessLength computes the aerodynamic roughness length z0 in meters from
// the mean wind speeds at 2 m and 10 m and the mean friction velocity,
// assuming a logarithmic wind profile:
//
//	z0 = (z2-z1) / (exp(k·U2/u*) - exp(k·U1/u*))
//
// A near-zero friction velocity or equal wind speeds produce Inf or NaN,
// which propagate into the report unguarded.
func RoughnessLength(u1, u2, ustar float64) float64 {
	return (UpperSensorHeight - LowerSensorHeight) /
		(math.Exp(VonKarman*u2/ustar) - math.Exp(VonKarman*u1/ustar))
}

// HeatCapacity computes the sea-ice specific heat capacity
// c(T,S) = c0 + Li·μ·S/T² in J/(kg K). Salinity is in ppt (g/kg),
// temperature in Kelvin.
func HeatCapacity(salinity, tempK float64) float64 {
	return FreshIceHeatCapacity + HeatCapacityCorrection(salinity, tempK)
}

// HeatCapacityCorrection is the brine correction term Li·μ·S/T² in J/(kg K).
// It scales with 1/T², so it dominates c(T,S) near the freezing point.
func HeatCapacityCorrection(salinity, tempK float64) float64 {
	return LatentHeatFusion * OceanFreezingTempConst * salinity / (tempK * tempK)
}

// VolumetricHeatCapacity converts a per-mass heat capacity in J/(kg K) to the
// volumetric form in J/(m³ K) using the mean ice density in kg/m³.
func VolumetricHeatCapacity(c, density float64) float64 {
	return c * density
}

// HeatCapacityCorrectionSeries evaluates the brine correction term over an
// ice surface temperature series given in °C. Each row is reduced to its mean
// first; rows with no valid temperature are dropped.
func HeatCapacityCorrectionSeries(surfaceTempC Series, salinity float64) Series {
	out := Series{Name: "heat_capacity_correction"}
	for _, smp := range surfaceTempC.Samples {
		t := nanMean(smp.Values)
		if math.IsNaN(t) {
			continue
		}
		out.Append(smp.Time, HeatCapacityCorrection(salinity, t+KelvinOffset))
	}
	return out
}
