// Package domain models measurements from the N-ICE2015 Arctic drift
// campaign and derives sea-ice surface parameters from them.
//
// # Data Sources
//
// The campaign published several observational datasets:
//
//	Meteorology:  wind speed at 2 m and 10 m above the ice surface.
//	Surface flux: friction velocity (u*) from eddy-covariance towers.
//	Ice cores:    per-sampling-event records with depth-resolved density
//	              and salinity plus a scalar surface temperature (°C).
//	Albedo:       daily surface albedo fraction in [0,1].
//	Atmosphere:   surface temperature derived from atmospheric
//	              measurements, in Kelvin.
//
// Ice-core records have a sparse schema: any depth-resolved field may be
// absent from a given record, and individual depth samples may be null.
// Missing values are excluded from every aggregation, never treated as zero.
//
// # Campaign Periods
//
// Observations were collected while the ship was moored to four successive
// ice floes between January and June 2015. Summary statistics are reported
// for the whole experiment, for each floe, and for winter and summer
// sub-periods. The period boundaries are the literal dates used in the
// campaign analysis, inclusive of both boundary dates; see campaign.go.
//
// # Derived Parameters
//
// Three closed-form equations are evaluated over the aggregated series:
//
//	Roughness length:  z0 = (z2-z1) / (exp(k·U2/u*) - exp(k·U1/u*))
//	Heat capacity:     c(T,S) = c0 + Li·μ·S/T²  (per mass, J/(kg K))
//	Volumetric form:   c(T,S) · ρ               (J/(m³ K))
//
// The heat capacity is evaluated three times: at the experiment-mean, the
// winter-mean, and the summer-mean surface temperature. The brine correction
// term Li·μ·S/T² is also reported on its own, since it dominates the result
// at low temperatures.
package domain
