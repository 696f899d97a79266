// Package sqlite archives derived parameters across runs in a local SQLite
// database, one row per parameter and period.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/polarmet/icephys/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS parameter_runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at TEXT NOT NULL,
	parameter    TEXT NOT NULL,
	period       TEXT NOT NULL,
	value        REAL,
	unit         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_parameter_runs_parameter
	ON parameter_runs (parameter, period);
`

const insertRow = `
INSERT INTO parameter_runs (generated_at, parameter, period, value, unit)
VALUES (:generated_at, :parameter, :period, :value, :unit)`

// Store persists derived parameters.
type Store struct {
	db *sqlx.DB
}

// Open opens (and if needed initializes) the archive database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// parameterRow is the flattened archive form of one derived value. Undefined
// values (NaN, Inf) are stored as NULL.
type parameterRow struct {
	GeneratedAt string          `db:"generated_at"`
	Parameter   string          `db:"parameter"`
	Period      string          `db:"period"`
	Value       sql.NullFloat64 `db:"value"`
	Unit        string          `db:"unit"`
}

// Archive writes every derived value of the report in one transaction.
func (s *Store) Archive(ctx context.Context, report *domain.Report) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, row := range flatten(report) {
		if _, err := tx.NamedExecContext(ctx, insertRow, row); err != nil {
			return fmt.Errorf("archive %s/%s: %w", row.Parameter, row.Period, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of archived parameter rows, mostly for tooling.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM parameter_runs`); err != nil {
		return 0, fmt.Errorf("count archive rows: %w", err)
	}
	return n, nil
}

func flatten(report *domain.Report) []parameterRow {
	generatedAt := report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z")

	row := func(parameter, period, unit string, v domain.Scalar) parameterRow {
		return parameterRow{
			GeneratedAt: generatedAt,
			Parameter:   parameter,
			Period:      period,
			Value:       sql.NullFloat64{Float64: float64(v), Valid: v.IsDefined()},
			Unit:        unit,
		}
	}

	rows := []parameterRow{
		row("roughness_length", "experiment", "m", report.RoughnessLength),
	}
	rows = append(rows, periodRows(row, "ice_surface_temperature", "c", report.SurfaceTemperature)...)
	rows = append(rows, periodRows(row, "ice_salinity", "ppt", report.Salinity)...)
	rows = append(rows, periodRows(row, "ice_density", "kg/m3", report.Density)...)
	rows = append(rows, seasonalRows(row, "heat_capacity", "J/(kg K)", report.HeatCapacity)...)
	rows = append(rows, seasonalRows(row, "volumetric_heat_capacity", "J/(m3 K)", report.VolumetricHeatCapacity)...)
	rows = append(rows, periodRows(row, "heat_capacity_correction", "J/(kg K)", report.CorrectionTerm)...)
	rows = append(rows, periodRows(row, "surface_albedo", "1", report.Albedo)...)
	return rows
}

type rowFunc func(parameter, period, unit string, v domain.Scalar) parameterRow

func periodRows(row rowFunc, parameter, unit string, m domain.PeriodMeans) []parameterRow {
	return []parameterRow{
		row(parameter, "experiment", unit, m.Experiment),
		row(parameter, "floe_1", unit, m.Floe1),
		row(parameter, "floe_2", unit, m.Floe2),
		row(parameter, "floe_3", unit, m.Floe3),
		row(parameter, "floe_4", unit, m.Floe4),
		row(parameter, "winter", unit, m.Winter),
		row(parameter, "summer", unit, m.Summer),
	}
}

func seasonalRows(row rowFunc, parameter, unit string, v domain.SeasonalValues) []parameterRow {
	return []parameterRow{
		row(parameter, "experiment", unit, v.Experiment),
		row(parameter, "winter", unit, v.Winter),
		row(parameter, "summer", unit, v.Summer),
	}
}
