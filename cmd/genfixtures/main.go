// Command genfixtures writes deterministic synthetic campaign datasets in the
// formats the analysis tool consumes: meteorology, flux, and albedo CSVs, an
// ice-core physics JSON, and a surface-temperature spreadsheet. The fixtures
// follow the real datasets' seasonal shape (cold winter, warming spring,
// falling albedo) so the validate command's range checks hold.
//
// Usage:
//
//	go run ./cmd/genfixtures -out data
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	campaignStart = time.Date(2015, time.January, 1, 12, 0, 0, 0, time.UTC)
	campaignEnd   = time.Date(2015, time.June, 21, 12, 0, 0, 0, time.UTC)
)

const timestampLayout = "2006-01-02 15:04:05"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data", "output directory for fixture datasets")
	seed := flag.Int64("seed", 1, "random seed; fixed default keeps fixtures reproducible")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	rng := rand.New(rand.NewSource(*seed))

	steps := []struct {
		name  string
		write func(dir string, rng *rand.Rand) error
	}{
		{"nice_met.csv", writeMet},
		{"nice_flux.csv", writeFlux},
		{"nice_albedo.csv", writeAlbedo},
		{"nice_ice_core_physics.json", writeIceCores},
		{"nice_surface_temp.xlsx", writeSurfaceTemp},
	}
	for _, step := range steps {
		if err := step.write(*out, rng); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		log.Printf("wrote %s", filepath.Join(*out, step.name))
	}
	return nil
}

// fraction maps a timestamp to its position in the campaign, 0 at the start
// and 1 at the end.
func fraction(t time.Time) float64 {
	return t.Sub(campaignStart).Hours() / campaignEnd.Sub(campaignStart).Hours()
}

// surfaceTempC models the seasonal ice surface temperature: around -28 °C in
// January warming to a few degrees below zero by late June.
func surfaceTempC(t time.Time, rng *rand.Rand) float64 {
	return -28 + 25*fraction(t) + 2*rng.NormFloat64()
}

func eachDay(fn func(t time.Time)) {
	for t := campaignStart; !t.After(campaignEnd); t = t.AddDate(0, 0, 1) {
		fn(t)
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeMet(dir string, rng *rand.Rand) error {
	var rows [][]string
	day := 0
	eachDay(func(t time.Time) {
		day++
		u2 := 4 + 5*rng.Float64()
		u10 := u2 * (1.15 + 0.1*rng.Float64())
		row := []string{
			t.Format(timestampLayout),
			fmt.Sprintf("%.2f", u2),
			fmt.Sprintf("%.2f", u10),
		}
		// Sensor dropouts: leave occasional cells empty, never zero.
		if day%23 == 0 {
			row[1] = ""
		}
		rows = append(rows, row)
	})
	return writeCSV(filepath.Join(dir, "nice_met.csv"),
		[]string{"timestamp", "wind_speed_2m", "wind_speed_10m"}, rows)
}

func writeFlux(dir string, rng *rand.Rand) error {
	var rows [][]string
	eachDay(func(t time.Time) {
		ustar := 0.2 + 0.15*rng.Float64()
		rows = append(rows, []string{
			t.Format(timestampLayout),
			fmt.Sprintf("%.3f", ustar),
		})
	})
	return writeCSV(filepath.Join(dir, "nice_flux.csv"),
		[]string{"timestamp", "friction_velocity"}, rows)
}

func writeAlbedo(dir string, rng *rand.Rand) error {
	var rows [][]string
	eachDay(func(t time.Time) {
		albedo := 0.86 + 0.01*rng.NormFloat64()
		if f := fraction(t); f > 0.55 {
			// Melt season: albedo declines through spring.
			albedo -= 0.18 * (f - 0.55) / 0.45
		}
		if albedo > 1 {
			albedo = 1
		}
		if albedo < 0 {
			albedo = 0
		}
		rows = append(rows, []string{
			t.Format(timestampLayout),
			fmt.Sprintf("%.3f", albedo),
		})
	})
	return writeCSV(filepath.Join(dir, "nice_albedo.csv"),
		[]string{"timestamp", "surface_albedo_mean"}, rows)
}

// iceCoreRecord mirrors the published ice-core physics JSON schema.
type iceCoreRecord struct {
	Properties struct {
		Time               string   `json:"time"`
		SurfaceTemperature *float64 `json:"surface_temperature,omitempty"`
	} `json:"properties"`
	Density        []*float64 `json:"density,omitempty"`
	SampleTopCm    []*float64 `json:"sample_top_cm,omitempty"`
	SampleBottomCm []*float64 `json:"sample_bottom_cm,omitempty"`
	Salinity       []*float64 `json:"sea_ice_salinity,omitempty"`
}

func writeIceCores(dir string, rng *rand.Rand) error {
	var records []iceCoreRecord
	for t := campaignStart; !t.After(campaignEnd); t = t.AddDate(0, 0, 7) {
		var rec iceCoreRecord
		rec.Properties.Time = t.UTC().Format("2006-01-02T15:04:05Z")

		st := surfaceTempC(t, rng)
		rec.Properties.SurfaceTemperature = &st

		// Depth-resolved samples, 10 cm slices. The schema is sparse:
		// every fourth core lacks density, every fifth lacks salinity,
		// and individual samples are occasionally null.
		depths := 3 + rng.Intn(3)
		if len(records)%4 != 3 {
			for d := 0; d < depths; d++ {
				top := float64(d * 10)
				bottom := top + 10
				rec.SampleTopCm = append(rec.SampleTopCm, ptr(top))
				rec.SampleBottomCm = append(rec.SampleBottomCm, ptr(bottom))
				if rng.Float64() < 0.1 {
					rec.Density = append(rec.Density, nil)
				} else {
					rec.Density = append(rec.Density, ptr(870+40*rng.Float64()))
				}
			}
		}
		if len(records)%5 != 4 {
			for d := 0; d < depths; d++ {
				if rng.Float64() < 0.1 {
					rec.Salinity = append(rec.Salinity, nil)
				} else {
					rec.Salinity = append(rec.Salinity, ptr(3+4*rng.Float64()))
				}
			}
		}
		records = append(records, rec)
	}

	payload := struct {
		Records []iceCoreRecord `json:"records"`
	}{Records: records}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "nice_ice_core_physics.json"), data, 0o644)
}

func writeSurfaceTemp(dir string, rng *rand.Rand) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "timestamp"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "surface_temperature_k"); err != nil {
		return err
	}

	row := 2
	var writeErr error
	eachDay(func(t time.Time) {
		if writeErr != nil {
			return
		}
		kelvin := surfaceTempC(t, rng) + 273.15
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.Format(timestampLayout)); err != nil {
			writeErr = err
			return
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%.2f", kelvin)); err != nil {
			writeErr = err
			return
		}
		row++
	})
	if writeErr != nil {
		return writeErr
	}
	return f.SaveAs(filepath.Join(dir, "nice_surface_temp.xlsx"))
}

func ptr(v float64) *float64 { return &v }
