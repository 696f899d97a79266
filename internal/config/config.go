package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all tool settings, populated from environment variables.
// Dataset locations are configuration rather than hardcoded paths so the same
// binary can run against the published datasets wherever they live.
type Config struct {
	// Campaign dataset locations.
	MetDataPath     string // meteorology CSV: wind_speed_2m, wind_speed_10m
	FluxDataPath    string // surface flux CSV: friction_velocity
	IceCoreDataPath string // ice-core physics JSON
	AlbedoDataPath  string // albedo CSV: surface_albedo_mean
	SurfaceTempPath string // atmospheric surface temperature XLSX, Kelvin

	LogLevel  string
	LogFormat string

	// ServeAddr keeps the HTTP report/metrics server running after the
	// analysis completes. Empty disables serving.
	ServeAddr       string
	ShutdownTimeout time.Duration

	// Kafka publication of the derived-parameter report (optional).
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// ArchivePath is a SQLite database that accumulates derived parameters
	// across runs. Empty disables archiving.
	ArchivePath string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		MetDataPath:     envOrDefault("DATA_MET", "data/nice_met.csv"),
		FluxDataPath:    envOrDefault("DATA_FLUX", "data/nice_flux.csv"),
		IceCoreDataPath: envOrDefault("DATA_ICE_CORES", "data/nice_ice_core_physics.json"),
		AlbedoDataPath:  envOrDefault("DATA_ALBEDO", "data/nice_albedo.csv"),
		SurfaceTempPath: envOrDefault("DATA_SURFACE_TEMP", "data/nice_surface_temp.xlsx"),

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		ServeAddr:       os.Getenv("SERVE_ADDR"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "derived-surface-parameters"),

		ArchivePath: os.Getenv("ARCHIVE_PATH"),
	}

	if cfg.MetDataPath == "" || cfg.FluxDataPath == "" || cfg.IceCoreDataPath == "" ||
		cfg.AlbedoDataPath == "" || cfg.SurfaceTempPath == "" {
		return nil, errors.New("all DATA_* paths must be non-empty")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
