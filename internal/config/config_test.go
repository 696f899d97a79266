package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/nice_met.csv", cfg.MetDataPath)
	assert.Equal(t, "data/nice_flux.csv", cfg.FluxDataPath)
	assert.Equal(t, "data/nice_ice_core_physics.json", cfg.IceCoreDataPath)
	assert.Equal(t, "data/nice_albedo.csv", cfg.AlbedoDataPath)
	assert.Equal(t, "data/nice_surface_temp.xlsx", cfg.SurfaceTempPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.ServeAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "derived-surface-parameters", cfg.KafkaTopic)
	assert.Empty(t, cfg.ArchivePath)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_MET", "/datasets/met_v2.csv")
	t.Setenv("DATA_FLUX", "/datasets/seb_v1.csv")
	t.Setenv("DATA_ICE_CORES", "/datasets/cores.json")
	t.Setenv("DATA_ALBEDO", "/datasets/albedo.csv")
	t.Setenv("DATA_SURFACE_TEMP", "/datasets/Ts.xlsx")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SERVE_ADDR", ":8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "surface-params")
	t.Setenv("ARCHIVE_PATH", "/var/lib/icephys/archive.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/datasets/met_v2.csv", cfg.MetDataPath)
	assert.Equal(t, "/datasets/seb_v1.csv", cfg.FluxDataPath)
	assert.Equal(t, "/datasets/cores.json", cfg.IceCoreDataPath)
	assert.Equal(t, "/datasets/albedo.csv", cfg.AlbedoDataPath)
	assert.Equal(t, "/datasets/Ts.xlsx", cfg.SurfaceTempPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.ServeAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "surface-params", cfg.KafkaTopic)
	assert.Equal(t, "/var/lib/icephys/archive.db", cfg.ArchivePath)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-5s")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
