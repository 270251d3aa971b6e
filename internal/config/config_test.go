package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every config variable so values from the caller's
// environment cannot leak into a test. Load treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
		"SIMULATION_DAYS", "SIMULATION_CACHE_SIZE",
		"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_SINK_TOPIC",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 365, cfg.SimulationDays)
	assert.Equal(t, 256, cfg.SimulationCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "sizing-results", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SIMULATION_DAYS", "30")
	t.Setenv("SIMULATION_CACHE_SIZE", "0")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30, cfg.SimulationDays)
	assert.Equal(t, 0, cfg.SimulationCacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidSimulationDays(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIMULATION_DAYS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIMULATION_DAYS")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIMULATION_CACHE_SIZE", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIMULATION_CACHE_SIZE")
}

func TestLoad_KafkaEnabledWithoutTopic(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_SINK_TOPIC", " ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_SINK_TOPIC")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
