package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "./data/ledger.db", cfg.DB.DBPath)

	assert.Equal(t, "./data/isolation_forest_model.json", cfg.Model.ArtifactPath)
	assert.Equal(t, 0.2, cfg.Model.Contamination)
	assert.Equal(t, int64(42), cfg.Model.Seed)

	assert.Equal(t, "TechCorp Solutions", cfg.Simulation.MonitoredAccount)
	assert.True(t, cfg.Simulation.StartingBalance.Equal(decimal.NewFromInt(5000000)))
	assert.Equal(t, 0.3, cfg.Simulation.AnomalyRate)
	assert.Equal(t, time.Second, cfg.Simulation.BatchInterval)
	assert.Equal(t, 5*time.Second, cfg.Simulation.DaemonInterval)
	assert.Equal(t, int64(0), cfg.Simulation.Seed)

	// Ростер контрагентов по умолчанию
	assert.Len(t, cfg.Simulation.Counterparties, 20)
	assert.Contains(t, cfg.Simulation.Counterparties, "SilverPeak Solutions")
	assert.NotContains(t, cfg.Simulation.Counterparties, "TechCorp Solutions")

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "ledger.anomaly.alerts", cfg.Kafka.AlertTopic)
	assert.Equal(t, "anomaly-monitor-group", cfg.Kafka.ConsumerGroupID)

	assert.Equal(t, 8082, cfg.Server.MonitorPort)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/custom.db")
	t.Setenv("MODEL_CONTAMINATION", "0.1")
	t.Setenv("MONITORED_ACCOUNT", "Acme Corp")
	t.Setenv("STARTING_BALANCE", "1000000.50")
	t.Setenv("ANOMALY_RATE", "0.5")
	t.Setenv("DAEMON_INTERVAL", "10s")
	t.Setenv("GENERATOR_SEED", "7")
	t.Setenv("MONITOR_SERVICE_PORT", "9090")

	cfg := Load()

	assert.Equal(t, "/tmp/custom.db", cfg.DB.DBPath)
	assert.Equal(t, 0.1, cfg.Model.Contamination)
	assert.Equal(t, "Acme Corp", cfg.Simulation.MonitoredAccount)
	assert.True(t, cfg.Simulation.StartingBalance.Equal(decimal.RequireFromString("1000000.50")))
	assert.Equal(t, 0.5, cfg.Simulation.AnomalyRate)
	assert.Equal(t, 10*time.Second, cfg.Simulation.DaemonInterval)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	assert.Equal(t, 9090, cfg.Server.MonitorPort)
}

func TestLoad_CounterpartiesList(t *testing.T) {
	t.Setenv("COUNTERPARTIES", "Alpha Corp, Beta LLC ,Gamma Inc")

	cfg := Load()

	assert.Equal(t, []string{"Alpha Corp", "Beta LLC", "Gamma Inc"}, cfg.Simulation.Counterparties)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("MODEL_CONTAMINATION", "not-a-number")
	t.Setenv("DAEMON_INTERVAL", "soon")
	t.Setenv("STARTING_BALANCE", "lots")
	t.Setenv("MONITOR_SERVICE_PORT", "eighty")

	cfg := Load()

	assert.Equal(t, 0.2, cfg.Model.Contamination)
	assert.Equal(t, 5*time.Second, cfg.Simulation.DaemonInterval)
	assert.True(t, cfg.Simulation.StartingBalance.Equal(decimal.NewFromInt(5000000)))
	assert.Equal(t, 8082, cfg.Server.MonitorPort)
}
