package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transaction-anomaly-system/internal/config"
	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/storage"
	"transaction-anomaly-system/internal/storage/sqlite"
)

func newTestLedger(t *testing.T) storage.LedgerRepository {
	t.Helper()

	cfg := &config.Config{
		DB: config.DBConfig{
			DBPath: filepath.Join(t.TempDir(), "test_ledger.db"),
		},
	}

	conn, err := sqlite.NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	repo := sqlite.NewRepository(conn)
	require.NoError(t, repo.EnsureAccount(&models.Account{
		AccountName:   testMonitoredAccount,
		Balance:       decimal.NewFromInt(5000000),
		AccountType:   "Current Account",
		AccountNumber: "1234567890",
	}))

	return repo
}

// Сквозной сценарий: аномальный исходящий перевод проходит через процессор
// и оставляет в леджере согласованные транзакцию, историю и алерт
func TestTransactionProcessor_Process_EndToEnd(t *testing.T) {
	repo := newTestLedger(t)
	processor := NewTransactionProcessor(repo, &stubScorer{anomaly: true, score: -0.18}, testMonitoredAccount)

	tx := &models.Transaction{
		TransactionID: "TXN-E2E-001",
		Timestamp:     time.Now(),
		Amount:        decimal.NewFromInt(300000),
		Sender:        testMonitoredAccount,
		Receiver:      "SilverPeak Solutions",
	}

	processed, err := processor.Process(tx)
	require.NoError(t, err)
	require.NotNil(t, processed)

	assert.True(t, processed.IsAnomaly)
	assert.True(t, processed.Balance.Equal(decimal.NewFromInt(4700000)))

	balance, err := repo.GetBalance(testMonitoredAccount)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(4700000)))

	history, err := repo.GetBalanceHistory(10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].NewBalance.Equal(balance))

	alerts, err := repo.GetAllAlerts(10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertTypeLargeAmount, alerts[0].AlertType)
	assert.Equal(t, models.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, "TXN-E2E-001", alerts[0].TransactionID)
}

// Инжектированная крупная сумма может превысить баланс: проведение
// останавливает ее атомарной проверкой, леджер остается нетронутым
func TestTransactionProcessor_Process_EndToEnd_OverdraftSkipped(t *testing.T) {
	repo := newTestLedger(t)
	processor := NewTransactionProcessor(repo, &stubScorer{anomaly: true, score: -0.25}, testMonitoredAccount)

	tx := &models.Transaction{
		TransactionID: "TXN-E2E-002",
		Timestamp:     time.Now(),
		Amount:        decimal.NewFromInt(6000000),
		Sender:        testMonitoredAccount,
		Receiver:      "SilverPeak Solutions",
	}

	processed, err := processor.Process(tx)
	require.NoError(t, err)
	assert.Nil(t, processed)

	balance, err := repo.GetBalance(testMonitoredAccount)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(5000000)))

	count, err := repo.CountTransactions()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	alerts, err := repo.GetAllAlerts(10)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
