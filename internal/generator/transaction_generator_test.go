package generator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transaction-anomaly-system/internal/config"
	storagemocks "transaction-anomaly-system/internal/storage/mocks"
)

const testMonitoredAccount = "TechCorp Solutions"

var testRoster = []string{
	"SilverPeak Solutions", "NovaEdge Technologies", "BlueHaven Enterprises",
}

func testSimulationConfig(rate float64, seed int64) *config.SimulationConfig {
	return &config.SimulationConfig{
		MonitoredAccount: testMonitoredAccount,
		Counterparties:   testRoster,
		AnomalyRate:      rate,
		Seed:             seed,
	}
}

func TestNewTransactionGenerator(t *testing.T) {
	mockRepo := new(storagemocks.MockLedgerRepository)

	gen := NewTransactionGenerator(testSimulationConfig(0.3, 42), mockRepo)
	require.NotNil(t, gen)
	assert.NotNil(t, gen.rand)
	assert.Equal(t, testMonitoredAccount, gen.monitored)
	assert.Equal(t, 0.3, gen.rate)
}

func TestTransactionGenerator_Generate_BasicFields(t *testing.T) {
	mockRepo := new(storagemocks.MockLedgerRepository)
	mockRepo.On("GetBalance", testMonitoredAccount).Return(decimal.NewFromInt(5000000), nil)

	gen := NewTransactionGenerator(testSimulationConfig(0, 42), mockRepo)

	for i := 0; i < 50; i++ {
		tx, err := gen.Generate()
		require.NoError(t, err)
		require.NotNil(t, tx)

		assert.NotEmpty(t, tx.TransactionID)
		assert.False(t, tx.Timestamp.IsZero())

		// Без инжекции: ровно одна сторона — наблюдаемый счет,
		// другая — контрагент из ростера
		if tx.Sender == testMonitoredAccount {
			assert.Contains(t, testRoster, tx.Receiver)
		} else {
			assert.Contains(t, testRoster, tx.Sender)
			assert.Equal(t, testMonitoredAccount, tx.Receiver)
		}
		assert.NotEqual(t, tx.Sender, tx.Receiver)
	}
}

func TestTransactionGenerator_Generate_NormalAmountRange(t *testing.T) {
	mockRepo := new(storagemocks.MockLedgerRepository)
	mockRepo.On("GetBalance", testMonitoredAccount).Return(decimal.NewFromInt(5000000), nil)

	gen := NewTransactionGenerator(testSimulationConfig(0, 42), mockRepo)

	for i := 0; i < 100; i++ {
		tx, err := gen.Generate()
		require.NoError(t, err)
		require.NotNil(t, tx)

		amount := tx.Amount.InexactFloat64()
		assert.GreaterOrEqual(t, amount, normalAmountMin)
		assert.Less(t, amount, normalAmountMax)

		// Суммы округлены до 2 знаков
		assert.True(t, tx.Amount.Equal(tx.Amount.Round(2)))
	}
}

func TestTransactionGenerator_Generate_Deterministic(t *testing.T) {
	balance := decimal.NewFromInt(5000000)

	firstRepo := new(storagemocks.MockLedgerRepository)
	firstRepo.On("GetBalance", testMonitoredAccount).Return(balance, nil)
	first := NewTransactionGenerator(testSimulationConfig(0.3, 42), firstRepo)

	secondRepo := new(storagemocks.MockLedgerRepository)
	secondRepo.On("GetBalance", testMonitoredAccount).Return(balance, nil)
	second := NewTransactionGenerator(testSimulationConfig(0.3, 42), secondRepo)

	// Одинаковый seed дает одинаковую последовательность кандидатов
	for i := 0; i < 20; i++ {
		firstTx, err := first.Generate()
		require.NoError(t, err)
		secondTx, err := second.Generate()
		require.NoError(t, err)

		require.NotNil(t, firstTx)
		require.NotNil(t, secondTx)
		assert.True(t, firstTx.Amount.Equal(secondTx.Amount))
		assert.Equal(t, firstTx.Sender, secondTx.Sender)
		assert.Equal(t, firstTx.Receiver, secondTx.Receiver)
	}
}

func TestTransactionGenerator_Generate_InsufficientBalance(t *testing.T) {
	mockRepo := new(storagemocks.MockLedgerRepository)
	mockRepo.On("GetBalance", testMonitoredAccount).Return(decimal.Zero, nil)

	gen := NewTransactionGenerator(testSimulationConfig(0, 42), mockRepo)

	// С нулевым балансом каждый исходящий кандидат пропускается
	skipped := 0
	for i := 0; i < 50; i++ {
		tx, err := gen.Generate()
		require.NoError(t, err)
		if tx == nil {
			skipped++
		} else {
			// Прошли только входящие переводы
			assert.Equal(t, testMonitoredAccount, tx.Receiver)
		}
	}
	assert.Greater(t, skipped, 0)
}

func TestTransactionGenerator_Generate_BalanceError(t *testing.T) {
	mockRepo := new(storagemocks.MockLedgerRepository)
	mockRepo.On("GetBalance", testMonitoredAccount).Return(decimal.Zero, assert.AnError)

	gen := NewTransactionGenerator(testSimulationConfig(0, 42), mockRepo)

	// Рано или поздно выпадет исходящий кандидат и ошибка баланса всплывет
	var sawError bool
	for i := 0; i < 50; i++ {
		_, err := gen.Generate()
		if err != nil {
			sawError = true
			break
		}
	}
	assert.True(t, sawError)
}

func TestTransactionGenerator_Generate_FullInjectionRate(t *testing.T) {
	mockRepo := new(storagemocks.MockLedgerRepository)
	mockRepo.On("GetBalance", testMonitoredAccount).Return(decimal.NewFromInt(5000000), nil)

	gen := NewTransactionGenerator(testSimulationConfig(1.0, 42), mockRepo)

	// При rate=1 каждый кандидат несет инжектированную аномалию:
	// крупную сумму или перевод самому себе
	for i := 0; i < 50; i++ {
		tx, err := gen.Generate()
		require.NoError(t, err)
		require.NotNil(t, tx)

		highAmount := tx.Amount.GreaterThanOrEqual(decimal.NewFromFloat(anomalyAmountMin))
		selfTransfer := tx.Sender == tx.Receiver
		assert.True(t, highAmount || selfTransfer,
			"injected candidate must be high amount or self-transfer")
	}
}

func TestTransactionGenerator_Generate_ZeroRateNoInjection(t *testing.T) {
	mockRepo := new(storagemocks.MockLedgerRepository)
	mockRepo.On("GetBalance", testMonitoredAccount).Return(decimal.NewFromInt(5000000), nil)

	gen := NewTransactionGenerator(testSimulationConfig(0, 42), mockRepo)

	for i := 0; i < 100; i++ {
		tx, err := gen.Generate()
		require.NoError(t, err)
		require.NotNil(t, tx)
		assert.NotEqual(t, tx.Sender, tx.Receiver)
		assert.True(t, tx.Amount.LessThan(decimal.NewFromFloat(normalAmountMax)))
	}
}
