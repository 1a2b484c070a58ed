package mocks

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"transaction-anomaly-system/internal/models"
)

// MockLedgerRepository является моком для storage.LedgerRepository интерфейса
type MockLedgerRepository struct {
	mock.Mock
}

// EnsureAccount мок для EnsureAccount
func (m *MockLedgerRepository) EnsureAccount(acc *models.Account) error {
	args := m.Called(acc)
	return args.Error(0)
}

// GetAccount мок для GetAccount
func (m *MockLedgerRepository) GetAccount(accountName string) (*models.Account, error) {
	args := m.Called(accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// GetBalance мок для GetBalance
func (m *MockLedgerRepository) GetBalance(accountName string) (decimal.Decimal, error) {
	args := m.Called(accountName)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// ApplyTransfer мок для ApplyTransfer
func (m *MockLedgerRepository) ApplyTransfer(monitoredAccount string, tx *models.Transaction, delta decimal.Decimal, alert *models.AnomalyAlert) (decimal.Decimal, error) {
	args := m.Called(monitoredAccount, tx, delta, alert)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// GetTransaction мок для GetTransaction
func (m *MockLedgerRepository) GetTransaction(transactionID string) (*models.Transaction, error) {
	args := m.Called(transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// GetAllTransactions мок для GetAllTransactions
func (m *MockLedgerRepository) GetAllTransactions(limit int) ([]*models.Transaction, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

// GetBalanceHistory мок для GetBalanceHistory
func (m *MockLedgerRepository) GetBalanceHistory(limit int) ([]*models.BalanceHistoryEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistoryEntry), args.Error(1)
}

// GetAllAlerts мок для GetAllAlerts
func (m *MockLedgerRepository) GetAllAlerts(limit int) ([]*models.AnomalyAlert, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AnomalyAlert), args.Error(1)
}

// ListAmounts мок для ListAmounts
func (m *MockLedgerRepository) ListAmounts() ([]float64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// CountTransactions мок для CountTransactions
func (m *MockLedgerRepository) CountTransactions() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// ClearLedger мок для ClearLedger
func (m *MockLedgerRepository) ClearLedger() error {
	args := m.Called()
	return args.Error(0)
}
