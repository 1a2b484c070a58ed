package sqlite

import (
	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/storage"
)

// Repository реализует интерфейс LedgerRepository для SQLite
type Repository struct {
	storage *SQLiteStorage
}

// NewRepository создает новый репозиторий SQLite
func NewRepository(storage *SQLiteStorage) storage.LedgerRepository {
	return &Repository{storage: storage}
}

// EnsureAccount создает счет, если его еще нет
func (r *Repository) EnsureAccount(acc *models.Account) error {
	return r.storage.EnsureAccount(acc)
}

// GetAccount получает счет по имени
func (r *Repository) GetAccount(accountName string) (*models.Account, error) {
	return r.storage.GetAccount(accountName)
}

// GetBalance возвращает текущий баланс счета
func (r *Repository) GetBalance(accountName string) (decimal.Decimal, error) {
	return r.storage.GetBalance(accountName)
}

// ApplyTransfer атомарно проводит перевод
func (r *Repository) ApplyTransfer(monitoredAccount string, tx *models.Transaction, delta decimal.Decimal, alert *models.AnomalyAlert) (decimal.Decimal, error) {
	return r.storage.ApplyTransfer(monitoredAccount, tx, delta, alert)
}

// GetTransaction получает транзакцию по transaction_id
func (r *Repository) GetTransaction(transactionID string) (*models.Transaction, error) {
	return r.storage.GetTransaction(transactionID)
}

// GetAllTransactions получает последние транзакции
func (r *Repository) GetAllTransactions(limit int) ([]*models.Transaction, error) {
	return r.storage.GetAllTransactions(limit)
}

// GetBalanceHistory получает последние записи истории баланса
func (r *Repository) GetBalanceHistory(limit int) ([]*models.BalanceHistoryEntry, error) {
	return r.storage.GetBalanceHistory(limit)
}

// GetAllAlerts получает последние алерты
func (r *Repository) GetAllAlerts(limit int) ([]*models.AnomalyAlert, error) {
	return r.storage.GetAllAlerts(limit)
}

// ListAmounts возвращает суммы всех сохраненных транзакций
func (r *Repository) ListAmounts() ([]float64, error) {
	return r.storage.ListAmounts()
}

// CountTransactions возвращает число сохраненных транзакций
func (r *Repository) CountTransactions() (int, error) {
	return r.storage.CountTransactions()
}

// ClearLedger удаляет все транзакции, историю баланса и алерты
func (r *Repository) ClearLedger() error {
	return r.storage.ClearLedger()
}
