package storage

import (
	"errors"

	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/models"
)

var (
	// ErrAccountNotFound возвращается при запросе баланса несуществующего счета
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateTransaction возвращается при коллизии transaction_id
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	// ErrInsufficientFunds возвращается, когда перевод увел бы баланс ниже нуля.
	// Вся единица персистенции при этом откатывается.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// LedgerRepository определяет интерфейс для работы с леджером в хранилище
type LedgerRepository interface {
	// EnsureAccount создает счет, если его еще нет; существующий счет не изменяется
	EnsureAccount(acc *models.Account) error

	// GetAccount получает счет по имени
	GetAccount(accountName string) (*models.Account, error)

	// GetBalance возвращает текущий баланс счета
	GetBalance(accountName string) (decimal.Decimal, error)

	// ApplyTransfer атомарно проводит перевод: применяет дельту к балансу
	// наблюдаемого счета, сохраняет транзакцию со снимком нового баланса,
	// добавляет запись истории баланса (при ненулевой дельте) и алерт (если задан).
	// Возвращает баланс наблюдаемого счета после проведения.
	ApplyTransfer(monitoredAccount string, tx *models.Transaction, delta decimal.Decimal, alert *models.AnomalyAlert) (decimal.Decimal, error)

	// GetTransaction получает транзакцию по transaction_id
	GetTransaction(transactionID string) (*models.Transaction, error)

	// GetAllTransactions получает последние транзакции
	GetAllTransactions(limit int) ([]*models.Transaction, error)

	// GetBalanceHistory получает последние записи истории баланса
	GetBalanceHistory(limit int) ([]*models.BalanceHistoryEntry, error)

	// GetAllAlerts получает последние алерты
	GetAllAlerts(limit int) ([]*models.AnomalyAlert, error)

	// ListAmounts возвращает суммы всех сохраненных транзакций для обучения модели
	ListAmounts() ([]float64, error)

	// CountTransactions возвращает число сохраненных транзакций
	CountTransactions() (int, error)

	// ClearLedger удаляет все транзакции, историю баланса и алерты
	ClearLedger() error
}
