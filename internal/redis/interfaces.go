package redis

import (
	"github.com/shopspring/decimal"
)

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
// Реализуется типом Client
type ClientInterface interface {
	// IncrementSeverityStats увеличивает счетчик алертов по уровню серьезности
	IncrementSeverityStats(severity string) error

	// GetSeverityStats возвращает счетчики алертов по всем уровням серьезности
	GetSeverityStats() (map[string]int64, error)

	// IncrementAlertTypeStats увеличивает счетчик алертов по типу
	IncrementAlertTypeStats(alertType string) error

	// CacheBalance сохраняет снимок баланса счета в Redis
	CacheBalance(accountName string, balance decimal.Decimal) error

	// GetCachedBalance получает снимок баланса из Redis
	GetCachedBalance(accountName string) (decimal.Decimal, bool, error)

	// ClearMonitorData очищает статистику алертов и кэш балансов
	ClearMonitorData() error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
