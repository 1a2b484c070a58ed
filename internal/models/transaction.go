package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы алертов об аномалиях
const (
	AlertTypeLargeAmount     = "LARGE_AMOUNT"
	AlertTypeSelfTransfer    = "SELF_TRANSFER"
	AlertTypeAnomalyDetected = "ANOMALY_DETECTED"
)

// Уровни серьезности алертов
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
)

// Account представляет счет компании в леджере.
// Баланс ведется только для наблюдаемого счета, контрагенты хранятся без баланса.
type Account struct {
	AccountName   string          `json:"account_name" db:"account_name"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	AccountType   string          `json:"account_type" db:"account_type"`
	AccountNumber string          `json:"account_number" db:"account_number"`
}

// Transaction представляет денежный перевод между наблюдаемым счетом и контрагентом.
// Запись неизменяема после создания; Balance — снимок баланса наблюдаемого счета
// сразу после проведения перевода.
type Transaction struct {
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp" db:"timestamp"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Sender        string          `json:"sender" db:"sender"`
	Receiver      string          `json:"receiver" db:"receiver"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	IsAnomaly     bool            `json:"is_anomaly" db:"is_anomaly"`
	AnomalyScore  float64         `json:"anomaly_score" db:"anomaly_score"`
}

// BalanceHistoryEntry представляет изменение баланса наблюдаемого счета.
// Ровно одна запись на каждую транзакцию, затрагивающую наблюдаемый счет.
type BalanceHistoryEntry struct {
	ID            int64           `json:"id" db:"id"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	Timestamp     time.Time       `json:"timestamp" db:"timestamp"`
	ChangeAmount  decimal.Decimal `json:"change_amount" db:"change_amount"`
	NewBalance    decimal.Decimal `json:"new_balance" db:"new_balance"`
}

// AnomalyAlert представляет алерт по аномальной транзакции.
// Создается только когда модель пометила транзакцию как аномальную.
type AnomalyAlert struct {
	ID            int64           `json:"id" db:"id"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	AlertType     string          `json:"alert_type" db:"alert_type"`
	Severity      string          `json:"severity" db:"severity"`
	Title         string          `json:"title" db:"title"`
	Description   string          `json:"description" db:"description"`
	AnomalyScore  float64         `json:"anomaly_score" db:"anomaly_score"`
	CurrentValue  decimal.Decimal `json:"current_value" db:"current_value"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// AlertEvent представляет событие алерта в Kafka
type AlertEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      AlertEventData `json:"data"`
}

// AlertEventData представляет данные алерта в Kafka
type AlertEventData struct {
	TransactionID string  `json:"transaction_id"`
	AlertType     string  `json:"alert_type"`
	Severity      string  `json:"severity"`
	Amount        string  `json:"amount"`
	AnomalyScore  float64 `json:"anomaly_score"`
	Sender        string  `json:"sender"`
	Receiver      string  `json:"receiver"`
}
