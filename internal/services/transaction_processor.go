package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/kafka"
	"transaction-anomaly-system/internal/logger"
	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/redis"
	"transaction-anomaly-system/internal/storage"
)

// LargeAmountThreshold — сумма, выше которой аномалия классифицируется
// как крупный перевод
var LargeAmountThreshold = decimal.NewFromInt(100000)

// TransactionProcessorImpl реализует интерфейс TransactionProcessor
type TransactionProcessorImpl struct {
	repo        storage.LedgerRepository
	scorer      AnomalyScorer
	monitored   string
	producer    kafka.Producer // Опциональный producer для отправки алертов в Kafka
	redisClient *redis.Client  // Опциональный Redis клиент для кэширования баланса
}

// NewTransactionProcessor создает новый процессор транзакций
func NewTransactionProcessor(repo storage.LedgerRepository, scorer AnomalyScorer, monitoredAccount string) TransactionProcessor {
	return &TransactionProcessorImpl{
		repo:      repo,
		scorer:    scorer,
		monitored: monitoredAccount,
	}
}

// NewTransactionProcessorWithSinks создает процессор с побочными каналами:
// Kafka для событий алертов и Redis для кэша баланса. Оба опциональны —
// nil отключает соответствующий канал.
func NewTransactionProcessorWithSinks(
	repo storage.LedgerRepository,
	scorer AnomalyScorer,
	monitoredAccount string,
	producer kafka.Producer,
	redisClient *redis.Client,
) TransactionProcessor {
	return &TransactionProcessorImpl{
		repo:        repo,
		scorer:      scorer,
		monitored:   monitoredAccount,
		producer:    producer,
		redisClient: redisClient,
	}
}

// Process валидирует кандидата, оценивает его моделью и атомарно проводит:
// дельта баланса, запись транзакции, история баланса и алерт коммитятся
// одной единицей или не коммитятся вовсе. Возвращает (nil, nil) для
// штатных пропусков: self-transfer и недостаточный баланс.
func (p *TransactionProcessorImpl) Process(tx *models.Transaction) (*models.Transaction, error) {
	// Self-transfer никогда не персистится
	if tx.Sender == tx.Receiver {
		log.Printf("[SKIP] Self-transfer skipped: %s amount=%s", tx.Sender, tx.Amount)
		logger.LogEvent(logger.EventTickSkipped, "simulator", "processor", map[string]interface{}{
			"reason":         "self_transfer",
			"transaction_id": tx.TransactionID,
			"account":        tx.Sender,
		})
		return nil, nil
	}

	// Дельта баланса наблюдаемого счета; если наблюдаемый счет не участвует,
	// баланс остается нетронутым (генератор таких переводов не производит,
	// но контракт их терпит)
	var delta decimal.Decimal
	switch p.monitored {
	case tx.Sender:
		delta = tx.Amount.Neg()
	case tx.Receiver:
		delta = tx.Amount
	}

	tx.IsAnomaly, tx.AnomalyScore = p.scorer.Score(tx.Amount.InexactFloat64())

	var alert *models.AnomalyAlert
	if tx.IsAnomaly {
		alert = classifyAlert(tx)
	}

	newBalance, err := p.repo.ApplyTransfer(p.monitored, tx, delta, alert)
	if errors.Is(err, storage.ErrInsufficientFunds) {
		log.Printf("[SKIP] Insufficient balance for transaction: %s amount=%s", tx.TransactionID, tx.Amount)
		logger.LogEvent(logger.EventTickSkipped, "simulator", "processor", map[string]interface{}{
			"reason":         "insufficient_funds",
			"transaction_id": tx.TransactionID,
			"amount":         tx.Amount.String(),
		})
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply transfer: %w", err)
	}

	logger.LogEvent(logger.EventTransactionSaved, "simulator", "sqlite", map[string]interface{}{
		"transaction_id": tx.TransactionID,
		"amount":         tx.Amount.String(),
		"is_anomaly":     tx.IsAnomaly,
	})

	if !delta.IsZero() {
		logger.LogEvent(logger.EventBalanceUpdated, "simulator", "sqlite", map[string]interface{}{
			"transaction_id": tx.TransactionID,
			"change_amount":  delta.String(),
			"new_balance":    newBalance.String(),
		})
	}

	if alert != nil {
		logger.LogEvent(logger.EventAlertCreated, "simulator", "sqlite", map[string]interface{}{
			"transaction_id": tx.TransactionID,
			"alert_type":     alert.AlertType,
			"severity":       alert.Severity,
			"anomaly_score":  alert.AnomalyScore,
		})
		p.publishAlert(tx, alert)
	}

	p.cacheBalance(newBalance)

	return tx, nil
}

// classifyAlert строит алерт по аномальной транзакции
func classifyAlert(tx *models.Transaction) *models.AnomalyAlert {
	alert := &models.AnomalyAlert{
		TransactionID: tx.TransactionID,
		AnomalyScore:  tx.AnomalyScore,
		CurrentValue:  tx.Amount,
		CreatedAt:     time.Now(),
	}

	switch {
	case tx.Amount.GreaterThan(LargeAmountThreshold):
		alert.AlertType = models.AlertTypeLargeAmount
		alert.Severity = models.SeverityHigh
		alert.Title = "Large Transaction Alert"
		alert.Description = fmt.Sprintf("Transaction amount %s exceeds normal threshold", tx.Amount)
	case tx.Sender == tx.Receiver:
		// Недостижимо после проверки в Process, оставлено для симметрии контракта
		alert.AlertType = models.AlertTypeSelfTransfer
		alert.Severity = models.SeverityMedium
		alert.Title = "Self-Transfer Alert"
		alert.Description = "Transaction attempted between same account"
	default:
		alert.AlertType = models.AlertTypeAnomalyDetected
		alert.Severity = models.SeverityMedium
		alert.Title = "Anomaly Detected"
		alert.Description = fmt.Sprintf("Unusual transaction pattern detected (score: %.3f)", tx.AnomalyScore)
	}

	return alert
}

// publishAlert отправляет событие алерта в Kafka; ошибки побочного канала
// не фатальны для уже закоммиченного перевода
func (p *TransactionProcessorImpl) publishAlert(tx *models.Transaction, alert *models.AnomalyAlert) {
	if p.producer == nil {
		return
	}

	event := &models.AlertEvent{
		EventID:   "evt_" + uuid.New().String(),
		EventType: "anomaly_alert",
		Timestamp: time.Now(),
		Data: models.AlertEventData{
			TransactionID: tx.TransactionID,
			AlertType:     alert.AlertType,
			Severity:      alert.Severity,
			Amount:        tx.Amount.String(),
			AnomalyScore:  alert.AnomalyScore,
			Sender:        tx.Sender,
			Receiver:      tx.Receiver,
		},
	}

	if err := p.producer.SendAlertEvent(event); err != nil {
		log.Printf("Error sending alert event to Kafka: %v", err)
		return
	}

	logger.LogEvent(logger.EventKafkaSent, "simulator", "kafka", map[string]interface{}{
		"event_id":       event.EventID,
		"transaction_id": tx.TransactionID,
		"alert_type":     alert.AlertType,
	})
}

// cacheBalance сохраняет снимок баланса в Redis; ошибки не фатальны
func (p *TransactionProcessorImpl) cacheBalance(balance decimal.Decimal) {
	if p.redisClient == nil {
		return
	}

	if err := p.redisClient.CacheBalance(p.monitored, balance); err != nil {
		log.Printf("Error caching balance in Redis: %v", err)
		return
	}

	logger.LogEvent(logger.EventRedisSaved, "simulator", "redis", map[string]interface{}{
		"account": p.monitored,
		"balance": balance.String(),
	})
}
