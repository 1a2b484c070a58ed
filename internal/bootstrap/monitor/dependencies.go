package monitor

import (
	"log"

	"transaction-anomaly-system/internal/config"
	"transaction-anomaly-system/internal/kafka"
	"transaction-anomaly-system/internal/logger"
	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/redis"
	"transaction-anomaly-system/internal/storage"
	"transaction-anomaly-system/internal/storage/sqlite"
)

// Dependencies содержит все зависимости monitor-сервиса
type Dependencies struct {
	StorageConn   *sqlite.SQLiteStorage
	StorageRepo   storage.LedgerRepository
	RedisClient   *redis.Client
	KafkaConsumer kafka.Consumer
}

// InitializeDependencies инициализирует все зависимости monitor-сервиса.
// Kafka consumer и Redis опциональны: без них сервис отдает только
// данные из леджера.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	// Инициализация SQLite
	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	storageRepo := sqlite.NewRepository(storageConn)

	// Инициализация Redis (опционально)
	log.Println("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (severity stats disabled): %v", err)
		redisClient = nil
	} else {
		log.Println("Redis connection established")
	}

	// Инициализация Kafka Consumer (опционально)
	log.Println("Connecting to Kafka...")
	consumer, err := kafka.NewConsumer(cfg, alertEventHandler(redisClient))
	if err != nil {
		log.Printf("Warning: Failed to connect to Kafka (alert stream disabled): %v", err)
		consumer = nil
	} else {
		log.Println("Kafka consumer connected successfully")
	}

	return &Dependencies{
		StorageConn:   storageConn,
		StorageRepo:   storageRepo,
		RedisClient:   redisClient,
		KafkaConsumer: consumer,
	}, nil
}

// alertEventHandler возвращает обработчик событий алертов из Kafka:
// инкрементирует статистику по серьезности и типу в Redis
func alertEventHandler(redisClient *redis.Client) func(*models.AlertEvent) error {
	return func(event *models.AlertEvent) error {
		logger.LogEvent(logger.EventKafkaReceived, "monitor-service", "kafka", map[string]interface{}{
			"event_id":       event.EventID,
			"transaction_id": event.Data.TransactionID,
			"alert_type":     event.Data.AlertType,
			"severity":       event.Data.Severity,
		})

		if redisClient == nil {
			return nil
		}

		if err := redisClient.IncrementSeverityStats(event.Data.Severity); err != nil {
			return err
		}
		if err := redisClient.IncrementAlertTypeStats(event.Data.AlertType); err != nil {
			return err
		}

		logger.LogEvent(logger.EventRedisSaved, "monitor-service", "redis", map[string]interface{}{
			"severity":   event.Data.Severity,
			"alert_type": event.Data.AlertType,
		})
		return nil
	}
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaConsumer != nil {
		if err := d.KafkaConsumer.Close(); err != nil {
			return err
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			return err
		}
	}
	if d.StorageConn != nil {
		if err := d.StorageConn.Close(); err != nil {
			return err
		}
	}
	return nil
}
