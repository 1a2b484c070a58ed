package simulator

import (
	"log"

	"transaction-anomaly-system/internal/anomaly"
	"transaction-anomaly-system/internal/config"
	"transaction-anomaly-system/internal/generator"
	"transaction-anomaly-system/internal/kafka"
	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/redis"
	"transaction-anomaly-system/internal/services"
	"transaction-anomaly-system/internal/storage"
	"transaction-anomaly-system/internal/storage/sqlite"
)

// Dependencies содержит все зависимости симулятора
type Dependencies struct {
	StorageConn   *sqlite.SQLiteStorage
	StorageRepo   storage.LedgerRepository
	Detector      *anomaly.Detector
	Generator     *generator.TransactionGenerator
	Processor     services.TransactionProcessor
	KafkaProducer kafka.Producer
	RedisClient   *redis.Client
}

// InitializeDependencies инициализирует все зависимости симулятора.
// Kafka и Redis опциональны: при недоступности симулятор работает
// без побочных каналов.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	// Инициализация SQLite
	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}

	storageRepo := sqlite.NewRepository(storageConn)

	// Создаем наблюдаемый счет, если его еще нет
	if err := storageRepo.EnsureAccount(&models.Account{
		AccountName:   cfg.Simulation.MonitoredAccount,
		Balance:       cfg.Simulation.StartingBalance,
		AccountType:   cfg.Simulation.AccountType,
		AccountNumber: cfg.Simulation.AccountNumber,
	}); err != nil {
		storageConn.Close()
		return nil, err
	}

	// Загрузка или обучение модели аномалий
	detector, err := anomaly.LoadOrTrain(&cfg.Model, storageRepo)
	if err != nil {
		storageConn.Close()
		return nil, err
	}

	// Инициализация Kafka Producer (опционально)
	log.Println("Connecting to Kafka...")
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Kafka (alerts will not be published): %v", err)
		producer = nil
	} else {
		log.Println("Kafka producer connected successfully")
	}

	// Инициализация Redis (опционально)
	log.Println("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (balance cache disabled): %v", err)
		redisClient = nil
	} else {
		log.Println("Redis connection established")
	}

	txGenerator := generator.NewTransactionGenerator(&cfg.Simulation, storageRepo)
	processor := services.NewTransactionProcessorWithSinks(
		storageRepo, detector, cfg.Simulation.MonitoredAccount, producer, redisClient)

	return &Dependencies{
		StorageConn:   storageConn,
		StorageRepo:   storageRepo,
		Detector:      detector,
		Generator:     txGenerator,
		Processor:     processor,
		KafkaProducer: producer,
		RedisClient:   redisClient,
	}, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
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
