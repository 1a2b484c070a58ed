package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// defaultCounterparties — ростер контрагентов по умолчанию.
// Может быть переопределен через переменную окружения COUNTERPARTIES.
var defaultCounterparties = []string{
	"SilverPeak Solutions", "NovaEdge Technologies", "BlueHaven Enterprises",
	"IronLeaf Systems", "Cloudspire Innovations", "BrightForge Labs",
	"Emberline Networks", "QuantumSprout Inc.", "Redwood Analytics",
	"AeroLink Dynamics", "PixelWave Studios", "Starcrest Ventures",
	"Boldstream Technologies", "ZenithPath Consulting", "LunarBay Software",
	"SwiftRock Logistics", "GreenAxis Energy", "Nexora Digital",
	"SummitCore Global", "OrionVista Systems",
}

type Config struct {
	DB         DBConfig
	Model      ModelConfig
	Simulation SimulationConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Server     ServerConfig
}

type DBConfig struct {
	DBPath string // Путь к файлу SQLite
}

type ModelConfig struct {
	ArtifactPath  string  // Путь к сохраненной модели
	Contamination float64 // Ожидаемая доля аномалий в обучающей выборке
	Seed          int64   // Seed модели для воспроизводимости
}

type SimulationConfig struct {
	MonitoredAccount string
	AccountType      string
	AccountNumber    string
	StartingBalance  decimal.Decimal
	Counterparties   []string
	AnomalyRate      float64
	BatchInterval    time.Duration
	DaemonInterval   time.Duration
	Seed             int64 // 0 — seed от текущего времени
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type KafkaConfig struct {
	Brokers         []string
	AlertTopic      string
	ConsumerGroupID string
}

type ServerConfig struct {
	MonitorPort int
}

func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DB: DBConfig{
			DBPath: getEnv("DB_PATH", "./data/ledger.db"),
		},
		Model: ModelConfig{
			ArtifactPath:  getEnv("MODEL_PATH", "./data/isolation_forest_model.json"),
			Contamination: getEnvAsFloat("MODEL_CONTAMINATION", 0.2),
			Seed:          getEnvAsInt64("MODEL_SEED", 42),
		},
		Simulation: SimulationConfig{
			MonitoredAccount: getEnv("MONITORED_ACCOUNT", "TechCorp Solutions"),
			AccountType:      getEnv("MONITORED_ACCOUNT_TYPE", "Current Account"),
			AccountNumber:    getEnv("MONITORED_ACCOUNT_NUMBER", "1234567890"),
			StartingBalance:  getEnvAsDecimal("STARTING_BALANCE", decimal.NewFromInt(5000000)),
			Counterparties:   getEnvAsList("COUNTERPARTIES", defaultCounterparties),
			AnomalyRate:      getEnvAsFloat("ANOMALY_RATE", 0.3),
			BatchInterval:    getEnvAsDuration("BATCH_INTERVAL", time.Second),
			DaemonInterval:   getEnvAsDuration("DAEMON_INTERVAL", 5*time.Second),
			Seed:             getEnvAsInt64("GENERATOR_SEED", 0),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers:         []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			AlertTopic:      getEnv("KAFKA_ALERT_TOPIC", "ledger.anomaly.alerts"),
			ConsumerGroupID: getEnv("KAFKA_CONSUMER_GROUP", "anomaly-monitor-group"),
		},
		Server: ServerConfig{
			MonitorPort: getEnvAsInt("MONITOR_SERVICE_PORT", 8082),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
