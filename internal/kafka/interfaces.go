package kafka

import (
	"context"

	"transaction-anomaly-system/internal/models"
)

// Producer определяет интерфейс для отправки событий алертов в Kafka
type Producer interface {
	SendAlertEvent(event *models.AlertEvent) error

	Close() error
}

// Consumer определяет интерфейс для чтения событий алертов из Kafka
type Consumer interface {
	Start(ctx context.Context) error

	Close() error
}
