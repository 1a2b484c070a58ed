package mocks

import (
	"github.com/stretchr/testify/mock"

	"transaction-anomaly-system/internal/models"
)

// MockProducer является моком для kafka.Producer интерфейса
type MockProducer struct {
	mock.Mock
}

// SendAlertEvent мок для SendAlertEvent
func (m *MockProducer) SendAlertEvent(event *models.AlertEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// Close мок для Close
func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
