package services

import (
	"transaction-anomaly-system/internal/models"
)

// TransactionSource производит кандидатов переводов.
// (nil, nil) означает пропуск тика без ошибки.
type TransactionSource interface {
	// Generate производит одного кандидата перевода
	Generate() (*models.Transaction, error)
}

// TransactionProcessor проводит кандидата через скоринг и персистенцию.
// (nil, nil) означает, что кандидат отброшен (self-transfer или
// недостаточный баланс) — это штатный пропуск, не ошибка.
type TransactionProcessor interface {
	// Process валидирует, оценивает и атомарно проводит перевод
	Process(tx *models.Transaction) (*models.Transaction, error)
}

// AnomalyScorer оценивает сумму перевода статичной моделью
type AnomalyScorer interface {
	// Score возвращает бинарный вердикт и непрерывную оценку аномальности
	Score(amount float64) (isAnomaly bool, score float64)
}
