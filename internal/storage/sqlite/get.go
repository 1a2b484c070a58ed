package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/models"
)

// GetTransaction получает транзакцию по transaction_id
func (s *SQLiteStorage) GetTransaction(transactionID string) (*models.Transaction, error) {
	query := `
		SELECT transaction_id, timestamp, amount, sender, receiver, balance, is_anomaly, anomaly_score
		FROM transactions
		WHERE transaction_id = ?
	`

	tx, err := scanTransaction(s.DB.QueryRow(query, transactionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// GetAllTransactions получает последние транзакции
func (s *SQLiteStorage) GetAllTransactions(limit int) ([]*models.Transaction, error) {
	query := `
		SELECT transaction_id, timestamp, amount, sender, receiver, balance, is_anomaly, anomaly_score
		FROM transactions
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// GetBalanceHistory получает последние записи истории баланса
func (s *SQLiteStorage) GetBalanceHistory(limit int) ([]*models.BalanceHistoryEntry, error) {
	query := `
		SELECT id, transaction_id, timestamp, change_amount, new_balance
		FROM balance_history
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.BalanceHistoryEntry
	for rows.Next() {
		var entry models.BalanceHistoryEntry
		var change, newBalance string
		err := rows.Scan(&entry.ID, &entry.TransactionID, &entry.Timestamp, &change, &newBalance)
		if err != nil {
			return nil, err
		}
		if entry.ChangeAmount, err = decimal.NewFromString(change); err != nil {
			return nil, fmt.Errorf("failed to parse change_amount: %w", err)
		}
		if entry.NewBalance, err = decimal.NewFromString(newBalance); err != nil {
			return nil, fmt.Errorf("failed to parse new_balance: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// GetAllAlerts получает последние алерты
func (s *SQLiteStorage) GetAllAlerts(limit int) ([]*models.AnomalyAlert, error) {
	query := `
		SELECT id, transaction_id, alert_type, severity, title, description, anomaly_score, current_value, created_at
		FROM anomaly_alerts
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*models.AnomalyAlert
	for rows.Next() {
		var alert models.AnomalyAlert
		var current string
		err := rows.Scan(
			&alert.ID, &alert.TransactionID, &alert.AlertType, &alert.Severity,
			&alert.Title, &alert.Description, &alert.AnomalyScore, &current, &alert.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if alert.CurrentValue, err = decimal.NewFromString(current); err != nil {
			return nil, fmt.Errorf("failed to parse current_value: %w", err)
		}
		alerts = append(alerts, &alert)
	}

	return alerts, rows.Err()
}

// ListAmounts возвращает суммы всех сохраненных транзакций для обучения модели
func (s *SQLiteStorage) ListAmounts() ([]float64, error) {
	rows, err := s.DB.Query(`SELECT amount FROM transactions ORDER BY timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var amounts []float64
	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return nil, err
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		amounts = append(amounts, amount)
	}

	return amounts, rows.Err()
}

// CountTransactions возвращает число сохраненных транзакций
func (s *SQLiteStorage) CountTransactions() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var tx models.Transaction
	var amount, balance string
	err := row.Scan(
		&tx.TransactionID, &tx.Timestamp, &amount, &tx.Sender, &tx.Receiver,
		&balance, &tx.IsAnomaly, &tx.AnomalyScore,
	)
	if err != nil {
		return nil, err
	}

	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	if tx.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}

	return &tx, nil
}
