package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/storage"
)

// ApplyTransfer атомарно проводит перевод в одной SQL-транзакции:
// дельта баланса, запись транзакции, запись истории, алерт.
// Любая ошибка на этом пути откатывает всю единицу целиком, так что
// в БД не остается изменения баланса без соответствующей транзакции.
func (s *SQLiteStorage) ApplyTransfer(
	monitoredAccount string,
	tx *models.Transaction,
	delta decimal.Decimal,
	alert *models.AnomalyAlert,
) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := retryOperation(func() error {
		var txErr error
		newBalance, txErr = s.applyTransferOnce(monitoredAccount, tx, delta, alert)
		return txErr
	}, 3, 100*time.Millisecond)

	return newBalance, err
}

func (s *SQLiteStorage) applyTransferOnce(
	monitoredAccount string,
	tx *models.Transaction,
	delta decimal.Decimal,
	alert *models.AnomalyAlert,
) (decimal.Decimal, error) {
	sqlTx, err := s.DB.Begin()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	// Текущий баланс наблюдаемого счета читается внутри транзакции
	var balanceStr string
	err = sqlTx.QueryRow(`SELECT balance FROM accounts WHERE account_name = ?`, monitoredAccount).Scan(&balanceStr)
	if err == sql.ErrNoRows {
		return decimal.Zero, fmt.Errorf("%w: %s", storage.ErrAccountNotFound, monitoredAccount)
	}
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance of %s: %w", monitoredAccount, err)
	}

	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		// Баланс наблюдаемого счета никогда не опускается ниже нуля:
		// проверка генератора не авторитетна, откатываем здесь
		return decimal.Zero, fmt.Errorf("%w: balance %s, delta %s", storage.ErrInsufficientFunds, balance, delta)
	}

	if !delta.IsZero() {
		_, err = sqlTx.Exec(`UPDATE accounts SET balance = ? WHERE account_name = ?`,
			newBalance.String(), monitoredAccount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to update balance: %w", err)
		}
	}

	_, err = sqlTx.Exec(`
		INSERT INTO transactions (transaction_id, timestamp, amount, sender, receiver, balance, is_anomaly, anomaly_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, tx.TransactionID, tx.Timestamp, tx.Amount.String(), tx.Sender, tx.Receiver,
		newBalance.String(), tx.IsAnomaly, tx.AnomalyScore)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return decimal.Zero, fmt.Errorf("%w: %s", storage.ErrDuplicateTransaction, tx.TransactionID)
		}
		return decimal.Zero, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if !delta.IsZero() {
		_, err = sqlTx.Exec(`
			INSERT INTO balance_history (transaction_id, timestamp, change_amount, new_balance)
			VALUES (?, ?, ?, ?)
		`, tx.TransactionID, tx.Timestamp, delta.String(), newBalance.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to insert balance history: %w", err)
		}
	}

	if alert != nil {
		_, err = sqlTx.Exec(`
			INSERT INTO anomaly_alerts (transaction_id, alert_type, severity, title, description, anomaly_score, current_value, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, alert.TransactionID, alert.AlertType, alert.Severity, alert.Title,
			alert.Description, alert.AnomalyScore, alert.CurrentValue.String(), alert.CreatedAt)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to insert anomaly alert: %w", err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transfer: %w", err)
	}

	tx.Balance = newBalance
	return newBalance, nil
}
