package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/storage"
)

// EnsureAccount создает счет, если его еще нет; существующий счет не изменяется
func (s *SQLiteStorage) EnsureAccount(acc *models.Account) error {
	query := `
		INSERT INTO accounts (account_name, balance, account_type, account_number)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_name) DO NOTHING
	`

	_, err := s.DB.Exec(query, acc.AccountName, acc.Balance.String(), acc.AccountType, acc.AccountNumber)
	return err
}

// GetAccount получает счет по имени
func (s *SQLiteStorage) GetAccount(accountName string) (*models.Account, error) {
	query := `
		SELECT account_name, balance, account_type, account_number
		FROM accounts
		WHERE account_name = ?
	`

	var acc models.Account
	var balance string
	err := s.DB.QueryRow(query, accountName).Scan(
		&acc.AccountName, &balance, &acc.AccountType, &acc.AccountNumber,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrAccountNotFound, accountName)
	}
	if err != nil {
		return nil, err
	}

	acc.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance of %s: %w", accountName, err)
	}

	return &acc, nil
}

// GetBalance возвращает текущий баланс счета
func (s *SQLiteStorage) GetBalance(accountName string) (decimal.Decimal, error) {
	query := `SELECT balance FROM accounts WHERE account_name = ?`

	var balance string
	err := s.DB.QueryRow(query, accountName).Scan(&balance)

	if err == sql.ErrNoRows {
		return decimal.Zero, fmt.Errorf("%w: %s", storage.ErrAccountNotFound, accountName)
	}
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.NewFromString(balance)
}
