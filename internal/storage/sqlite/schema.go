package sqlite

// initSchema инициализирует схему БД
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS accounts (
		account_name TEXT PRIMARY KEY,
		balance TEXT NOT NULL,
		account_type TEXT NOT NULL DEFAULT '',
		account_number TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		amount TEXT NOT NULL,
		sender TEXT NOT NULL,
		receiver TEXT NOT NULL,
		balance TEXT NOT NULL,
		is_anomaly INTEGER NOT NULL DEFAULT 0,
		anomaly_score REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS balance_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transaction_id TEXT NOT NULL REFERENCES transactions(transaction_id),
		timestamp DATETIME NOT NULL,
		change_amount TEXT NOT NULL,
		new_balance TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS anomaly_alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transaction_id TEXT NOT NULL REFERENCES transactions(transaction_id),
		alert_type TEXT NOT NULL,
		severity TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		anomaly_score REAL NOT NULL DEFAULT 0,
		current_value TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_transactions_is_anomaly ON transactions(is_anomaly);
	CREATE INDEX IF NOT EXISTS idx_balance_history_transaction_id ON balance_history(transaction_id);
	CREATE INDEX IF NOT EXISTS idx_balance_history_timestamp ON balance_history(timestamp);
	CREATE INDEX IF NOT EXISTS idx_anomaly_alerts_transaction_id ON anomaly_alerts(transaction_id);
	`

	_, err := s.DB.Exec(query)
	return err
}
