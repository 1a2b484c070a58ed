package sqlite

// ClearLedger удаляет все транзакции, историю баланса и алерты.
// Счета не удаляются: жизненный цикл счета заканчивается только вместе с БД.
func (s *SQLiteStorage) ClearLedger() error {
	query := `
	DELETE FROM anomaly_alerts;
	DELETE FROM balance_history;
	DELETE FROM transactions;
	`
	_, err := s.DB.Exec(query)
	return err
}
