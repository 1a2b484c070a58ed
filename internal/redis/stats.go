package redis

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/models"
)

// IncrementSeverityStats увеличивает счетчик алертов по уровню серьезности
func (c *Client) IncrementSeverityStats(severity string) error {
	ctx := context.Background()
	key := fmt.Sprintf("alert_stats:severity:%s", severity)
	return c.rdb.Incr(ctx, key).Err()
}

// GetSeverityStats возвращает счетчики алертов по всем уровням серьезности
func (c *Client) GetSeverityStats() (map[string]int64, error) {
	ctx := context.Background()
	stats := make(map[string]int64)

	for _, severity := range []string{models.SeverityHigh, models.SeverityMedium} {
		key := fmt.Sprintf("alert_stats:severity:%s", severity)
		count, err := c.rdb.Get(ctx, key).Int64()
		if err == redisv9.Nil {
			stats[severity] = 0
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get severity stats: %w", err)
		}
		stats[severity] = count
	}

	return stats, nil
}

// IncrementAlertTypeStats увеличивает счетчик алертов по типу
func (c *Client) IncrementAlertTypeStats(alertType string) error {
	ctx := context.Background()
	key := fmt.Sprintf("alert_stats:type:%s", alertType)
	return c.rdb.Incr(ctx, key).Err()
}

// CacheBalance сохраняет снимок баланса счета в Redis с TTL 1 час
func (c *Client) CacheBalance(accountName string, balance decimal.Decimal) error {
	ctx := context.Background()
	key := fmt.Sprintf("balance:%s:latest", accountName)
	return c.rdb.Set(ctx, key, balance.String(), time.Hour).Err()
}

// GetCachedBalance получает снимок баланса из Redis.
// Возвращает (zero, false, nil), если снимка нет или он истек.
func (c *Client) GetCachedBalance(accountName string) (decimal.Decimal, bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("balance:%s:latest", accountName)

	data, err := c.rdb.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to get cached balance: %w", err)
	}

	balance, err := decimal.NewFromString(data)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse cached balance: %w", err)
	}

	return balance, true, nil
}

// ClearMonitorData очищает статистику алертов и кэш балансов из Redis
func (c *Client) ClearMonitorData() error {
	ctx := context.Background()

	patterns := []string{
		"alert_stats:*",
		"balance:*",
	}

	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			c.rdb.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to clear pattern %s: %w", pattern, err)
		}
	}

	return nil
}
