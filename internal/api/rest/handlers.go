package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"transaction-anomaly-system/internal/redis"
	"transaction-anomaly-system/internal/storage"
)

type Handlers struct {
	repo        storage.LedgerRepository
	redisClient *redis.Client
}

// NewHandlers создает новые обработчики REST API.
// redisClient опционален: без него endpoint статистики по серьезности
// возвращает 503.
func NewHandlers(repo storage.LedgerRepository, redisClient *redis.Client) *Handlers {
	return &Handlers{
		repo:        repo,
		redisClient: redisClient,
	}
}

// parseLimit читает query-параметр limit (максимум 500)
func parseLimit(c *gin.Context) int {
	limit := 100
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	return limit
}

// GetAccount возвращает состояние счета по имени
func (h *Handlers) GetAccount(c *gin.Context) {
	name := c.Param("account_name")

	account, err := h.repo.GetAccount(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// GetAllTransactions возвращает список транзакций (новые первыми)
func (h *Handlers) GetAllTransactions(c *gin.Context) {
	transactions, err := h.repo.GetAllTransactions(parseLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransaction возвращает транзакцию по идентификатору
func (h *Handlers) GetTransaction(c *gin.Context) {
	id := c.Param("transaction_id")

	tx, err := h.repo.GetTransaction(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transaction"})
		return
	}
	if tx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, tx)
}

// GetAlerts возвращает список алертов об аномалиях (новые первыми)
func (h *Handlers) GetAlerts(c *gin.Context) {
	alerts, err := h.repo.GetAllAlerts(parseLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// GetBalanceHistory возвращает историю изменений баланса (новые первыми)
func (h *Handlers) GetBalanceHistory(c *gin.Context) {
	history, err := h.repo.GetBalanceHistory(parseLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get balance history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// GetSeverityStats возвращает счетчики алертов по уровням серьезности из Redis
func (h *Handlers) GetSeverityStats(c *gin.Context) {
	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Redis is not available"})
		return
	}

	stats, err := h.redisClient.GetSeverityStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get severity stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity_stats": stats})
}

// ClearLedger очищает транзакции, историю баланса и алерты.
// Счета и их балансы сохраняются.
func (h *Handlers) ClearLedger(c *gin.Context) {
	if err := h.repo.ClearLedger(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear ledger"})
		return
	}

	if h.redisClient != nil {
		if err := h.redisClient.ClearMonitorData(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear monitor data"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ledger cleared successfully"})
}
