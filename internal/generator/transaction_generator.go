package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"transaction-anomaly-system/internal/config"
	"transaction-anomaly-system/internal/models"
)

// Диапазоны сумм: нормальные переводы и инжектированные аномалии
const (
	normalAmountMin  = 1000.0
	normalAmountMax  = 40000.0
	anomalyAmountMin = 200000.0
	anomalyAmountMax = 500000.0
)

// BalanceReader отдает текущий баланс счета. Реализуется леджером.
type BalanceReader interface {
	GetBalance(accountName string) (decimal.Decimal, error)
}

// TransactionGenerator генерирует синтетические переводы между наблюдаемым
// счетом и контрагентами из ростера, с контролируемой инжекцией аномалий.
// Персистенцию генератор не трогает — только читает баланс для проверки
// достаточности средств.
type TransactionGenerator struct {
	rand      *rand.Rand
	monitored string
	roster    []string
	rate      float64
	balances  BalanceReader
}

// NewTransactionGenerator создает генератор с конфигурацией симуляции.
// Seed = 0 означает seed от текущего времени; ненулевой seed дает
// воспроизводимую последовательность кандидатов.
func NewTransactionGenerator(cfg *config.SimulationConfig, balances BalanceReader) *TransactionGenerator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &TransactionGenerator{
		rand:      rand.New(rand.NewSource(seed)),
		monitored: cfg.MonitoredAccount,
		roster:    cfg.Counterparties,
		rate:      cfg.AnomalyRate,
		balances:  balances,
	}
}

// Generate производит одного кандидата перевода. Возвращает (nil, nil),
// когда исходящий перевод не проходит по балансу — такой тик пропускается
// без ошибки. Инжекция аномалий происходит после проверки баланса,
// поэтому инжектированная крупная сумма может превысить баланс: это
// решает атомарная проверка на этапе проведения, не генератор.
func (g *TransactionGenerator) Generate() (*models.Transaction, error) {
	amount := g.randomAmount(normalAmountMin, normalAmountMax)

	var sender, receiver string
	if g.rand.Intn(2) == 0 {
		sender = g.monitored
		receiver = g.randomCounterparty()

		balance, err := g.balances.GetBalance(g.monitored)
		if err != nil {
			return nil, err
		}
		if balance.LessThan(amount) {
			return nil, nil
		}
	} else {
		sender = g.randomCounterparty()
		receiver = g.monitored
	}

	if g.rand.Float64() < g.rate {
		if g.rand.Intn(2) == 0 {
			amount = g.randomAmount(anomalyAmountMin, anomalyAmountMax)
		} else {
			sender = receiver
		}
	}

	return &models.Transaction{
		TransactionID: uuid.New().String(),
		Timestamp:     time.Now(),
		Amount:        amount,
		Sender:        sender,
		Receiver:      receiver,
	}, nil
}

func (g *TransactionGenerator) randomCounterparty() string {
	return g.roster[g.rand.Intn(len(g.roster))]
}

// randomAmount возвращает сумму из [min, max), округленную до 2 знаков
func (g *TransactionGenerator) randomAmount(min, max float64) decimal.Decimal {
	value := min + g.rand.Float64()*(max-min)
	return decimal.NewFromFloat(math.Round(value*100) / 100)
}
