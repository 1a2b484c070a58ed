package runner

import (
	"context"
	"log"
	"time"

	"transaction-anomaly-system/internal/models"
	"transaction-anomaly-system/internal/services"
)

// Runner управляет циклом симуляции: генерирует кандидатов с заданным
// интервалом и передает их процессору
type Runner struct {
	generator services.TransactionSource
	processor services.TransactionProcessor
	interval  time.Duration
	skipped   int
}

// NewRunner создает новый раннер симуляции
func NewRunner(generator services.TransactionSource, processor services.TransactionProcessor, interval time.Duration) *Runner {
	return &Runner{
		generator: generator,
		processor: processor,
		interval:  interval,
	}
}

// SkippedTicks возвращает количество тиков, не давших проведенной транзакции
func (r *Runner) SkippedTicks() int {
	return r.skipped
}

// RunBatch выполняет count тиков генерации и завершается.
// Пропущенные тики засчитываются в count: раннер всегда делает ровно
// count попыток.
func (r *Runner) RunBatch(ctx context.Context, count int) error {
	log.Printf("Starting batch simulation: %d transactions", count)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			log.Println("Batch simulation cancelled")
			return err
		}

		r.tick(i + 1)

		if i < count-1 {
			select {
			case <-time.After(r.interval):
			case <-ctx.Done():
				log.Println("Batch simulation cancelled")
				return ctx.Err()
			}
		}
	}

	log.Printf("Batch simulation finished: %d ticks, %d skipped", count, r.skipped)
	return nil
}

// RunDaemon выполняет тики генерации до отмены контекста
func (r *Runner) RunDaemon(ctx context.Context) error {
	log.Printf("Starting daemon simulation: interval %s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	n := 0
	for {
		select {
		case <-ctx.Done():
			log.Printf("Daemon simulation stopped: %d ticks, %d skipped", n, r.skipped)
			return ctx.Err()
		case <-ticker.C:
			n++
			r.tick(n)
		}
	}
}

// tick выполняет один шаг симуляции; ошибки логируются, цикл продолжается
func (r *Runner) tick(n int) {
	candidate, err := r.generator.Generate()
	if err != nil {
		log.Printf("[ERROR] Tick %d: failed to generate transaction: %v", n, err)
		r.skipped++
		return
	}
	if candidate == nil {
		log.Printf("[SKIP] Tick %d: insufficient balance, transaction skipped", n)
		r.skipped++
		return
	}

	processed, err := r.processor.Process(candidate)
	if err != nil {
		log.Printf("[ERROR] Tick %d: failed to process transaction: %v", n, err)
		r.skipped++
		return
	}
	if processed == nil {
		r.skipped++
		return
	}

	r.logTick(n, processed)
}

func (r *Runner) logTick(n int, tx *models.Transaction) {
	status := "[OK]"
	if tx.IsAnomaly {
		status = "[ANOMALY]"
	}
	log.Printf("%s Tick %d: %s -> %s amount=%s balance=%s score=%.3f",
		status, n, tx.Sender, tx.Receiver, tx.Amount, tx.Balance, tx.AnomalyScore)
}
