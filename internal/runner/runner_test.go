package runner

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transaction-anomaly-system/internal/models"
)

// fakeSource выдает заранее подготовленную последовательность кандидатов
type fakeSource struct {
	candidates []*models.Transaction
	errs       []error
	calls      int
}

func (f *fakeSource) Generate() (*models.Transaction, error) {
	i := f.calls
	f.calls++

	var tx *models.Transaction
	if i < len(f.candidates) {
		tx = f.candidates[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return tx, err
}

// fakeProcessor собирает обработанные транзакции
type fakeProcessor struct {
	processed []*models.Transaction
	skip      bool
	err       error
}

func (f *fakeProcessor) Process(tx *models.Transaction) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.skip {
		return nil, nil
	}
	f.processed = append(f.processed, tx)
	return tx, nil
}

func candidate(id string) *models.Transaction {
	return &models.Transaction{
		TransactionID: id,
		Timestamp:     time.Now(),
		Amount:        decimal.NewFromInt(25000),
		Sender:        "SilverPeak Solutions",
		Receiver:      "TechCorp Solutions",
	}
}

func TestRunner_RunBatch_ProcessesAllTicks(t *testing.T) {
	source := &fakeSource{
		candidates: []*models.Transaction{candidate("TXN-001"), candidate("TXN-002"), candidate("TXN-003")},
	}
	processor := &fakeProcessor{}
	r := NewRunner(source, processor, time.Millisecond)

	err := r.RunBatch(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, source.calls)
	assert.Len(t, processor.processed, 3)
	assert.Equal(t, 0, r.SkippedTicks())
}

func TestRunner_RunBatch_CountsSkippedTicks(t *testing.T) {
	// Второй тик не дает кандидата (недостаточный баланс)
	source := &fakeSource{
		candidates: []*models.Transaction{candidate("TXN-001"), nil, candidate("TXN-003")},
	}
	processor := &fakeProcessor{}
	r := NewRunner(source, processor, time.Millisecond)

	err := r.RunBatch(context.Background(), 3)
	require.NoError(t, err)

	// Пропущенный тик входит в count, но не порождает транзакцию
	assert.Equal(t, 3, source.calls)
	assert.Len(t, processor.processed, 2)
	assert.Equal(t, 1, r.SkippedTicks())
}

func TestRunner_RunBatch_ProcessorSkipCounted(t *testing.T) {
	source := &fakeSource{
		candidates: []*models.Transaction{candidate("TXN-001"), candidate("TXN-002")},
	}
	processor := &fakeProcessor{skip: true}
	r := NewRunner(source, processor, time.Millisecond)

	err := r.RunBatch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, r.SkippedTicks())
}

func TestRunner_RunBatch_ErrorsDoNotStopLoop(t *testing.T) {
	source := &fakeSource{
		candidates: []*models.Transaction{nil, candidate("TXN-002")},
		errs:       []error{assert.AnError, nil},
	}
	processor := &fakeProcessor{}
	r := NewRunner(source, processor, time.Millisecond)

	// Ошибка генерации на первом тике не прерывает батч
	err := r.RunBatch(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
	assert.Len(t, processor.processed, 1)
	assert.Equal(t, 1, r.SkippedTicks())
}

func TestRunner_RunBatch_Cancellation(t *testing.T) {
	source := &fakeSource{
		candidates: []*models.Transaction{candidate("TXN-001"), candidate("TXN-002"), candidate("TXN-003")},
	}
	processor := &fakeProcessor{}
	r := NewRunner(source, processor, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := r.RunBatch(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)

	// Отмена сработала между тиками: первый тик успел пройти
	assert.Len(t, processor.processed, 1)
}

func TestRunner_RunDaemon_StopsOnCancel(t *testing.T) {
	source := &fakeSource{
		candidates: []*models.Transaction{
			candidate("TXN-001"), candidate("TXN-002"), candidate("TXN-003"),
			candidate("TXN-004"), candidate("TXN-005"),
		},
	}
	processor := &fakeProcessor{}
	r := NewRunner(source, processor, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.RunDaemon(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotEmpty(t, processor.processed)
}
