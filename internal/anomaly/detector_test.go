package anomaly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transaction-anomaly-system/internal/config"
)

// stubAmountSource отдает фиксированную историю сумм
type stubAmountSource struct {
	amounts []float64
	err     error
}

func (s *stubAmountSource) ListAmounts() ([]float64, error) {
	return s.amounts, s.err
}

func testModelConfig(t *testing.T) *config.ModelConfig {
	return &config.ModelConfig{
		ArtifactPath:  filepath.Join(t.TempDir(), "forest.json"),
		Contamination: 0.2,
		Seed:          42,
	}
}

func TestLoadOrTrain_BootstrapsWithoutHistory(t *testing.T) {
	cfg := testModelConfig(t)
	source := &stubAmountSource{}

	detector, err := LoadOrTrain(cfg, source)
	require.NoError(t, err)
	require.NotNil(t, detector)

	// Артефакт сохранен для последующих запусков
	_, err = os.Stat(cfg.ArtifactPath)
	assert.NoError(t, err)

	isAnomaly, _ := detector.Score(20000)
	assert.False(t, isAnomaly)

	isAnomaly, _ = detector.Score(300000)
	assert.True(t, isAnomaly)
}

func TestLoadOrTrain_UsesRealHistory(t *testing.T) {
	cfg := testModelConfig(t)
	source := &stubAmountSource{amounts: BootstrapTrainingData(200, 7)}

	detector, err := LoadOrTrain(cfg, source)
	require.NoError(t, err)

	isAnomaly, _ := detector.Score(450000)
	assert.True(t, isAnomaly)
}

func TestLoadOrTrain_ReloadScoresIdentically(t *testing.T) {
	cfg := testModelConfig(t)
	source := &stubAmountSource{}

	trained, err := LoadOrTrain(cfg, source)
	require.NoError(t, err)

	// Второй запуск загружает артефакт, а не переобучает
	loaded, err := LoadOrTrain(cfg, &stubAmountSource{err: assert.AnError})
	require.NoError(t, err)

	for _, amount := range []float64{1500, 25000, 250000} {
		wantAnomaly, wantScore := trained.Score(amount)
		gotAnomaly, gotScore := loaded.Score(amount)
		assert.Equal(t, wantAnomaly, gotAnomaly)
		assert.Equal(t, wantScore, gotScore)
	}
}

func TestLoadOrTrain_CorruptArtifactRetrains(t *testing.T) {
	cfg := testModelConfig(t)
	require.NoError(t, os.WriteFile(cfg.ArtifactPath, []byte("garbage"), 0644))

	detector, err := LoadOrTrain(cfg, &stubAmountSource{})
	require.NoError(t, err)
	require.NotNil(t, detector)

	isAnomaly, _ := detector.Score(300000)
	assert.True(t, isAnomaly)
}

func TestLoadOrTrain_HistoryError(t *testing.T) {
	cfg := testModelConfig(t)

	_, err := LoadOrTrain(cfg, &stubAmountSource{err: assert.AnError})
	assert.Error(t, err)
}
