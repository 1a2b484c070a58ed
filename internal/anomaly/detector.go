package anomaly

import (
	"log"
	"os"

	"transaction-anomaly-system/internal/config"
	"transaction-anomaly-system/internal/logger"
)

// AmountSource отдает исторические суммы транзакций для обучения.
// Реализуется леджером.
type AmountSource interface {
	ListAmounts() ([]float64, error)
}

// Detector — загруженная модель аномалий. После LoadOrTrain модель
// статична на все время работы процесса и безопасно используется
// любым числом параллельных вызовов Score.
type Detector struct {
	forest *IsolationForest
}

// LoadOrTrain загружает модель из артефакта, если он есть. Иначе обучает
// новую на исторических суммах из леджера (или на bootstrap-выборке,
// если истории меньше MinHistorySize) и сохраняет артефакт для
// последующих запусков. Поврежденный артефакт не фатален — модель
// просто переобучается.
func LoadOrTrain(cfg *config.ModelConfig, source AmountSource) (*Detector, error) {
	if forest, err := LoadForest(cfg.ArtifactPath); err == nil {
		log.Println("Loaded existing anomaly detection model")
		logger.LogEvent(logger.EventModelLoaded, "simulator", "anomaly", map[string]interface{}{
			"artifact_path": cfg.ArtifactPath,
			"trained_at":    forest.TrainedAt,
		})
		return &Detector{forest: forest}, nil
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: failed to load model artifact, retraining: %v", err)
	}

	history, err := source.ListAmounts()
	if err != nil {
		return nil, err
	}

	training := history
	if len(history) < MinHistorySize {
		log.Println("Bootstrapping model with synthetic data...")
		training = BootstrapTrainingData(BootstrapSize, cfg.Seed)
	}

	log.Println("Training new anomaly detection model...")
	forest := NewIsolationForest(cfg.Contamination, cfg.Seed)
	if err := forest.Fit(training); err != nil {
		return nil, err
	}

	if err := forest.Save(cfg.ArtifactPath); err != nil {
		log.Printf("Warning: failed to save model artifact: %v", err)
	}

	log.Println("Anomaly detection model trained and saved")
	logger.LogEvent(logger.EventModelTrained, "simulator", "anomaly", map[string]interface{}{
		"training_samples": len(training),
		"contamination":    cfg.Contamination,
		"bootstrap":        len(history) < MinHistorySize,
	})

	return &Detector{forest: forest}, nil
}

// Score оценивает сумму транзакции загруженной моделью
func (d *Detector) Score(amount float64) (bool, float64) {
	return d.forest.Score(amount)
}
