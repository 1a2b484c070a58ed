package anomaly

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var errCorruptArtifact = errors.New("corrupt model artifact")

// Save сериализует обученную модель в JSON-артефакт на диске.
// JSON кодирует float64 без потерь, так что загруженная модель
// воспроизводит оценки обученной в точности.
func (f *IsolationForest) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}

	return nil
}

// LoadForest десериализует модель из артефакта
func LoadForest(path string) (*IsolationForest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var forest IsolationForest
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptArtifact, err)
	}

	if len(forest.Trees) == 0 || forest.SubsampleSize <= 0 {
		return nil, fmt.Errorf("%w: empty forest", errCorruptArtifact)
	}

	return &forest, nil
}
