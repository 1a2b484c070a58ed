package anomaly

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Диапазон нормальных сумм переводов, которым засеивается модель
// при недостатке реальной истории
const (
	normalAmountMin  = 1000.0
	normalAmountMax  = 40000.0
	normalAmountMode = 20000.0

	// BootstrapSize — размер синтетической обучающей выборки
	BootstrapSize = 80

	// MinHistorySize — минимум реальной истории, при котором
	// bootstrap-выборка больше не нужна
	MinHistorySize = 10
)

// BootstrapTrainingData генерирует синтетическую обучающую выборку:
// два граничных значения, фиксирующих диапазон нормальных сумм, плюс
// суммы из треугольного распределения с пиком в типичной сумме перевода.
// Значения округляются до 2 знаков, как и суммы реальных транзакций.
func BootstrapTrainingData(n int, seed int64) []float64 {
	data := make([]float64, 0, n)
	data = append(data, normalAmountMin, normalAmountMax)

	tri := distuv.NewTriangle(normalAmountMin, normalAmountMax, normalAmountMode, rand.NewSource(uint64(seed)))
	for i := 0; i < n-2; i++ {
		data = append(data, math.Round(tri.Rand()*100)/100)
	}

	return data
}
