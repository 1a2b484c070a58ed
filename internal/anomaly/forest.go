package anomaly

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	treeCount        = 100
	maxSubsampleSize = 256

	eulerGamma = 0.5772156649015329
)

// treeNode представляет узел изоляционного дерева.
// Лист — узел без потомков; Size листа нужен для оценки недостроенного пути.
type treeNode struct {
	Split float64   `json:"split"`
	Left  *treeNode `json:"left,omitempty"`
	Right *treeNode `json:"right,omitempty"`
	Size  int       `json:"size"`
}

// IsolationForest — ансамбль изоляционных деревьев над одномерным
// признаком (суммой транзакции). Все поля сериализуются в артефакт модели,
// так что загруженная модель оценивает в точности как обученная.
type IsolationForest struct {
	Trees         []*treeNode `json:"trees"`
	SubsampleSize int         `json:"subsample_size"`
	Contamination float64     `json:"contamination"`
	Offset        float64     `json:"offset"`
	Seed          int64       `json:"seed"`
	TrainedAt     time.Time   `json:"trained_at"`
}

// NewIsolationForest создает необученную модель с заданным уровнем
// contamination и seed для воспроизводимости
func NewIsolationForest(contamination float64, seed int64) *IsolationForest {
	return &IsolationForest{
		Contamination: contamination,
		Seed:          seed,
	}
}

// Fit обучает модель на выборке сумм и калибрует порог решения так,
// чтобы доля contamination обучающей выборки считалась аномальной
func (f *IsolationForest) Fit(values []float64) error {
	if len(values) < 2 {
		return errors.New("training set must contain at least 2 samples")
	}

	rng := rand.New(rand.NewSource(f.Seed))

	psi := len(values)
	if psi > maxSubsampleSize {
		psi = maxSubsampleSize
	}
	f.SubsampleSize = psi

	// Глубина ограничена средней высотой BST: глубже изоляция уже не различает точки
	maxDepth := int(math.Ceil(math.Log2(float64(psi))))

	f.Trees = make([]*treeNode, treeCount)
	for i := range f.Trees {
		f.Trees[i] = buildTree(subsample(values, psi, rng), 0, maxDepth, rng)
	}

	// Порог — contamination-квантиль оценок обучающей выборки
	scores := make([]float64, len(values))
	for i, v := range values {
		scores[i] = f.scoreSample(v)
	}
	sort.Float64s(scores)
	f.Offset = stat.Quantile(f.Contamination, stat.Empirical, scores, nil)
	f.TrainedAt = time.Now().UTC()

	return nil
}

// Score оценивает одну сумму: isAnomaly — бинарный вердикт модели,
// score — непрерывная оценка, чем отрицательнее, тем аномальнее.
// Модель после обучения только читается, вызов безопасен из нескольких горутин.
func (f *IsolationForest) Score(x float64) (bool, float64) {
	score := f.scoreSample(x) - f.Offset
	return score < 0, score
}

// scoreSample возвращает оценку в диапазоне [-1, 0): около -0.5 для
// нормальных точек и ближе к -1 для аномалий
func (f *IsolationForest) scoreSample(x float64) float64 {
	var sum float64
	for _, tree := range f.Trees {
		sum += pathLength(tree, x, 0)
	}
	avg := sum / float64(len(f.Trees))
	return -math.Pow(2, -avg/avgPathLength(f.SubsampleSize))
}

func buildTree(values []float64, depth, maxDepth int, rng *rand.Rand) *treeNode {
	if depth >= maxDepth || len(values) <= 1 {
		return &treeNode{Size: len(values)}
	}

	mn, mx := values[0], values[0]
	for _, v := range values[1:] {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	if mn == mx {
		return &treeNode{Size: len(values)}
	}

	split := mn + rng.Float64()*(mx-mn)

	var left, right []float64
	for _, v := range values {
		if v < split {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}

	return &treeNode{
		Split: split,
		Left:  buildTree(left, depth+1, maxDepth, rng),
		Right: buildTree(right, depth+1, maxDepth, rng),
		Size:  len(values),
	}
}

func pathLength(node *treeNode, x float64, depth float64) float64 {
	if node.Left == nil && node.Right == nil {
		return depth + avgPathLength(node.Size)
	}
	if x < node.Split {
		return pathLength(node.Left, x, depth+1)
	}
	return pathLength(node.Right, x, depth+1)
}

// avgPathLength — средняя длина пути неуспешного поиска в BST размера n,
// стандартная нормировочная константа c(n) изоляционного леса
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	nf := float64(n)
	return 2*(math.Log(nf-1)+eulerGamma) - 2*(nf-1)/nf
}

// subsample выбирает psi значений без возвращения
func subsample(values []float64, psi int, rng *rand.Rand) []float64 {
	if psi >= len(values) {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, psi)
	for i, idx := range rng.Perm(len(values))[:psi] {
		out[i] = values[idx]
	}
	return out
}
