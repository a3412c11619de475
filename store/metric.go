package store

import (
	"fmt"
	"math"
)

// Metric identifies the distance function a collection ranks by.
// It is fixed at collection creation time; changing it later would
// invalidate every previously computed comparison.
type Metric string

const (
	// MetricCosine is cosine distance: 1 - cos(a, b). Range [0, 2].
	MetricCosine Metric = "cosine"

	// MetricEuclidean is squared L2 distance.
	MetricEuclidean Metric = "l2"
)

// Valid reports whether the metric is one of the supported values.
func (m Metric) Valid() bool {
	return m == MetricCosine || m == MetricEuclidean
}

// ParseMetric converts a configuration string into a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown metric %q", s)
	}
	return m, nil
}

// Distance computes the distance between two vectors under the metric.
// Vectors of unequal length are compared over the shorter prefix; the store
// rejects mixed dimensions before this is ever reached.
func (m Metric) Distance(a, b []float32) float32 {
	switch m {
	case MetricEuclidean:
		return squaredL2(a, b)
	default:
		return cosineDistance(a, b)
	}
}

func cosineDistance(a, b []float32) float32 {
	n := min(len(a), len(b))
	var dot, normA, normB float32
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	sim := dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
	return 1 - sim
}

func squaredL2(a, b []float32) float32 {
	n := min(len(a), len(b))
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
