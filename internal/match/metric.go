package match

import (
	"math"
)

// Metric identifies the distance function used by an embedding family.
type Metric int

const (
	// MetricCosine is cosine distance (1 - cosine similarity), used by the
	// DeepFace/Facenet embedding family.
	MetricCosine Metric = iota
	// MetricEuclidean is plain Euclidean distance, used by the dlib
	// ResNet descriptor family.
	MetricEuclidean
)

// Distance computes the dissimilarity between two equal-length vectors.
// Callers must check lengths beforehand.
func (m Metric) Distance(a, b []float64) float64 {
	switch m {
	case MetricEuclidean:
		return euclideanDistance(a, b)
	default:
		return cosineDistance(a, b)
	}
}

// cosineDistance returns 1 minus the cosine similarity of a and b.
// A zero-norm vector has no direction, so its similarity is taken as 0.
func cosineDistance(a, b []float64) float64 {
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 1.0
	}

	return 1.0 - dotProduct/(math.Sqrt(normA)*math.Sqrt(normB))
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
