package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveScoreBounds(t *testing.T) {
	distances := []float64{-1, 0, 0.01, 0.2, 0.45, 0.5, 0.7, 0.9, 1.0, 1.19, 1.2, 2.5, 10}

	for _, modelID := range ModelIDs() {
		for _, d := range distances {
			score := ScoreFor(modelID, d)
			assert.GreaterOrEqual(t, score, MinSimilarity, "model %s distance %.2f", modelID, d)
			assert.LessOrEqual(t, score, MaxSimilarity, "model %s distance %.2f", modelID, d)
		}
	}
}

func TestCurveScoreMonotonic(t *testing.T) {
	// Sample densely; larger distance must never yield a higher score.
	for _, modelID := range ModelIDs() {
		prev := MaxSimilarity + 1
		for d := 0.0; d <= 2.0; d += 0.005 {
			score := ScoreFor(modelID, d)
			assert.LessOrEqual(t, score, prev, "model %s score increased at distance %.3f", modelID, d)
			prev = score
		}
	}
}

func TestCurveScoreEndpoints(t *testing.T) {
	for _, modelID := range ModelIDs() {
		assert.Equal(t, MaxSimilarity, ScoreFor(modelID, 0), "identical embeddings should score the top of the band")
		assert.Equal(t, MinSimilarity, ScoreFor(modelID, 5.0), "far beyond the last breakpoint should floor out")
	}
}

func TestCurveScoreDeterministic(t *testing.T) {
	for _, modelID := range ModelIDs() {
		for _, d := range []float64{0.1, 0.33, 0.77} {
			first := ScoreFor(modelID, d)
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, ScoreFor(modelID, d))
			}
		}
	}
}

func TestCurveScoreInterpolates(t *testing.T) {
	// Halfway between the facenet512 breakpoints (0.45, 80) and (0.70, 58).
	score := ScoreFor("facenet512", 0.575)
	assert.Equal(t, 69, score)
}

func TestProfileForUnknownModelFallsBack(t *testing.T) {
	unknown := profileFor("some-future-model")
	assert.Equal(t, MetricCosine, unknown.metric)
	assert.Equal(t, defaultProfile.curve, unknown.curve)
}

func TestMustCurveRejectsBadTables(t *testing.T) {
	require.Panics(t, func() {
		mustCurve(breakpoint{0, 99})
	}, "single breakpoint")

	require.Panics(t, func() {
		mustCurve(breakpoint{0.5, 90}, breakpoint{0.5, 80})
	}, "non-increasing distance")

	require.Panics(t, func() {
		mustCurve(breakpoint{0, 50}, breakpoint{1, 90})
	}, "score increasing with distance")

	require.Panics(t, func() {
		mustCurve(breakpoint{0, 100}, breakpoint{1, 40})
	}, "score above the band")
}
