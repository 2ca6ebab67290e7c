package match

import (
	"fmt"
	"math"
	"sort"
)

const (
	// MinSimilarity and MaxSimilarity bound every score the curves emit.
	// The narrow band keeps the demo from ever claiming 0% or 100%.
	MinSimilarity = 40
	MaxSimilarity = 99
)

type breakpoint struct {
	distance float64
	score    float64
}

// Curve maps a distance to a display similarity percentage through a
// monotonically non-increasing piecewise-linear function. The mapping is
// presentational only; it stretches the model's narrow "same person"
// distance band into a human-readable range.
type Curve struct {
	points []breakpoint
}

// mustCurve builds a Curve and panics if the breakpoints are not strictly
// increasing in distance and non-increasing in score, or leave the
// [MinSimilarity, MaxSimilarity] band. Curves are static tables, so a bad
// one is a programming error caught at init.
func mustCurve(points ...breakpoint) Curve {
	if len(points) < 2 {
		panic("curve needs at least two breakpoints")
	}
	for i, p := range points {
		if p.score < MinSimilarity || p.score > MaxSimilarity {
			panic(fmt.Sprintf("breakpoint %d score %.1f outside [%d, %d]", i, p.score, MinSimilarity, MaxSimilarity))
		}
		if i == 0 {
			continue
		}
		if points[i-1].distance >= p.distance {
			panic(fmt.Sprintf("breakpoint %d distance %.3f not increasing", i, p.distance))
		}
		if points[i-1].score < p.score {
			panic(fmt.Sprintf("breakpoint %d score %.1f increases with distance", i, p.score))
		}
	}
	return Curve{points: points}
}

// Score maps a distance to an integer similarity percentage. The mapping
// is deterministic and non-increasing in distance.
func (c Curve) Score(distance float64) int {
	pts := c.points
	if distance <= pts[0].distance {
		return clampScore(pts[0].score)
	}
	last := pts[len(pts)-1]
	if distance >= last.distance {
		return clampScore(last.score)
	}

	// First breakpoint strictly beyond the distance; interpolate against
	// its predecessor.
	i := sort.Search(len(pts), func(i int) bool { return pts[i].distance > distance })
	lo, hi := pts[i-1], pts[i]
	t := (distance - lo.distance) / (hi.distance - lo.distance)
	return clampScore(lo.score + t*(hi.score-lo.score))
}

func clampScore(s float64) int {
	v := int(math.Round(s))
	if v < MinSimilarity {
		return MinSimilarity
	}
	if v > MaxSimilarity {
		return MaxSimilarity
	}
	return v
}

// profile bundles the distance metric and score curve for one embedding
// model.
type profile struct {
	metric Metric
	curve  Curve
}

// profiles is keyed by the Embedder's ModelID. Unknown models fall back to
// defaultProfile, which assumes a unit-normalized cosine family.
var profiles = map[string]profile{
	"facenet512": {
		metric: MetricCosine,
		curve: mustCurve(
			breakpoint{0.00, 99},
			breakpoint{0.25, 93},
			breakpoint{0.45, 80},
			breakpoint{0.70, 58},
			breakpoint{1.00, 43},
			breakpoint{1.20, 40},
		),
	},
	"dlib-resnet": {
		metric: MetricEuclidean,
		curve: mustCurve(
			breakpoint{0.00, 99},
			breakpoint{0.30, 94},
			breakpoint{0.45, 85},
			breakpoint{0.60, 68},
			breakpoint{0.90, 48},
			breakpoint{1.20, 40},
		),
	},
}

var defaultProfile = profiles["facenet512"]

func profileFor(modelID string) profile {
	if p, ok := profiles[modelID]; ok {
		return p
	}
	return defaultProfile
}

// ModelIDs returns the ids with a dedicated profile, for tests and docs.
func ModelIDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ScoreFor maps a distance to a similarity using the given model's curve.
func ScoreFor(modelID string, distance float64) int {
	return profileFor(modelID).curve.Score(distance)
}
