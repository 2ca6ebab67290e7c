package match

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/lookalike-labs/facematch/internal/domain"
)

// Ranker scores a query embedding against a gallery snapshot and orders
// the candidates. It performs no I/O.
type Ranker struct {
	logger *slog.Logger
}

func NewRanker(logger *slog.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// Rank computes one candidate per gallery entry and returns them ordered
// by similarity descending, ties broken by distance ascending and then
// identifier ascending. Candidates with a non-finite distance are dropped
// and logged; an empty snapshot yields an empty slice, never an error.
// Truncating to top-K is the caller's job.
//
// A gallery entry whose embedding length differs from the query means two
// extractor models were mixed; that is a defect and fails the whole pass.
func (r *Ranker) Rank(modelID string, query domain.Embedding, entries []domain.GalleryEntry) ([]domain.Candidate, error) {
	prof := profileFor(modelID)

	candidates := make([]domain.Candidate, 0, len(entries))
	for _, entry := range entries {
		if len(entry.Embedding) != len(query) {
			return nil, domain.ErrDimensionMismatch.WithError(
				fmt.Errorf("gallery entry %q has %d dimensions, query has %d", entry.Identifier, len(entry.Embedding), len(query)))
		}

		distance := prof.metric.Distance(query, entry.Embedding)
		if math.IsNaN(distance) || math.IsInf(distance, 0) {
			r.logger.Warn("dropping candidate with non-finite distance",
				slog.String("identifier", entry.Identifier),
				slog.String("model_id", modelID),
			)
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Identifier: entry.Identifier,
			Distance:   distance,
			Similarity: prof.curve.Score(distance),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].Identifier < candidates[j].Identifier
	})

	return candidates, nil
}
