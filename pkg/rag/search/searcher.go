package search

import (
	"context"
	"fmt"
	"log"

	"faq-chatbot-be/pkg/rag"
)

// Searcher queries a single collection and converts raw distances into
// similarity scores.
type Searcher struct {
	index  Index
	logger *log.Logger
}

func NewSearcher(index Index, logger *log.Logger) *Searcher {
	return &Searcher{
		index:  index,
		logger: logger,
	}
}

// Search returns hits ordered by descending score, truncated to limit.
// Hits whose raw distance is strictly greater than distanceThreshold are
// dropped (a hit at exactly the threshold is kept). An empty result is valid.
func (s *Searcher) Search(ctx context.Context, collection CollectionKind, query string, limit int, distanceThreshold float64) ([]SearchHit, error) {
	raw, err := s.index.Query(ctx, collection, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: collection %s: %v", rag.ErrIndexUnavailable, collection, err)
	}

	hits := make([]SearchHit, 0, len(raw))
	for _, r := range raw {
		if r.Distance > distanceThreshold {
			continue
		}
		hits = append(hits, SearchHit{
			Question:   r.Question,
			Answer:     r.Answer,
			Score:      1.0 - r.Distance,
			Collection: collection,
		})
		if len(hits) == limit {
			break
		}
	}

	s.logger.Printf("[DEBUG] collection %s: %d raw hits, %d within threshold %.2f",
		collection, len(raw), len(hits), distanceThreshold)

	return hits, nil
}
