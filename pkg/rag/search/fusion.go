package search

import (
	"context"
	"fmt"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"
)

const bulkInsertBatchSize = 1000

// Engine fans a query out to every collection concurrently and merges the
// per-collection rankings into one deduplicated, weighted ranking.
type Engine struct {
	searcher    *Searcher
	index       Index
	collections []CollectionKind
	logger      *log.Logger
}

func NewEngine(index Index, logger *log.Logger) *Engine {
	return &Engine{
		searcher:    NewSearcher(index, logger),
		index:       index,
		collections: Collections,
		logger:      logger,
	}
}

// FindSimilar returns at most limit fused results ordered by descending
// accumulated score.
//
// All collections are searched concurrently and the fusion waits for every
// branch: partial fusion would corrupt the ranking without signal, so a
// transport failure of any collection fails the whole call. Duplicate
// (question, answer) pairs accumulate hit.Score * collection weight. Ties
// keep first-seen order, with collections folded in canonical order so the
// output is deterministic for identical inputs.
func (e *Engine) FindSimilar(ctx context.Context, query string, limit int, distanceThreshold float64) ([]FusedResult, error) {
	hitsByCollection := make([][]SearchHit, len(e.collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, collection := range e.collections {
		g.Go(func() error {
			hits, err := e.searcher.Search(gctx, collection, query, limit, distanceThreshold)
			if err != nil {
				return err
			}
			hitsByCollection[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type key struct {
		question string
		answer   string
	}
	scores := make(map[key]float64)
	var order []key

	for i, collection := range e.collections {
		weight := CollectionWeight(collection)
		for _, hit := range hitsByCollection[i] {
			k := key{question: hit.Question, answer: hit.Answer}
			if _, seen := scores[k]; !seen {
				order = append(order, k)
			}
			scores[k] += hit.Score * weight
		}
	}

	fused := make([]FusedResult, 0, len(order))
	for _, k := range order {
		fused = append(fused, FusedResult{
			Question: k.question,
			Answer:   k.answer,
			Score:    scores[k],
		})
	}

	sort.SliceStable(fused, func(a, b int) bool {
		return fused[a].Score > fused[b].Score
	})

	if len(fused) > limit {
		fused = fused[:limit]
	}

	e.logger.Printf("[DEBUG] fused %d unique results for query (limit %d)", len(fused), limit)

	return fused, nil
}

// BulkAdd indexes every entry into every collection, deriving the document
// text per collection and assigning ids "{collection}_{index}". Inserts run
// in batches of 1000 to respect index write limits; a batch failure
// propagates and earlier batches stay (at-least-once, idempotent because the
// index overwrites duplicate ids).
func (e *Engine) BulkAdd(ctx context.Context, entries []KnowledgeEntry) error {
	for _, collection := range e.collections {
		documents := make([]string, len(entries))
		metadatas := make([]EntryMetadata, len(entries))
		ids := make([]string, len(entries))
		for i, entry := range entries {
			documents[i] = entry.Document(collection)
			metadatas[i] = EntryMetadata{
				Question: entry.Question,
				Answer:   entry.Answer,
				Tags:     entry.Tags,
			}
			ids[i] = fmt.Sprintf("%s_%d", collection, i)
		}

		for start := 0; start < len(documents); start += bulkInsertBatchSize {
			end := start + bulkInsertBatchSize
			if end > len(documents) {
				end = len(documents)
			}
			e.logger.Printf("[INFO] collection %s: inserting batch %d-%d of %d",
				collection, start, end, len(documents))
			if err := e.index.InsertBatch(ctx, collection, documents[start:end], metadatas[start:end], ids[start:end]); err != nil {
				return fmt.Errorf("insert batch %d-%d into %s: %w", start, end, collection, err)
			}
		}
	}
	return nil
}
