package search

import "context"

// CollectionKind identifies one independently-embedded view of the knowledge
// corpus. The same entry is indexed three ways to catch different phrasing
// styles in user queries.
type CollectionKind string

const (
	CollectionFull     CollectionKind = "full"
	CollectionQuestion CollectionKind = "question"
	CollectionAnswer   CollectionKind = "answer"
)

// Collections is the canonical evaluation order. Fusion iterates this order
// when accumulating scores so output is deterministic.
var Collections = []CollectionKind{CollectionFull, CollectionQuestion, CollectionAnswer}

// CollectionWeight returns the fixed fusion weight of a collection.
func CollectionWeight(kind CollectionKind) float64 {
	switch kind {
	case CollectionFull:
		return 1.0
	case CollectionQuestion:
		return 0.8
	case CollectionAnswer:
		return 0.6
	default:
		return 0.0
	}
}

// KnowledgeEntry is one question/answer pair of the searchable corpus.
// Immutable after bulk load.
type KnowledgeEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
}

// Document returns the text embedded for this entry in the given collection.
func (e KnowledgeEntry) Document(kind CollectionKind) string {
	switch kind {
	case CollectionQuestion:
		return e.Question
	case CollectionAnswer:
		return e.Answer
	default:
		return e.Question + "\n" + e.Answer
	}
}

// EntryMetadata is the fixed metadata attached to every indexed document.
// The index boundary validates into this struct; untyped maps stop here.
type EntryMetadata struct {
	Question string
	Answer   string
	Tags     []string
}

// IndexHit is one raw result from a similarity index query, ordered by
// ascending distance.
type IndexHit struct {
	EntryMetadata
	Distance float64
}

// SearchHit is a scored, threshold-filtered hit from one collection.
// Score = 1 - distance, higher is better. Transient, never persisted.
type SearchHit struct {
	Question   string
	Answer     string
	Score      float64
	Collection CollectionKind
}

// FusedResult is the final deduplicated ranking entry: the sum over all
// collections of hit.Score * collection weight, keyed by (question, answer).
type FusedResult struct {
	Question string
	Answer   string
	Score    float64
}

// Index abstracts one vector similarity store holding multiple named
// collections. Implementations own embedding generation and persistence.
type Index interface {
	// Query returns the topK nearest documents of a collection for the text,
	// ordered by ascending distance.
	Query(ctx context.Context, collection CollectionKind, text string, topK int) ([]IndexHit, error)

	// InsertBatch inserts documents with their metadata under the given ids.
	// An existing id is overwritten, making bulk loads idempotent.
	InsertBatch(ctx context.Context, collection CollectionKind, documents []string, metadatas []EntryMetadata, ids []string) error
}
