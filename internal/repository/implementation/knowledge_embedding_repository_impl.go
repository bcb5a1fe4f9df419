package implementation

import (
	"context"
	"fmt"

	"faq-chatbot-be/internal/mapper"
	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/pkg/embedding"
	"faq-chatbot-be/pkg/rag/search"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KnowledgeEmbeddingRepositoryImpl backs the similarity index with pgvector.
// Collections share one table, discriminated by the collection column, so a
// single cosine-distance query per collection serves the fusion fan-out.
type KnowledgeEmbeddingRepositoryImpl struct {
	db       *gorm.DB
	embedder embedding.EmbeddingProvider
	mapper   *mapper.KnowledgeEmbeddingMapper
}

var _ search.Index = &KnowledgeEmbeddingRepositoryImpl{}

func NewKnowledgeEmbeddingRepository(db *gorm.DB, embedder embedding.EmbeddingProvider) *KnowledgeEmbeddingRepositoryImpl {
	return &KnowledgeEmbeddingRepositoryImpl{
		db:       db,
		embedder: embedder,
		mapper:   mapper.NewKnowledgeEmbeddingMapper(),
	}
}

func (r *KnowledgeEmbeddingRepositoryImpl) Query(ctx context.Context, collection search.CollectionKind, text string, topK int) ([]search.IndexHit, error) {
	if topK <= 0 {
		topK = 5
	}

	embeddingRes, err := r.embedder.Generate(ctx, text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	queryVector := pgvector.NewVector(embeddingRes.Embedding.Values)

	// Cosine distance in pgvector: embedding_value <=> query_vector
	type row struct {
		model.KnowledgeEmbedding
		Distance float64
	}
	var rows []row

	err = r.db.WithContext(ctx).
		Table("knowledge_embeddings").
		Select("knowledge_embeddings.*, embedding_value <=> ? AS distance", queryVector).
		Where("collection = ?", string(collection)).
		Order("distance ASC").
		Limit(topK).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	hits := make([]search.IndexHit, len(rows))
	for i, res := range rows {
		hits[i] = r.mapper.ToIndexHit(&res.KnowledgeEmbedding, res.Distance)
	}
	return hits, nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) InsertBatch(ctx context.Context, collection search.CollectionKind, documents []string, metadatas []search.EntryMetadata, ids []string) error {
	if len(documents) != len(metadatas) || len(documents) != len(ids) {
		return fmt.Errorf("insert batch: mismatched lengths (%d docs, %d metas, %d ids)",
			len(documents), len(metadatas), len(ids))
	}

	models := make([]*model.KnowledgeEmbedding, len(documents))
	for i, doc := range documents {
		embeddingRes, err := r.embedder.Generate(ctx, doc, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return fmt.Errorf("embed document %s: %w", ids[i], err)
		}
		models[i] = r.mapper.ToModel(collection, doc, metadatas[i], ids[i], embeddingRes.Embedding.Values)
	}

	// Duplicate doc_id overwrites in place; bulk reloads stay idempotent
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_id"}},
			UpdateAll: true,
		}).
		Create(models).Error
	if err != nil {
		return fmt.Errorf("insert embeddings: %w", err)
	}
	return nil
}
