package mapper

import (
	"encoding/json"

	"faq-chatbot-be/internal/model"
	"faq-chatbot-be/pkg/rag/search"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeEmbeddingMapper struct{}

func NewKnowledgeEmbeddingMapper() *KnowledgeEmbeddingMapper {
	return &KnowledgeEmbeddingMapper{}
}

func (m *KnowledgeEmbeddingMapper) ToModel(
	collection search.CollectionKind,
	document string,
	metadata search.EntryMetadata,
	id string,
	vector []float32,
) *model.KnowledgeEmbedding {
	tags, _ := json.Marshal(metadata.Tags)
	return &model.KnowledgeEmbedding{
		DocId:          id,
		Collection:     string(collection),
		Document:       document,
		Question:       metadata.Question,
		Answer:         metadata.Answer,
		Tags:           datatypes.JSON(tags),
		EmbeddingValue: pgvector.NewVector(vector),
	}
}

func (m *KnowledgeEmbeddingMapper) ToIndexHit(row *model.KnowledgeEmbedding, distance float64) search.IndexHit {
	var tags []string
	if len(row.Tags) > 0 {
		// Corrupt tags degrade to nil rather than failing the whole query
		_ = json.Unmarshal(row.Tags, &tags)
	}
	return search.IndexHit{
		EntryMetadata: search.EntryMetadata{
			Question: row.Question,
			Answer:   row.Answer,
			Tags:     tags,
		},
		Distance: distance,
	}
}
