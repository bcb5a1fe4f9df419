package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// KnowledgeEmbedding is one embedded document of one collection view.
// DocId is "{collection}_{index}", so reloading the same corpus overwrites
// in place instead of duplicating rows.
type KnowledgeEmbedding struct {
	DocId          string          `gorm:"column:doc_id;primaryKey"`
	Collection     string          `gorm:"column:collection;index;not null"`
	Document       string          `gorm:"column:document;type:text;not null"`
	Question       string          `gorm:"column:question;type:text;not null"`
	Answer         string          `gorm:"column:answer;type:text;not null"`
	Tags           datatypes.JSON  `gorm:"column:tags"`
	EmbeddingValue pgvector.Vector `gorm:"column:embedding_value;type:vector(768)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (KnowledgeEmbedding) TableName() string {
	return "knowledge_embeddings"
}
