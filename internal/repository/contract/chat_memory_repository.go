package contract

import (
	"context"

	"faq-chatbot-be/internal/entity"
)

// ChatMemoryRepository is the bounded, time-expiring conversation history,
// keyed by opaque session id. Append is atomic per call; Recent returns
// messages most-recent-first as stored.
type ChatMemoryRepository interface {
	Append(ctx context.Context, sessionId string, message *entity.Message) error
	Recent(ctx context.Context, sessionId string, limit int) ([]*entity.Message, error)
}
