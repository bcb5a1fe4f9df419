package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/contract"
	"faq-chatbot-be/pkg/rag"

	"github.com/redis/go-redis/v9"
)

// RedisChatMemoryRepository keeps each session's turns in a capped Redis
// list with a sliding TTL refreshed on every write.
type RedisChatMemoryRepository struct {
	client      *redis.Client
	messageTTL  time.Duration
	maxMessages int
}

func NewRedisChatMemoryRepository(client *redis.Client, messageTTL time.Duration, maxMessages int) contract.ChatMemoryRepository {
	return &RedisChatMemoryRepository{
		client:      client,
		messageTTL:  messageTTL,
		maxMessages: maxMessages,
	}
}

func (r *RedisChatMemoryRepository) key(sessionId string) string {
	return fmt.Sprintf("chat:memory:%s", sessionId)
}

func (r *RedisChatMemoryRepository) Append(ctx context.Context, sessionId string, message *entity.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := r.key(sessionId)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, int64(r.maxMessages-1))
	pipe.Expire(ctx, key, r.messageTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: append: %v", rag.ErrSessionStoreUnavailable, err)
	}
	return nil
}

func (r *RedisChatMemoryRepository) Recent(ctx context.Context, sessionId string, limit int) ([]*entity.Message, error) {
	raw, err := r.client.LRange(ctx, r.key(sessionId), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: recent: %v", rag.ErrSessionStoreUnavailable, err)
	}

	messages := make([]*entity.Message, 0, len(raw))
	for _, item := range raw {
		var msg entity.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal stored message: %w", err)
		}
		messages = append(messages, &msg)
	}
	return messages, nil
}
