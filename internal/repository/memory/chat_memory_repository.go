package memory

import (
	"context"
	"sync"
	"time"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ChatMemoryRepository is an in-process session store used for development
// and tests. Same contract as the Redis implementation: capped list,
// most-recent-first, sliding TTL refreshed on every write.
type ChatMemoryRepository struct {
	// go-cache guards single operations, not the read-modify-write in
	// Append; mu keeps concurrent appends from dropping turns
	mu          sync.Mutex
	cache       *cache.Cache
	maxMessages int
}

func NewChatMemoryRepository(messageTTL time.Duration, maxMessages int) *ChatMemoryRepository {
	return &ChatMemoryRepository{
		cache:       cache.New(messageTTL, 10*time.Minute),
		maxMessages: maxMessages,
	}
}

var _ contract.ChatMemoryRepository = &ChatMemoryRepository{}

func (r *ChatMemoryRepository) Append(_ context.Context, sessionId string, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var messages []*entity.Message
	if x, found := r.cache.Get(sessionId); found {
		messages = x.([]*entity.Message)
	}

	// Prepend: most recent first
	messages = append([]*entity.Message{message}, messages...)
	if len(messages) > r.maxMessages {
		messages = messages[:r.maxMessages]
	}

	// Set resets the entry's expiration, giving the sliding TTL
	r.cache.Set(sessionId, messages, cache.DefaultExpiration)
	return nil
}

func (r *ChatMemoryRepository) Recent(_ context.Context, sessionId string, limit int) ([]*entity.Message, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, nil
	}
	messages := x.([]*entity.Message)
	if len(messages) > limit {
		messages = messages[:limit]
	}
	out := make([]*entity.Message, len(messages))
	copy(out, messages)
	return out, nil
}
