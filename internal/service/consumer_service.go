package service

import (
	"context"
	"encoding/json"
	"fmt"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/faqtext"
	"faq-chatbot-be/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains queued bulk-load requests and writes them into the
// similarity index. One message carries one whole corpus; the fusion engine
// splits it into per-collection batches.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	fusionEngine *search.Engine
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	fusionEngine *search.Engine,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		fusionEngine: fusionEngine,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.BulkLoadRequest
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal bulk load message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become valid, do not retry
		return
	}

	cs.logger.Info("ConsumerService", fmt.Sprintf("Indexing %d knowledge entries", len(payload.Entries)), nil)

	entries := make([]search.KnowledgeEntry, len(payload.Entries))
	for i, e := range payload.Entries {
		extraTags, question := faqtext.ExtractTags(e.Question)
		entries[i] = search.KnowledgeEntry{
			Question: question,
			Answer:   faqtext.Clean(e.Answer),
			Tags:     append(e.Tags, extraTags...),
		}
	}

	if err := cs.fusionEngine.BulkAdd(ctx, entries); err != nil {
		cs.logger.Error("ConsumerService", "Bulk add failed", map[string]interface{}{"error": err.Error()})
		msg.Nack() // index or embedder hiccup, retriable
		return
	}

	cs.logger.Info("ConsumerService",
		fmt.Sprintf("Indexed %d entries across %d collections", len(entries), len(search.Collections)), nil)
	msg.Ack()
}
