package service

import (
	"context"
	"encoding/json"

	"faq-chatbot-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IKnowledgeService accepts FAQ entries for indexing. Indexing embeds every
// entry three times, so the request is queued and the consumer does the slow
// work off the request path.
type IKnowledgeService interface {
	BulkLoad(ctx context.Context, req *dto.BulkLoadRequest) (*dto.BulkLoadResponse, error)
}

type knowledgeService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewKnowledgeService(pubSub *gochannel.GoChannel, topicName string) IKnowledgeService {
	return &knowledgeService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ks *knowledgeService) BulkLoad(_ context.Context, req *dto.BulkLoadRequest) (*dto.BulkLoadResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := ks.pubSub.Publish(ks.topicName, msg); err != nil {
		return nil, err
	}

	return &dto.BulkLoadResponse{Accepted: len(req.Entries)}, nil
}
