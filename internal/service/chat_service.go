package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/contract"
	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/rag/history"
	"faq-chatbot-be/pkg/rag/search"
	"faq-chatbot-be/pkg/rag/validator"

	"github.com/google/uuid"
)

const maxFollowUps = 2

// IChatService defines the chat pipeline interface
type IChatService interface {
	// ProcessMessage runs the pre-stream stages synchronously (history,
	// retrieval, user-turn save, validation) and returns a channel that
	// streams the remainder: answer fragments, an optional follow_up event,
	// then the done sentinel. The channel closes when the pipeline ends or
	// ctx is cancelled.
	ProcessMessage(ctx context.Context, sessionId, message string) (<-chan dto.ChatEvent, error)
	GetWelcomeMessage() *dto.WelcomeResponse
}

// ChatPipelineConfig bounds the orchestrator's collaborator calls.
type ChatPipelineConfig struct {
	HistoryLimit      int
	RetrievalLimit    int
	DistanceThreshold float64
	FollowUpContext   int // fused results fed to follow-up generation
	ValidationTimeout time.Duration
	RetrievalTimeout  time.Duration
}

func DefaultChatPipelineConfig() ChatPipelineConfig {
	return ChatPipelineConfig{
		HistoryLimit:      10,
		RetrievalLimit:    10,
		DistanceThreshold: 1.0,
		FollowUpContext:   3,
		ValidationTimeout: 20 * time.Second,
		RetrievalTimeout:  10 * time.Second,
	}
}

// chatService sequences one chat turn: LoadHistory -> Retrieve ->
// SaveUserTurn -> Validate -> {Reject | Unmatched | Answer} ->
// SaveAssistantTurn -> FollowUp -> Done. Strictly linear, no branching back.
type chatService struct {
	llmProvider  llm.LLMProvider
	relValidator *validator.Validator
	fusionEngine *search.Engine
	memoryRepo   contract.ChatMemoryRepository
	cfg          ChatPipelineConfig
	llmLogger    *log.Logger
}

func NewChatService(
	llmProvider llm.LLMProvider,
	relValidator *validator.Validator,
	fusionEngine *search.Engine,
	memoryRepo contract.ChatMemoryRepository,
	cfg ChatPipelineConfig,
	llmLogger *log.Logger,
) IChatService {
	return &chatService{
		llmProvider:  llmProvider,
		relValidator: relValidator,
		fusionEngine: fusionEngine,
		memoryRepo:   memoryRepo,
		cfg:          cfg,
		llmLogger:    llmLogger,
	}
}

func (cs *chatService) GetWelcomeMessage() *dto.WelcomeResponse {
	return &dto.WelcomeResponse{
		Content:   constant.WelcomeMessage,
		SessionId: uuid.NewString(),
	}
}

func (cs *chatService) ProcessMessage(ctx context.Context, sessionId, message string) (<-chan dto.ChatEvent, error) {
	// LoadHistory: stored most-recent-first, reversed to chronological for
	// prompt use
	stored, err := cs.memoryRepo.Recent(ctx, sessionId, cs.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}
	chatHistory := toChronological(stored)

	// Retrieve
	retrieveCtx, cancelRetrieve := context.WithTimeout(ctx, cs.cfg.RetrievalTimeout)
	defer cancelRetrieve()
	similar, err := cs.fusionEngine.FindSimilar(retrieveCtx, message, cs.cfg.RetrievalLimit, cs.cfg.DistanceThreshold)
	if err != nil {
		return nil, err
	}

	// SaveUserTurn: history must reflect everything the user asked, even
	// queries rejected later
	userTurn := &entity.Message{Content: message, Role: constant.ChatMessageRoleUser}
	if err := cs.memoryRepo.Append(ctx, sessionId, userTurn); err != nil {
		return nil, err
	}

	// Validate
	formattedHistory := history.FormatChatHistory(chatHistory)
	formattedContext := history.FormatKnowledgeContext(similar)

	validateCtx, cancelValidate := context.WithTimeout(ctx, cs.cfg.ValidationTimeout)
	defer cancelValidate()
	result, err := cs.relValidator.Validate(validateCtx, message, formattedHistory, formattedContext)
	if err != nil {
		return nil, err
	}
	cs.llmLogger.Printf("[INFO] validation: strategy=%s related=%t confidence=%.2f",
		result.Strategy, result.IsRelated, result.Confidence)

	events := make(chan dto.ChatEvent)
	go func() {
		defer close(events)
		cs.respond(ctx, events, sessionId, message, similar, formattedHistory, formattedContext, result)
	}()
	return events, nil
}

// respond runs the streaming stages. Sends block until the transport
// consumes them, so a disconnected client cancels the whole pipeline
// through ctx instead of leaking this goroutine.
func (cs *chatService) respond(
	ctx context.Context,
	events chan<- dto.ChatEvent,
	sessionId, message string,
	similar []search.FusedResult,
	formattedHistory, formattedContext string,
	result validator.ValidationResult,
) {
	emit := func(event dto.ChatEvent) bool {
		select {
		case events <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}

	// Out-of-domain: fixed notice, then redirecting follow-ups built
	// without an answer so they steer back into supported topics.
	if !result.IsRelated {
		if !emit(dto.ChatEvent{Type: constant.ChatEventMessage, Content: constant.OutOfDomainMessage}) {
			return
		}
		cs.finish(emit, cs.generateFollowUps(ctx, message, "", formattedHistory, similar))
		return
	}

	// In-domain but nothing matched: notice only, no follow-ups because
	// there is no knowledge context to ground them on.
	if len(similar) == 0 {
		if !emit(dto.ChatEvent{Type: constant.ChatEventMessage, Content: constant.UnrecognizedMessage}) {
			return
		}
		cs.finish(emit, nil)
		return
	}

	answer, err := cs.streamAnswer(ctx, message, formattedHistory, formattedContext, emit)
	if err != nil {
		// Partial answers never reach the session store. On client
		// disconnect there is nobody left to notify either.
		if ctx.Err() == nil {
			cs.llmLogger.Printf("[ERROR] answer stream failed: %v", err)
			emit(dto.ChatEvent{Type: constant.ChatEventError, Content: constant.GenerationFailedMessage})
		}
		return
	}

	assistantTurn := &entity.Message{Content: answer, Role: constant.ChatMessageRoleAssistant}
	if err := cs.memoryRepo.Append(ctx, sessionId, assistantTurn); err != nil {
		cs.llmLogger.Printf("[ERROR] persist assistant turn: %v", err)
		emit(dto.ChatEvent{Type: constant.ChatEventError, Content: constant.GenerationFailedMessage})
		return
	}

	cs.finish(emit, cs.generateFollowUps(ctx, message, answer, formattedHistory, similar))
}

// finish emits the optional follow_up frame and then the done sentinel.
func (cs *chatService) finish(emit func(dto.ChatEvent) bool, followUps []string) {
	if len(followUps) > 0 {
		if !emit(dto.ChatEvent{Type: constant.ChatEventFollowUp, FollowUps: followUps}) {
			return
		}
	}
	emit(dto.ChatEvent{Type: constant.ChatEventDone, Content: constant.DoneSentinel})
}

// streamAnswer forwards each oracle fragment as a message event and returns
// the accumulated full answer.
func (cs *chatService) streamAnswer(
	ctx context.Context,
	message, formattedHistory, formattedContext string,
	emit func(dto.ChatEvent) bool,
) (string, error) {
	messages, err := constant.FAQAnswerPrompt.Render(map[string]string{
		"query":        message,
		"chat_history": formattedHistory,
		"context":      formattedContext,
	})
	if err != nil {
		return "", err
	}

	var full strings.Builder
	err = cs.llmProvider.ChatStream(ctx, messages, func(chunk string) error {
		full.WriteString(chunk)
		if !emit(dto.ChatEvent{Type: constant.ChatEventMessage, Content: chunk}) {
			return errClientGone
		}
		return nil
	}, llm.WithTemperature(0.2))
	if err != nil {
		return "", err
	}
	return full.String(), nil
}

// generateFollowUps asks the oracle for up to two next questions grounded on
// the top fused results. Failures degrade to no suggestions; the turn itself
// already succeeded.
func (cs *chatService) generateFollowUps(
	ctx context.Context,
	message, answer, formattedHistory string,
	similar []search.FusedResult,
) []string {
	topContext := similar
	if len(topContext) > cs.cfg.FollowUpContext {
		topContext = topContext[:cs.cfg.FollowUpContext]
	}

	messages, err := constant.FollowUpPrompt.Render(map[string]string{
		"query":        message,
		"answer":       answer,
		"chat_history": formattedHistory,
		"context":      history.FormatKnowledgeContext(topContext),
	})
	if err != nil {
		cs.llmLogger.Printf("[WARN] follow-up prompt: %v", err)
		return nil
	}

	reply, err := cs.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.7))
	if err != nil {
		cs.llmLogger.Printf("[WARN] follow-up generation skipped: %v", err)
		return nil
	}
	return splitFollowUps(reply)
}

func toChronological(stored []*entity.Message) []llm.Message {
	out := make([]llm.Message, len(stored))
	for i, msg := range stored {
		out[len(stored)-1-i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}
	return out
}

func splitFollowUps(reply string) []string {
	var followUps []string
	for _, line := range strings.Split(reply, "\n") {
		for _, part := range strings.Split(line, "|") {
			if q := strings.TrimSpace(part); q != "" {
				followUps = append(followUps, q)
			}
		}
		if len(followUps) >= maxFollowUps {
			break
		}
	}
	if len(followUps) > maxFollowUps {
		followUps = followUps[:maxFollowUps]
	}
	return followUps
}

var errClientGone = errors.New("client disconnected")
