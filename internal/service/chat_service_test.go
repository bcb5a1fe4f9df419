package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/contract"
	"faq-chatbot-be/internal/repository/memory"
	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/rag"
	"faq-chatbot-be/pkg/rag/search"
	"faq-chatbot-be/pkg/rag/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineLLM fakes the oracle for a whole chat turn. It dispatches on
// marker phrases of the production prompts: validation prompts mention
// 관련성, the follow-up prompt mentions 후속 질문, and only answer
// generation uses ChatStream.
type pipelineLLM struct {
	directReply   string
	indirectReply string
	answerChunks  []string
	streamErr     error
	followUpReply string
	followUpErr   error
}

func (p *pipelineLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	var all strings.Builder
	for _, msg := range history {
		all.WriteString(msg.Content)
		all.WriteString("\n")
	}
	text := all.String()

	switch {
	case strings.Contains(text, "후속 질문"):
		if p.followUpErr != nil {
			return "", p.followUpErr
		}
		return p.followUpReply, nil
	case strings.Contains(text, "직접적인 관련성"):
		return p.directReply, nil
	case strings.Contains(text, "간접적인 관련성"):
		return p.indirectReply, nil
	}
	return "", errors.New("unexpected chat prompt")
}

func (p *pipelineLLM) ChatStream(_ context.Context, _ []llm.Message, handler llm.StreamHandler, _ ...llm.Option) error {
	for _, chunk := range p.answerChunks {
		if err := handler(chunk); err != nil {
			return err
		}
	}
	return p.streamErr
}

func (p *pipelineLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// stubIndex serves one canned hit list for every collection.
type stubIndex struct {
	hits []search.IndexHit
}

func (s *stubIndex) Query(_ context.Context, _ search.CollectionKind, _ string, topK int) ([]search.IndexHit, error) {
	hits := s.hits
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (s *stubIndex) InsertBatch(context.Context, search.CollectionKind, []string, []search.EntryMetadata, []string) error {
	return nil
}

type failingMemoryRepo struct{}

func (failingMemoryRepo) Append(context.Context, string, *entity.Message) error {
	return rag.ErrSessionStoreUnavailable
}

func (failingMemoryRepo) Recent(context.Context, string, int) ([]*entity.Message, error) {
	return nil, rag.ErrSessionStoreUnavailable
}

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestValidator(oracle llm.LLMProvider) *validator.Validator {
	return validator.New(
		validator.NewRunner(oracle),
		[]validator.Strategy{
			{Name: "direct", Weight: 1.0, Template: constant.DirectValidationPrompt},
			{Name: "indirect", Weight: 0.8, Template: constant.IndirectValidationPrompt},
		},
		discard(),
	)
}

func newTestService(oracle llm.LLMProvider, index search.Index, repo contract.ChatMemoryRepository) IChatService {
	return NewChatService(
		oracle,
		newTestValidator(oracle),
		search.NewEngine(index, discard()),
		repo,
		DefaultChatPipelineConfig(),
		discard(),
	)
}

func collectEvents(t *testing.T, events <-chan dto.ChatEvent) []dto.ChatEvent {
	t.Helper()
	var out []dto.ChatEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, event)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
}

func matchedIndex() *stubIndex {
	return &stubIndex{hits: []search.IndexHit{
		{
			EntryMetadata: search.EntryMetadata{Question: "배송 조회는 어떻게 하나요?", Answer: "판매관리 메뉴에서 확인합니다."},
			Distance:      0.2,
		},
	}}
}

func TestProcessMessageStreamsAnswerAndFollowUps(t *testing.T) {
	oracle := &pipelineLLM{
		directReply:   "true,0.9",
		indirectReply: "true,0.6",
		answerChunks:  []string{"판매관리 메뉴에서 ", "배송현황을 확인할 수 있습니다."},
		followUpReply: "발송처리는 어떻게 하나요?|배송지연 시 어떻게 하나요?",
	}
	repo := memory.NewChatMemoryRepository(time.Minute, 20)
	svc := newTestService(oracle, matchedIndex(), repo)

	events, err := svc.ProcessMessage(context.Background(), "s1", "배송 조회 방법 알려줘")
	require.NoError(t, err)

	got := collectEvents(t, events)
	require.Len(t, got, 4)

	assert.Equal(t, constant.ChatEventMessage, got[0].Type)
	assert.Equal(t, "판매관리 메뉴에서 ", got[0].Content)
	assert.Equal(t, "배송현황을 확인할 수 있습니다.", got[1].Content)

	assert.Equal(t, constant.ChatEventFollowUp, got[2].Type)
	assert.Equal(t, []string{"발송처리는 어떻게 하나요?", "배송지연 시 어떻게 하나요?"}, got[2].FollowUps)

	done := got[3]
	assert.Equal(t, constant.ChatEventDone, done.Type)
	assert.Equal(t, constant.DoneSentinel, done.Content)

	// Both turns persisted, most recent first
	stored, err := repo.Recent(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, constant.ChatMessageRoleAssistant, stored[0].Role)
	assert.Equal(t, "판매관리 메뉴에서 배송현황을 확인할 수 있습니다.", stored[0].Content)
	assert.Equal(t, constant.ChatMessageRoleUser, stored[1].Role)
}

func TestProcessMessageOutOfDomain(t *testing.T) {
	oracle := &pipelineLLM{
		directReply:   "false,0.1",
		indirectReply: "false,0.2",
		followUpReply: "스마트스토어 개설 방법이 궁금하신가요?",
	}
	repo := memory.NewChatMemoryRepository(time.Minute, 20)
	svc := newTestService(oracle, matchedIndex(), repo)

	events, err := svc.ProcessMessage(context.Background(), "s1", "오늘 날씨 어때?")
	require.NoError(t, err)

	got := collectEvents(t, events)
	require.Len(t, got, 3)

	assert.Equal(t, constant.ChatEventMessage, got[0].Type)
	assert.Equal(t, constant.OutOfDomainMessage, got[0].Content)

	// Rejected queries still get redirecting follow-ups
	assert.Equal(t, constant.ChatEventFollowUp, got[1].Type)
	assert.Equal(t, []string{"스마트스토어 개설 방법이 궁금하신가요?"}, got[1].FollowUps)
	assert.Equal(t, constant.ChatEventDone, got[2].Type)

	// The rejection notice is not an assistant turn; only the user turn persists
	stored, err := repo.Recent(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, stored[0].Role)
}

func TestProcessMessageNoRetrievalMatch(t *testing.T) {
	oracle := &pipelineLLM{
		directReply:   "true,0.9",
		indirectReply: "true,0.6",
	}
	repo := memory.NewChatMemoryRepository(time.Minute, 20)
	svc := newTestService(oracle, &stubIndex{}, repo)

	events, err := svc.ProcessMessage(context.Background(), "s1", "아주 생소한 질문")
	require.NoError(t, err)

	got := collectEvents(t, events)
	require.Len(t, got, 2)

	assert.Equal(t, constant.UnrecognizedMessage, got[0].Content)
	assert.Equal(t, constant.ChatEventDone, got[1].Type)
	assert.Empty(t, got[1].FollowUps)
}

func TestProcessMessageStreamFailureDropsPartialAnswer(t *testing.T) {
	oracle := &pipelineLLM{
		directReply:   "true,0.9",
		indirectReply: "true,0.6",
		answerChunks:  []string{"판매관리 메뉴"},
		streamErr:     errors.New("connection reset"),
	}
	repo := memory.NewChatMemoryRepository(time.Minute, 20)
	svc := newTestService(oracle, matchedIndex(), repo)

	events, err := svc.ProcessMessage(context.Background(), "s1", "배송 조회 방법")
	require.NoError(t, err)

	got := collectEvents(t, events)
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, constant.ChatEventError, last.Type)
	assert.Equal(t, constant.GenerationFailedMessage, last.Content)

	// Partial answer never persisted
	stored, err := repo.Recent(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, stored[0].Role)
}

func TestProcessMessageFollowUpFailureDegrades(t *testing.T) {
	oracle := &pipelineLLM{
		directReply:   "true,0.9",
		indirectReply: "true,0.6",
		answerChunks:  []string{"답변입니다."},
		followUpErr:   errors.New("oracle busy"),
	}
	repo := memory.NewChatMemoryRepository(time.Minute, 20)
	svc := newTestService(oracle, matchedIndex(), repo)

	events, err := svc.ProcessMessage(context.Background(), "s1", "배송 조회 방법")
	require.NoError(t, err)

	got := collectEvents(t, events)
	done := got[len(got)-1]
	assert.Equal(t, constant.ChatEventDone, done.Type)
	assert.Empty(t, done.FollowUps)

	// The answer itself still succeeded and persisted
	stored, err := repo.Recent(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 2)
}

func TestProcessMessageSessionStoreFailure(t *testing.T) {
	oracle := &pipelineLLM{directReply: "true,0.9", indirectReply: "true,0.6"}
	svc := newTestService(oracle, matchedIndex(), failingMemoryRepo{})

	_, err := svc.ProcessMessage(context.Background(), "s1", "배송 조회")
	require.Error(t, err)
	assert.ErrorIs(t, err, rag.ErrSessionStoreUnavailable)
}

func TestGetWelcomeMessageMintsUniqueSessions(t *testing.T) {
	svc := newTestService(&pipelineLLM{}, &stubIndex{}, memory.NewChatMemoryRepository(time.Minute, 20))

	first := svc.GetWelcomeMessage()
	second := svc.GetWelcomeMessage()

	assert.Equal(t, constant.WelcomeMessage, first.Content)
	assert.NotEmpty(t, first.SessionId)
	assert.NotEqual(t, first.SessionId, second.SessionId)
}

func TestSplitFollowUps(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "pipe separated",
			reply: "질문1|질문2",
			want:  []string{"질문1", "질문2"},
		},
		{
			name:  "newline separated capped at two",
			reply: "질문1\n질문2\n질문3",
			want:  []string{"질문1", "질문2"},
		},
		{
			name:  "mixed separators with blanks",
			reply: " 질문1 |\n| 질문2 ",
			want:  []string{"질문1", "질문2"},
		},
		{
			name:  "single question",
			reply: "질문1",
			want:  []string{"질문1"},
		},
		{
			name:  "empty reply",
			reply: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFollowUps(tt.reply))
		})
	}
}
