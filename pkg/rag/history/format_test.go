package history

import (
	"testing"

	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/rag/search"

	"github.com/stretchr/testify/assert"
)

func TestFormatChatHistory(t *testing.T) {
	messages := []llm.Message{
		{Role: "user", Content: "배송 조회는 어떻게 하나요?"},
		{Role: "assistant", Content: "판매관리 메뉴에서 확인할 수 있습니다."},
	}

	got := FormatChatHistory(messages)
	want := "User: 배송 조회는 어떻게 하나요?\nAssistant: 판매관리 메뉴에서 확인할 수 있습니다."
	assert.Equal(t, want, got)
}

func TestFormatChatHistoryEmpty(t *testing.T) {
	assert.Equal(t, "", FormatChatHistory(nil))
}

func TestFormatKnowledgeContext(t *testing.T) {
	results := []search.FusedResult{
		{Question: "q1", Answer: "a1", Score: 1.2},
		{Question: "q2", Answer: "a2", Score: 0.8},
	}

	got := FormatKnowledgeContext(results)
	assert.Equal(t, "Q: q1\nA: a1\n\nQ: q2\nA: a2", got)
}
