package history

import (
	"fmt"
	"strings"

	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/rag/search"
)

// FormatChatHistory renders messages as "Role: content" lines for prompt
// injection. Messages are expected in chronological order.
func FormatChatHistory(messages []llm.Message) string {
	if len(messages) == 0 {
		return ""
	}
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = fmt.Sprintf("%s: %s", capitalize(msg.Role), msg.Content)
	}
	return strings.Join(lines, "\n")
}

// FormatKnowledgeContext renders fused retrieval results as Q/A pairs.
func FormatKnowledgeContext(results []search.FusedResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("Q: %s\nA: %s", r.Question, r.Answer)
	}
	return strings.Join(blocks, "\n\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
