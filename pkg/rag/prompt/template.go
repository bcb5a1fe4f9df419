package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"faq-chatbot-be/pkg/llm"
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Template is an ordered list of chat messages whose contents may contain
// named placeholders like {query}, {chat_history}, {context}, {answer}.
type Template struct {
	Messages []llm.Message
}

func New(messages ...llm.Message) Template {
	return Template{Messages: messages}
}

// Render substitutes every placeholder from vars and returns the resulting
// chat messages. An unresolved placeholder is an error, not a silent
// passthrough: a prompt with a literal "{context}" left in it would quietly
// degrade answer quality.
func (t Template) Render(vars map[string]string) ([]llm.Message, error) {
	rendered := make([]llm.Message, len(t.Messages))
	for i, msg := range t.Messages {
		content := msg.Content
		var missing []string
		content = placeholderPattern.ReplaceAllStringFunc(content, func(m string) string {
			name := strings.Trim(m, "{}")
			value, ok := vars[name]
			if !ok {
				missing = append(missing, name)
				return m
			}
			return value
		})
		if len(missing) > 0 {
			return nil, fmt.Errorf("unresolved placeholder(s) %v in message %d", missing, i)
		}
		rendered[i] = llm.Message{Role: msg.Role, Content: content}
	}
	return rendered, nil
}
