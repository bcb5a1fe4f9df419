package validator

import (
	"context"
	"fmt"

	"faq-chatbot-be/pkg/llm"
	"faq-chatbot-be/pkg/rag"
	"faq-chatbot-be/pkg/rag/prompt"
)

// Strategy is a named relevance-validation method with a fixed scoring
// weight and its own prompt template. Weights are static configuration.
type Strategy struct {
	Name     string
	Weight   float64 // in (0,1]
	Template prompt.Template
}

// ValidationResult is the outcome of running one strategy, or of combining
// several. Confidence and IsRelated always agree via the > 0.5 rule.
type ValidationResult struct {
	IsRelated  bool
	Confidence float64
	Reasoning  string
	Strategy   string
}

// Runner executes a single validation strategy against the oracle.
type Runner struct {
	llmProvider llm.LLMProvider
}

func NewRunner(llmProvider llm.LLMProvider) *Runner {
	return &Runner{llmProvider: llmProvider}
}

// Run renders the strategy prompt, makes one low-temperature oracle call and
// parses the reply. Oracle failures propagate; malformed replies do not.
func (r *Runner) Run(ctx context.Context, strategy Strategy, query, chatHistory, knowledgeContext string) (ValidationResult, error) {
	messages, err := strategy.Template.Render(map[string]string{
		"query":        query,
		"chat_history": chatHistory,
		"context":      knowledgeContext,
	})
	if err != nil {
		return ValidationResult{}, fmt.Errorf("render %s prompt: %w", strategy.Name, err)
	}

	reply, err := r.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.1))
	if err != nil {
		return ValidationResult{}, fmt.Errorf("%w: strategy %s: %v", rag.ErrOracleUnavailable, strategy.Name, err)
	}

	score := ParseReply(reply)
	return ValidationResult{
		IsRelated:  score.IsRelated,
		Confidence: score.Confidence,
		Reasoning:  score.Reasoning,
		Strategy:   strategy.Name,
	}, nil
}
