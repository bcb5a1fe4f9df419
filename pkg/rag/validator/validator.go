package validator

import (
	"context"
	"fmt"
	"log"
	"sync"

	"faq-chatbot-be/pkg/rag"
)

// Validator decides whether a query belongs to the chatbot's domain.
//
// Policy: concurrent-weighted. All strategies run concurrently, each result's
// confidence is multiplied by the strategy weight, and the maximum weighted
// confidence wins. IsRelated is recomputed from the weighted confidence with
// the > 0.5 rule so the returned flag and score always agree.
type Validator struct {
	runner     *Runner
	strategies []Strategy
	logger     *log.Logger
}

func New(runner *Runner, strategies []Strategy, logger *log.Logger) *Validator {
	return &Validator{
		runner:     runner,
		strategies: strategies,
		logger:     logger,
	}
}

// Validate is total: it always returns a result unless every strategy fails,
// in which case the oracle is considered unavailable. A single failing
// strategy contributes confidence 0 and does not abort the others.
func (v *Validator) Validate(ctx context.Context, query, chatHistory, knowledgeContext string) (ValidationResult, error) {
	results := make([]ValidationResult, len(v.strategies))
	errs := make([]error, len(v.strategies))

	var wg sync.WaitGroup
	for i, strategy := range v.strategies {
		wg.Add(1)
		go func(i int, strategy Strategy) {
			defer wg.Done()
			res, err := v.runner.Run(ctx, strategy, query, chatHistory, knowledgeContext)
			if err != nil {
				v.logger.Printf("[WARN] validation strategy %s failed: %v", strategy.Name, err)
				errs[i] = err
				results[i] = ValidationResult{Strategy: strategy.Name}
				return
			}
			results[i] = res
		}(i, strategy)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(v.strategies) {
		return ValidationResult{}, fmt.Errorf("%w: all %d validation strategies failed", rag.ErrOracleUnavailable, failed)
	}

	best := ValidationResult{Strategy: v.strategies[0].Name}
	bestWeighted := -1.0
	for i, res := range results {
		weighted := res.Confidence * v.strategies[i].Weight
		v.logger.Printf("[DEBUG] strategy %s: confidence=%.2f weight=%.2f weighted=%.2f",
			v.strategies[i].Name, res.Confidence, v.strategies[i].Weight, weighted)
		if weighted > bestWeighted {
			bestWeighted = weighted
			best = ValidationResult{
				IsRelated:  weighted > 0.5,
				Confidence: weighted,
				Reasoning:  res.Reasoning,
				Strategy:   res.Strategy,
			}
		}
	}

	return best, nil
}
