package validator

import (
	"strconv"
	"strings"
)

const parseFailureReasoning = "parse failure"

// Score is the structured form of the oracle's classification reply.
type Score struct {
	IsRelated  bool
	Confidence float64
	Reasoning  string
}

// ParseReply parses a classification reply of the form
// "<bool>,<float>[,<reasoning>]".
//
// The boolean field is advisory only: is_related is always recomputed as
// confidence > 0.5, so the reported flag and confidence can never disagree.
// Any malformed reply (missing comma, non-numeric confidence, value outside
// [0,1]) degrades to a zero-confidence unrelated score. This function is
// total; it never returns an error.
func ParseReply(reply string) Score {
	parts := strings.SplitN(reply, ",", 3)
	if len(parts) < 2 {
		return Score{IsRelated: false, Confidence: 0.0, Reasoning: parseFailureReasoning}
	}

	confidence, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || confidence < 0.0 || confidence > 1.0 {
		return Score{IsRelated: false, Confidence: 0.0, Reasoning: parseFailureReasoning}
	}

	reasoning := ""
	if len(parts) == 3 {
		reasoning = strings.TrimSpace(parts[2])
	}

	return Score{
		IsRelated:  confidence > 0.5,
		Confidence: confidence,
		Reasoning:  reasoning,
	}
}
