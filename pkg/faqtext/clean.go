// Package faqtext normalizes raw FAQ exports before they are indexed:
// leading [tag] markers are split off the question, and answer boilerplate
// (feedback footers, rating widgets) is stripped.
package faqtext

import (
	"regexp"
	"strings"
)

var (
	initialTagsPattern = regexp.MustCompile(`^((?:\[[^\]]+\])+)\s*`)
	tagPattern         = regexp.MustCompile(`\[([^\]]+)\]`)

	removePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)\n\n위 도움말이 도움이 되었나요\?.*`),
		regexp.MustCompile(`별점\d점`),
		regexp.MustCompile(`(?s)소중한 의견을.*`),
		regexp.MustCompile(`보내기\n*`),
		regexp.MustCompile(`(?s)도움말 닫기.*`),
		regexp.MustCompile(`(?s)관련 도움말/키워드.*?(\n\n|$)`),
	}

	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// ExtractTags splits leading "[tag1][tag2] question" markers from a question.
// Tags appearing later in the text are left alone.
func ExtractTags(text string) (tags []string, question string) {
	loc := initialTagsPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, strings.TrimSpace(text)
	}

	head := text[loc[2]:loc[3]]
	for _, m := range tagPattern.FindAllStringSubmatch(head, -1) {
		tags = append(tags, m[1])
	}
	return tags, strings.TrimSpace(text[loc[1]:])
}

// Clean strips invisible characters and answer boilerplate, and collapses
// runs of three or more newlines.
func Clean(text string) string {
	replacer := strings.NewReplacer(
		"\u00a0", " ",
		"\u200b", "",
		"\ufeff", "",
	)
	cleaned := replacer.Replace(text)

	for _, pattern := range removePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	return strings.TrimSpace(excessNewlines.ReplaceAllString(cleaned, "\n\n"))
}
