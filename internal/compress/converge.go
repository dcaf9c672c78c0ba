package compress

import (
	"strings"
	"unicode"
)

// converge applies the one corrective step for text against cfg's band and
// returns the adjusted text with the label of the branch taken.
func (e *Engine) converge(original, text string, t PromptType, cfg CompressionConfig, s ExtractedStructure) (string, Technique) {
	stats := TokenStats{Before: EstimateTokens(original), After: EstimateTokens(text)}
	rate := stats.PercentReduction()

	switch {
	case rate < cfg.TargetReductionMin:
		return e.aggressive(text, stats.Before, cfg), TechniqueAggressive
	case rate > cfg.TargetReductionMax:
		return rehydrate(original, text, t, s), TechniqueRehydration
	default:
		return text, TechniqueWithinBand
	}
}

// aggressive keeps header and action lines, strips stop words and truncates
// to the band's character budget. The input is returned when nothing survives.
func (e *Engine) aggressive(text string, originalTokens int, cfg CompressionConfig) string {
	lines := splitLines(text)
	var kept []string
	for _, line := range lines {
		if isHeaderLine(line) || e.lex.isActionLine(line) {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		kept = lines
	}

	out := strings.Join(kept, "\n")
	if e.lex.stopWords != nil {
		out = e.lex.stopWords.ReplaceAllString(out, "")
	}
	out = truncateToBand(collapseWhitespace(out), originalTokens, cfg)
	if strings.TrimSpace(out) == "" {
		return text
	}
	return out
}

// truncateToBand cuts text to 4*floor(tokens*(100-min)/100)-1 runes, leaving
// room for terminal punctuation. The cut moves back to a sentence boundary,
// then a word boundary, but never below the length that would push the
// reduction past the band maximum.
func truncateToBand(text string, originalTokens int, cfg CompressionConfig) string {
	budget := originalTokens*(100-cfg.TargetReductionMin)/100*charsPerToken - 1
	runes := []rune(text)
	if budget <= 0 || len(runes) <= budget {
		return text
	}

	floor := 1
	if minTokens := ceilDiv(originalTokens*(100-cfg.TargetReductionMax), 100); minTokens > 1 {
		floor = (minTokens-1)*charsPerToken + 1
	}

	for i := budget; i >= floor; i-- {
		if isTerminal(runes[i-1]) && unicode.IsSpace(runes[i]) {
			return string(runes[:i])
		}
	}
	for i := budget; i >= floor; i-- {
		if unicode.IsSpace(runes[i]) && !unicode.IsSpace(runes[i-1]) {
			return string(runes[:i])
		}
	}
	return strings.TrimRightFunc(string(runes[:budget]), unicode.IsSpace)
}

// rehydrate restores the context sentence and, for few-shot prompts that lost
// every example, the first example block. An addition is skipped when it
// would make the text longer than the original.
func rehydrate(original, text string, t PromptType, s ExtractedStructure) string {
	limit := runeLen(original)
	fits := func(candidate string) bool {
		return runeLen(ensureTerminal(collapseWhitespace(candidate))) <= limit
	}

	if ctx, ok := s.Context.Get(); ok && strings.TrimSpace(ctx) != "" && !containsFold(text, ctx) {
		if candidate := ctx + "\n" + text; fits(candidate) {
			text = candidate
		}
	}
	if t == TypeFewShot && countExamples(text) == 0 {
		if block, ok := s.FirstExample.Get(); ok {
			if candidate := ensureTerminal(text) + "\n" + block; fits(candidate) {
				text = candidate
			}
		}
	}
	return text
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
