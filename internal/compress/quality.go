package compress

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation flags raised on a Result.
const (
	FlagHeadersLost  = "headers_lost"
	FlagActionsLost  = "actions_lost"
	FlagTruncated    = "truncated"
	FlagStepsLost    = "steps_lost"
	FlagExamplesLost = "examples_lost"
	FlagBelowBand    = "below_band"
	FlagAboveBand    = "above_band"

	// FlagRiskyPrefix marks a risky technique, e.g. "risky:symbolic_notation".
	FlagRiskyPrefix = "risky:"
	// FlagAnchorMissingPrefix marks a lost file path, code span or identifier.
	FlagAnchorMissingPrefix = "anchor_missing:"
)

const (
	headersPenalty  = 20
	actionsPenalty  = 15
	truncPenalty    = 25
	stepsPenalty    = 30
	examplesPenalty = 20
)

// validate scores compressed against original. Penalties are independent and
// the score is clamped to [0, 100]. Flags are sorted and unique.
func (e *Engine) validate(original, compressed string, t PromptType, cfg CompressionConfig, applied []Technique) (int, []string) {
	score := 100
	flags := make(map[string]bool)
	penalize := func(flag string, points int) {
		score -= points
		flags[flag] = true
	}

	if countLines(original, isHeaderLine) >= 2 && countLines(compressed, isHeaderLine) < 2 {
		penalize(FlagHeadersLost, headersPenalty)
	}
	if countLines(original, e.lex.isActionLine) >= 2 && countLines(compressed, e.lex.isActionLine) < 2 {
		penalize(FlagActionsLost, actionsPenalty)
	}
	if !endsTerminal(compressed) {
		penalize(FlagTruncated, truncPenalty)
	}

	switch t {
	case TypeLogical, TypeCode:
		before := countLines(original, isNumberedLine)
		after := countLines(compressed, isNumberedLine)
		if after*10 < before*7 {
			penalize(FlagStepsLost, stepsPenalty)
		}
	case TypeFewShot:
		if countExamples(compressed) < 2 {
			penalize(FlagExamplesLost, examplesPenalty)
		}
	}

	for _, technique := range applied {
		if cfg.IsRisky(technique) {
			flags[FlagRiskyPrefix+technique.Code()] = true
		}
	}
	for _, anchor := range missingAnchors(original, compressed) {
		flags[FlagAnchorMissingPrefix+anchor] = true
	}

	return clampScore(score), sortedFlags(flags)
}

func endsTerminal(text string) bool {
	last, _ := utf8.DecodeLastRuneInString(strings.TrimRightFunc(text, unicode.IsSpace))
	return isTerminal(last)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func sortedFlags(set map[string]bool) []string {
	flags := make([]string, 0, len(set))
	for f := range set {
		flags = append(flags, f)
	}
	sort.Strings(flags)
	return flags
}
