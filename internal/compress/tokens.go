// Package compress implements a deterministic prompt compression engine.
//
// A prompt is classified, looked up in a policy table, run through four
// transformation phases, nudged once toward its policy band, and scored.
package compress

import "unicode/utf8"

// charsPerToken is the fixed character-per-token approximation.
const charsPerToken = 4

// EstimateTokens approximates the token count of text as ceil(runes/4).
// Rune count (not byte count) keeps multi-byte text consistent.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + charsPerToken - 1) / charsPerToken
}

// TokenStats holds before/after token statistics.
type TokenStats struct {
	Before int
	After  int
}

// Saved returns the number of tokens saved.
func (s TokenStats) Saved() int {
	return s.Before - s.After
}

// PercentReduction returns the whole-percent reduction, truncated toward zero.
func (s TokenStats) PercentReduction() int {
	if s.Before <= 0 {
		return 0
	}
	return s.Saved() * 100 / s.Before
}

// runeLen is the length unit used by every phase.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
