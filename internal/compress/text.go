package compress

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var spaceRunPattern = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)

// splitLines splits on newlines after normalizing CRLF line endings.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// splitSentences breaks a line into sentences. A sentence ends at a run of
// terminal punctuation followed by whitespace or the end of the line, so
// decimals and dotted identifiers stay intact.
func splitSentences(line string) []string {
	var sentences []string
	runes := []rune(line)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminal(runes[j+1]) {
			j++
		}
		if j+1 == len(runes) || unicode.IsSpace(runes[j+1]) {
			if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = j + 1
		}
		i = j
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// collapseWhitespace squeezes space runs to one space, trims every line and
// collapses blank-line runs to a single newline separator.
func collapseWhitespace(text string) string {
	lines := splitLines(text)
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spaceRunPattern.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// ensureTerminal makes non-empty text end in terminal punctuation. A dangling
// separator is replaced rather than followed.
func ensureTerminal(text string) string {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if text == "" {
		return text
	}
	last, size := utf8.DecodeLastRuneInString(text)
	switch {
	case isTerminal(last):
		return text
	case strings.ContainsRune(",;:-–—", last):
		return strings.TrimRightFunc(text[:len(text)-size], unicode.IsSpace) + "."
	default:
		return text + "."
	}
}

// fitTerminal is ensureTerminal for text that must stay within limit runes.
// Runes before the closing mark are dropped until it fits. Single-rune text
// is left to grow.
func fitTerminal(text string, limit int) string {
	out := []rune(ensureTerminal(text))
	for len(out) > limit && len(out) > 2 {
		mark := out[len(out)-1]
		body := []rune(strings.TrimRightFunc(string(out[:len(out)-2]), unicode.IsSpace))
		out = append(body, mark)
	}
	return string(out)
}

// capitalizeFirst upper-cases the first letter of s.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// lowerFirst lower-cases the first letter of s unless it starts an acronym.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	next, _ := utf8.DecodeRuneInString(s[size:])
	if unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// startsUpper reports whether s begins with an upper-case letter.
func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// atSentenceStart reports whether byte offset i in text begins a sentence.
func atSentenceStart(text string, i int) bool {
	prefix := strings.TrimRightFunc(text[:i], func(r rune) bool { return r == ' ' || r == '\t' })
	if prefix == "" || strings.HasSuffix(prefix, "\n") {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(prefix)
	return isTerminal(last) || last == ':'
}

// trimItem strips whitespace and trailing separators from a list item.
func trimItem(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".,;:")
}

// containsFold reports whether substr occurs in s, ignoring case and spacing.
func containsFold(s, substr string) bool {
	return strings.Contains(
		strings.ToLower(spaceRunPattern.ReplaceAllString(s, " ")),
		strings.ToLower(spaceRunPattern.ReplaceAllString(substr, " ")),
	)
}
