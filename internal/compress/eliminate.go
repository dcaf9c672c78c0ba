package compress

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	topBulletPattern = regexp.MustCompile(`^[•\-*+–▪◦][ \t]+(\S.*)$`)

	// Labeled lines such as "Output: positive" repeat on purpose inside
	// few-shot examples.
	exampleLabelPattern = regexp.MustCompile(`(?i)^[ \t]*(?:input|output|answer|response|label|q|a)[ \t]*:`)
)

// eliminate drops redundancy: bullet runs become prose, repeated sentences,
// filler asides and intensifiers are removed.
func (e *Engine) eliminate(text string, _ PromptType, cfg CompressionConfig) (string, []Technique) {
	var applied []Technique

	if cfg.Allows(TechniqueListToProse) {
		if out, n := listToProse(text); n > 0 {
			text = out
			applied = append(applied, TechniqueListToProse)
		}
	}
	if cfg.Allows(TechniqueDedupSentences) {
		if out, n := dedupSentences(text); n > 0 {
			text = out
			applied = append(applied, TechniqueDedupSentences)
		}
	}
	if cfg.Allows(TechniqueAsides) {
		if out, n := e.lex.stripAsides(text); n > 0 {
			text = out
			applied = append(applied, TechniqueAsides)
		}
	}
	if cfg.Allows(TechniqueIntensifiers) {
		if out, n := e.lex.stripIntensifiers(text); n > 0 {
			text = out
			applied = append(applied, TechniqueIntensifiers)
		}
	}

	return text, applied
}

// listToProse joins each run of two or more top-level bullet lines into a
// single comma-separated sentence. Indented bullets are left for the
// restructuring phase.
func listToProse(text string) (string, int) {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	runs := 0

	for i := 0; i < len(lines); {
		if !topBulletPattern.MatchString(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		j := i
		var items []string
		for j < len(lines) {
			m := topBulletPattern.FindStringSubmatch(lines[j])
			if m == nil {
				break
			}
			if item := trimItem(m[1]); item != "" {
				items = append(items, item)
			}
			j++
		}

		if j-i < 2 || len(items) == 0 {
			out = append(out, lines[i:j]...)
		} else {
			out = append(out, strings.Join(items, ", ")+".")
			runs++
		}
		i = j
	}

	return strings.Join(out, "\n"), runs
}

// dedupSentences drops every sentence whose normalized form was already seen,
// keeping the first occurrence. Headers, example markers and labeled lines
// such as "Output: positive" are never dropped.
func dedupSentences(text string) (string, int) {
	lower := cases.Lower(language.Und)
	seen := make(map[string]bool)
	removed := 0

	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isHeaderLine(line) || isExampleMarker(line) || exampleLabelPattern.MatchString(line) {
			out = append(out, line)
			continue
		}

		sentences := splitSentences(line)
		var kept []string
		for _, sentence := range sentences {
			key := normalizeSentence(lower, sentence)
			if seen[key] {
				removed++
				continue
			}
			seen[key] = true
			kept = append(kept, sentence)
		}

		switch {
		case len(kept) == 0:
			// every sentence on the line was a repeat
		case len(kept) == len(sentences):
			out = append(out, line)
		default:
			indent := line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
			out = append(out, indent+strings.Join(kept, " "))
		}
	}

	return strings.Join(out, "\n"), removed
}

// normalizeSentence lower-cases, collapses whitespace and drops trailing
// punctuation so that trivially different repeats compare equal.
func normalizeSentence(lower cases.Caser, sentence string) string {
	normalized := strings.Join(strings.Fields(lower.String(sentence)), " ")
	return strings.TrimRight(normalized, ".!?;:,")
}

// stripAsides removes parenthetical asides that open with a filler marker.
func (c *compiledLexicon) stripAsides(text string) (string, int) {
	if c.asides == nil {
		return text, 0
	}
	n := len(c.asides.FindAllStringIndex(text, -1))
	if n == 0 {
		return text, 0
	}
	return c.asides.ReplaceAllString(text, ""), n
}

// stripIntensifiers removes intensifiers that precede another word, moving
// their capitalization onto the following word.
func (c *compiledLexicon) stripIntensifiers(text string) (string, int) {
	if c.intensifiers == nil {
		return text, 0
	}
	total := 0
	for {
		n := 0
		text = c.intensifiers.ReplaceAllStringFunc(text, func(match string) string {
			sub := c.intensifiers.FindStringSubmatch(match)
			n++
			if startsUpper(sub[1]) {
				return strings.ToUpper(sub[2])
			}
			return sub[2]
		})
		if n == 0 {
			return text, total
		}
		total += n
	}
}
