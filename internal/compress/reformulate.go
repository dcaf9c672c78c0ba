package compress

import (
	"regexp"
	"strings"
)

var (
	contrastPattern = regexp.MustCompile(`(?i)\bon the one hand,?[ \t]+([^.;!?\n]+?)[ \t]*[,;][ \t]*(?:but[ \t]+|while[ \t]+)?on the other(?: hand)?,?[ \t]+([^.!?\n]+)`)
	thenWithPattern = regexp.MustCompile(`(?i)^(\w+)[ \t]+(.+?)[ \t]+with[ \t]+(.+?),[ \t]*then[ \t]+(\w+)[ \t]+(.+?)[ \t]+with[ \t]+(.+?)([.!?]?)$`)
	parallelPattern = regexp.MustCompile(`(?i)^(\w+)[ \t]+(.+?)[ \t]+(to|with|on|for|in|from|into)[ \t]+([^,]+?)([.!?]?)$`)
)

// reformulate rewrites verbose wording into shorter equivalents.
func (e *Engine) reformulate(text string, t PromptType, cfg CompressionConfig) (string, []Technique) {
	var applied []Technique

	if cfg.Allows(TechniquePhrases) {
		if out, n := e.lex.condensePhrases(text); n > 0 {
			text = out
			applied = append(applied, TechniquePhrases)
		}
	}
	if cfg.Allows(TechniquePassive) {
		if out, n := e.lex.flattenPassive(text); n > 0 {
			text = out
			applied = append(applied, TechniquePassive)
		}
	}
	if (t == TypeLogical || t == TypeCode) && cfg.Allows(TechniqueAbstraction) {
		if out, n := abstractPatterns(text); n > 0 {
			text = out
			applied = append(applied, TechniqueAbstraction)
		}
	}

	return text, applied
}

// condensePhrases applies the contrast rewrite and then the phrase table.
func (c *compiledLexicon) condensePhrases(text string) (string, int) {
	total := 0
	if locs := contrastPattern.FindAllStringIndex(text, -1); len(locs) > 0 {
		text = contrastPattern.ReplaceAllString(text, "$1 vs $2")
		total += len(locs)
	}
	for _, rule := range c.phrases {
		var n int
		text, n = replaceKeepingCase(rule.pattern, text, rule.replacement)
		total += n
	}
	return text, total
}

// replaceKeepingCase replaces every match of re with repl. When a capitalized
// match opens a sentence, the capital moves to whatever now opens it.
func replaceKeepingCase(re *regexp.Regexp, text, repl string) (string, int) {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, 0
	}

	var b strings.Builder
	last := 0
	capNext := false
	write := func(segment string) {
		if capNext && segment != "" {
			segment = capitalizeFirst(segment)
			capNext = false
		}
		b.WriteString(segment)
	}

	for _, loc := range locs {
		write(text[last:loc[0]])
		capital := atSentenceStart(text, loc[0]) && startsUpper(text[loc[0]:loc[1]])
		switch {
		case repl == "":
			capNext = capNext || capital
		case capital:
			write(capitalizeFirst(repl))
		default:
			write(repl)
		}
		last = loc[1]
	}
	write(text[last:])

	return b.String(), len(locs)
}

// flattenPassive turns "The X must be written ..." into "Write X ...".
// Only plain prose lines are rewritten; list items and headers keep their form.
func (c *compiledLexicon) flattenPassive(text string) (string, int) {
	if c.passive == nil {
		return text, 0
	}

	lines := splitLines(text)
	n := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" || isHeaderLine(line) || isBulletLine(line) || isNumberedLine(line) {
			continue
		}
		sentences := splitSentences(line)
		changed := false
		for j, sentence := range sentences {
			m := c.passive.FindStringSubmatch(sentence)
			if m == nil {
				continue
			}
			verb, ok := c.participles[strings.ToLower(m[2])]
			if !ok {
				continue
			}
			sentences[j] = capitalizeFirst(verb) + " " + lowerFirst(m[1]) + m[3]
			changed = true
			n++
		}
		if changed {
			lines[i] = strings.Join(sentences, " ")
		}
	}
	return strings.Join(lines, "\n"), n
}

// abstractPatterns generalizes repeated instruction shapes: "do A with T,
// then do B with T" becomes "With T: do A, do B", and consecutive lines that
// share verb, preposition and target are merged into one line.
func abstractPatterns(text string) (string, int) {
	n := 0
	lines := splitLines(text)
	for i, line := range lines {
		sentences := splitSentences(line)
		changed := false
		for j, sentence := range sentences {
			m := thenWithPattern.FindStringSubmatch(sentence)
			if m == nil || !strings.EqualFold(strings.TrimSpace(m[3]), strings.TrimSpace(m[6])) {
				continue
			}
			sentences[j] = "With " + m[3] + ": " + lowerFirst(m[1]) + " " + m[2] + ", " + lowerFirst(m[4]) + " " + m[5] + m[7]
			changed = true
			n++
		}
		if changed {
			lines[i] = strings.Join(sentences, " ")
		}
	}

	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		m := parallelLine(lines[i])
		if m == nil {
			out = append(out, lines[i])
			i++
			continue
		}
		objects := []string{m[2]}
		j := i + 1
		for j < len(lines) {
			next := parallelLine(lines[j])
			if next == nil || !strings.EqualFold(next[1], m[1]) || !strings.EqualFold(next[3], m[3]) || !strings.EqualFold(next[4], m[4]) {
				break
			}
			objects = append(objects, next[2])
			j++
		}
		if len(objects) < 2 {
			out = append(out, lines[i])
			i++
			continue
		}
		punct := parallelLine(lines[j-1])[5]
		out = append(out, m[1]+" "+strings.Join(objects, ", ")+" "+m[3]+" "+m[4]+punct)
		n += len(objects) - 1
		i = j
	}

	return strings.Join(out, "\n"), n
}

// parallelLine matches a single-sentence "Verb object prep target" line.
func parallelLine(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || isHeaderLine(line) || isBulletLine(line) || isNumberedLine(line) || len(splitSentences(line)) != 1 {
		return nil
	}
	return parallelPattern.FindStringSubmatch(line)
}
