package compress

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	labeledLinePattern  = regexp.MustCompile(`^([A-Za-z][A-Za-z ]{0,24}?)[ \t]*:[ \t]+(\S.*)$`)
	numberedItemPattern = regexp.MustCompile(`^(?:(?i:step)[ \t]*(\d+)[ \t]*[:.)\-]?|(\d+)[.)])[ \t]+(\S.*)$`)
	subItemPattern      = regexp.MustCompile(`^[ \t]+(?:[•\-*+–▪◦]|[a-z][.)]|\d+[.)])[ \t]+(\S.*)$`)
	ifThenPattern       = regexp.MustCompile(`(?i)\bif[ \t]+([^,.;:!?\n]+?),?[ \t]+then[ \t]+([^.;!?\n]+)`)
	forEachPattern      = regexp.MustCompile(`(?i)\bfor (?:each|every)[ \t]+([^,.;:!?\n]+?)(?:[ \t]*,[ \t]*|[ \t]+do[ \t]+)([^.;!?\n]+)`)
)

// restructure applies the type-specific layout rewrite.
func (e *Engine) restructure(text string, t PromptType, cfg CompressionConfig) (string, []Technique) {
	switch t {
	case TypeVisual, TypeCreative:
		if !cfg.Allows(TechniqueMergeSections) {
			break
		}
		if out, n := e.lex.mergeRelatedSections(text); n > 0 {
			return out, []Technique{TechniqueMergeSections}
		}
	case TypeInstruction:
		if !cfg.Allows(TechniqueHierarchy) {
			break
		}
		if out, n := e.lex.nestNumberedLists(text); n > 0 {
			return out, []Technique{TechniqueHierarchy}
		}
	case TypeLogical, TypeCode:
		if !cfg.Allows(TechniqueSymbolic) {
			break
		}
		if out, n := toSymbolic(text); n > 0 {
			return out, []Technique{TechniqueSymbolic}
		}
	}
	return text, nil
}

// groupOf returns the relatedness group of a section label, matching the
// whole label first and then its individual words.
func (c *compiledLexicon) groupOf(label string) (int, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if g, ok := c.labelGroups[label]; ok {
		return g, true
	}
	for _, word := range strings.Fields(label) {
		if g, ok := c.labelGroups[word]; ok {
			return g, true
		}
	}
	return 0, false
}

// mergeRelatedSections folds adjacent "Label: content" lines whose labels
// belong to the same group into one "A/B: x; y" line.
func (c *compiledLexicon) mergeRelatedSections(text string) (string, int) {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	merged := 0

	for i := 0; i < len(lines); {
		m := labeledLinePattern.FindStringSubmatch(lines[i])
		if m == nil {
			out = append(out, lines[i])
			i++
			continue
		}
		group, ok := c.groupOf(m[1])
		if !ok {
			out = append(out, lines[i])
			i++
			continue
		}

		labels := []string{strings.TrimSpace(m[1])}
		contents := []string{strings.TrimSpace(m[2])}
		j := i + 1
		for j < len(lines) {
			next := labeledLinePattern.FindStringSubmatch(lines[j])
			if next == nil {
				break
			}
			if g, ok := c.groupOf(next[1]); !ok || g != group {
				break
			}
			labels = append(labels, strings.TrimSpace(next[1]))
			contents = append(contents, strings.TrimSpace(next[2]))
			j++
		}

		if len(labels) < 2 {
			out = append(out, lines[i])
			i++
			continue
		}
		for k := 0; k < len(contents)-1; k++ {
			contents[k] = trimItem(contents[k])
		}
		out = append(out, strings.Join(labels, "/")+": "+strings.Join(contents, "; "))
		merged += len(labels) - 1
		i = j
	}

	return strings.Join(out, "\n"), merged
}

// nestNumberedLists rewrites numbered lists into "N." items with "N.k"
// sub-items, dropping leading step connectives. A flat list gains its
// hierarchy from items ending in ":", whose followers become their
// sub-items, or else from a label line directly above it, which numbers the
// list as section k of the labeled lists seen so far.
func (c *compiledLexicon) nestNumberedLists(text string) (string, int) {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	changed := 0
	section := 0

	for i := 0; i < len(lines); {
		if !numberedItemPattern.MatchString(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i + 1
		for j < len(lines) && (numberedItemPattern.MatchString(lines[j]) || subItemPattern.MatchString(lines[j])) {
			j++
		}

		block := lines[i:j]
		var rewritten []string
		switch {
		case hasSubItems(block):
			rewritten = c.nestSubItems(block)
		case hasParentItems(block):
			rewritten = c.nestUnderParents(block)
		case i > 0 && isListLabel(lines[i-1]):
			section++
			rewritten = c.nestUnderLabel(block, section)
		default:
			rewritten = c.nestSubItems(block)
		}
		for k := range block {
			if rewritten[k] != block[k] {
				changed++
			}
		}
		out = append(out, rewritten...)
		i = j
	}

	return strings.Join(out, "\n"), changed
}

// nestSubItems renumbers top-level items and turns indented items below
// them into "N.k" sub-items.
func (c *compiledLexicon) nestSubItems(block []string) []string {
	out := make([]string, 0, len(block))
	n, k := 0, 0
	for idx, line := range block {
		if m := numberedItemPattern.FindStringSubmatch(line); m != nil {
			number := itemNumber(m)
			if idx == 0 || number == "1" {
				start, _ := strconv.Atoi(number)
				n = max(start-1, 0)
			}
			n++
			k = 0
			out = append(out, strconv.Itoa(n)+". "+c.dropConnective(m[3]))
			continue
		}
		m := subItemPattern.FindStringSubmatch(line)
		k++
		out = append(out, fmt.Sprintf("%d.%d %s", n, k, c.dropConnective(m[1])))
	}
	return out
}

// nestUnderParents makes every item that ends in ":" a parent and numbers
// the items after it as its sub-items.
func (c *compiledLexicon) nestUnderParents(block []string) []string {
	out := make([]string, 0, len(block))
	n, k := 0, 0
	underParent := false
	for _, line := range block {
		item := strings.TrimSpace(c.dropConnective(numberedItemPattern.FindStringSubmatch(line)[3]))
		switch {
		case strings.HasSuffix(item, ":"):
			n++
			k = 0
			underParent = true
			out = append(out, strconv.Itoa(n)+". "+item)
		case underParent:
			k++
			out = append(out, fmt.Sprintf("%d.%d %s", n, k, strings.TrimSuffix(item, ".")))
		default:
			n++
			out = append(out, strconv.Itoa(n)+". "+item)
		}
	}
	return out
}

// nestUnderLabel numbers a flat list as sub-items of labeled section n.
func (c *compiledLexicon) nestUnderLabel(block []string, n int) []string {
	out := make([]string, 0, len(block))
	for k, line := range block {
		item := strings.TrimSpace(c.dropConnective(numberedItemPattern.FindStringSubmatch(line)[3]))
		out = append(out, fmt.Sprintf("%d.%d %s", n, k+1, strings.TrimSuffix(item, ".")))
	}
	return out
}

func hasSubItems(block []string) bool {
	for _, line := range block {
		if !numberedItemPattern.MatchString(line) {
			return true
		}
	}
	return false
}

// hasParentItems reports whether an item other than the last ends in ":".
func hasParentItems(block []string) bool {
	for _, line := range block[:len(block)-1] {
		m := numberedItemPattern.FindStringSubmatch(line)
		if strings.HasSuffix(strings.TrimSpace(m[3]), ":") {
			return true
		}
	}
	return false
}

// isListLabel reports whether line can head a numbered list, as in
// "Steps:" or "## Setup".
func isListLabel(line string) bool {
	if strings.TrimSpace(line) == "" || isBulletLine(line) || isNumberedLine(line) {
		return false
	}
	return isHeaderLine(line) || strings.HasSuffix(strings.TrimSpace(line), ":")
}

func itemNumber(m []string) string {
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// dropConnective removes a leading "then", "next", "finally" and the like.
func (c *compiledLexicon) dropConnective(item string) string {
	if c.connectives == nil {
		return item
	}
	stripped := c.connectives.ReplaceAllString(item, "")
	if strings.TrimSpace(stripped) == "" {
		return item
	}
	return capitalizeFirst(stripped)
}

// toSymbolic rewrites "if X then Y" as "X → Y" and "for each X do Y" as "∀X: Y".
func toSymbolic(text string) (string, int) {
	text, n := expandKeepingCase(ifThenPattern, text, "$1 → $2")
	text, m := expandKeepingCase(forEachPattern, text, "∀$1: $2")
	return text, n + m
}

// expandKeepingCase replaces every match of re with template expanded against
// it. A capitalized match that opens a sentence keeps the sentence capitalized.
func expandKeepingCase(re *regexp.Regexp, text, template string) (string, int) {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		repl := string(re.ExpandString(nil, template, text, m))
		if atSentenceStart(text, m[0]) && startsUpper(text[m[0]:m[1]]) {
			repl = capitalizeFirst(repl)
		}
		b.WriteString(repl)
		last = m[1]
	}
	b.WriteString(text[last:])

	return b.String(), len(matches)
}
