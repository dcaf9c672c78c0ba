package compress

import (
	"regexp"
	"sort"
	"strings"
)

// Substitution rewrites a verbose phrase. Phrase is matched case-insensitively
// on word boundaries; an empty Replacement drops the phrase and the spacing
// after it.
type Substitution struct {
	Phrase      string `yaml:"phrase"`
	Replacement string `yaml:"replacement"`
}

// Lexicon holds the word lists and phrase tables the phases work from.
// Engines compile their own copy at construction and never mutate it.
type Lexicon struct {
	Intensifiers  []string          // dropped when they precede another word
	FillerMarkers []string          // parenthetical asides opening with these are dropped
	Phrases       []Substitution    // applied in order
	Participles   map[string]string // passive participle -> imperative verb
	Connectives   []string          // leading step connectives dropped from numbered items
	StopWords     []string          // stripped during aggressive compression
	ActionVerbs   []string          // lines starting with these count as actions
	RelatedLabels [][]string        // label groups eligible for section merging
	Placeholder   string            // contrastive sentence for pruned few-shot prompts
}

var defaultLexicon = Lexicon{
	Intensifiers:  []string{"very", "extremely", "absolutely", "really", "particularly"},
	FillerMarkers: []string{
		"i.e.", "e.g.", "in other words", "that is", "namely",
		"in order to", "which means", "meaning",
	},
	Phrases: []Substitution{
		{"it is important that you", ""},
		{"it is important that", ""},
		{"it is essential that you", ""},
		{"it is crucial that you", ""},
		{"it should be noted that", ""},
		{"please make sure to", ""},
		{"please make sure that", ""},
		{"make sure that you", ""},
		{"make sure to", ""},
		{"please ensure that", ""},
		{"you should always", "always"},
		{"i would like you to", ""},
		{"i want you to", ""},
		{"be sure to", ""},
		{"don't forget to", ""},
		{"in order to", "to"},
		{"due to the fact that", "because"},
		{"in spite of the fact that", "although"},
		{"in the event that", "if"},
		{"at this point in time", "now"},
		{"for the purpose of", "for"},
		{"with regard to", "about"},
		{"with respect to", "about"},
		{"a large number of", "many"},
		{"the majority of", "most"},
		{"is able to", "can"},
		{"are able to", "can"},
		{"has the ability to", "can"},
		{"prior to", "before"},
		{"as well as", "and"},
		{"in addition to", "besides"},
		{"a wide variety of", "varied"},
	},
	Participles: map[string]string{
		"done": "do", "performed": "perform", "completed": "complete",
		"written": "write", "created": "create", "generated": "generate",
		"included": "include", "provided": "provide", "used": "use",
		"returned": "return", "avoided": "avoid", "kept": "keep",
		"formatted": "format", "listed": "list", "explained": "explain",
		"described": "describe", "checked": "check", "reviewed": "review",
		"validated": "validate", "sorted": "sort", "highlighted": "highlight",
		"summarized": "summarize", "translated": "translate", "removed": "remove",
	},
	Connectives: []string{
		"then", "next", "after that", "afterwards", "finally",
		"first", "firstly", "second", "secondly", "lastly",
	},
	StopWords: []string{"which", "that", "where", "as well as"},
	ActionVerbs: []string{
		"add", "analyze", "analyse", "answer", "apply", "avoid", "calculate",
		"check", "classify", "compare", "create", "define", "describe", "design",
		"do", "don't", "draft", "ensure", "explain", "extract", "focus", "format",
		"generate", "give", "highlight", "identify", "include", "keep", "list",
		"make", "mention", "never", "always", "output", "produce", "provide",
		"recommend", "remove", "respond", "return", "review", "rewrite", "show",
		"sort", "suggest", "summarize", "summarise", "translate", "use",
		"validate", "write",
	},
	RelatedLabels: [][]string{
		{"style", "aesthetic", "mood", "tone", "atmosphere", "vibe"},
		{"lighting", "light", "color", "colors", "colour", "colours", "palette"},
		{"subject", "scene", "setting", "background", "environment", "location"},
		{"camera", "lens", "angle", "composition", "framing", "shot"},
		{"character", "characters", "protagonist", "cast"},
		{"plot", "story", "narrative", "arc"},
		{"format", "length", "structure"},
	},
	Placeholder: "Contrast: apply the pattern to differing inputs.",
}

// DefaultLexicon returns a copy of the built-in lexicon.
func DefaultLexicon() Lexicon {
	return defaultLexicon.clone()
}

func (l Lexicon) clone() Lexicon {
	c := Lexicon{
		Intensifiers:  append([]string(nil), l.Intensifiers...),
		FillerMarkers: append([]string(nil), l.FillerMarkers...),
		Phrases:       append([]Substitution(nil), l.Phrases...),
		Participles:   make(map[string]string, len(l.Participles)),
		Connectives:   append([]string(nil), l.Connectives...),
		StopWords:     append([]string(nil), l.StopWords...),
		ActionVerbs:   append([]string(nil), l.ActionVerbs...),
		Placeholder:   l.Placeholder,
	}
	for k, v := range l.Participles {
		c.Participles[k] = v
	}
	for _, group := range l.RelatedLabels {
		c.RelatedLabels = append(c.RelatedLabels, append([]string(nil), group...))
	}
	return c
}

type phraseRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// compiledLexicon is the regexp form of a Lexicon.
type compiledLexicon struct {
	intensifiers *regexp.Regexp
	asides       *regexp.Regexp
	phrases      []phraseRule
	passive      *regexp.Regexp
	participles  map[string]string
	connectives  *regexp.Regexp
	stopWords    *regexp.Regexp
	actionLine   *regexp.Regexp
	labelGroups  map[string]int
	placeholder  string
}

func compileLexicon(l Lexicon) *compiledLexicon {
	c := &compiledLexicon{
		participles: make(map[string]string, len(l.Participles)),
		labelGroups: make(map[string]int),
		placeholder: l.Placeholder,
	}

	if len(l.Intensifiers) > 0 {
		c.intensifiers = regexp.MustCompile(`(?i)\b(` + alternation(l.Intensifiers) + `)\s+([\p{L}\p{N}])`)
	}
	if len(l.FillerMarkers) > 0 {
		c.asides = regexp.MustCompile(`(?i)[ \t]*\(\s*(?:` + alternation(l.FillerMarkers) + `)[^()]*\)`)
	}
	for _, sub := range l.Phrases {
		expr := `(?i)\b` + phraseExpr(sub.Phrase) + `\b`
		if sub.Replacement == "" {
			expr += `[ \t]*,?[ \t]*`
		}
		c.phrases = append(c.phrases, phraseRule{
			pattern:     regexp.MustCompile(expr),
			replacement: sub.Replacement,
		})
	}
	if len(l.Participles) > 0 {
		names := make([]string, 0, len(l.Participles))
		for participle, verb := range l.Participles {
			names = append(names, participle)
			c.participles[strings.ToLower(participle)] = verb
		}
		sort.Strings(names)
		c.passive = regexp.MustCompile(`(?i)^(?:the |a |an |all |any )?(\S.{0,59}?) (?:must|should|needs to|need to|has to|have to|is to|are to) be (` +
			alternation(names) + `)\b(.*)$`)
	}
	if len(l.Connectives) > 0 {
		c.connectives = regexp.MustCompile(`(?i)^(?:` + alternation(l.Connectives) + `)(?:[ \t]*,[ \t]*|[ \t]+)`)
	}
	if len(l.StopWords) > 0 {
		c.stopWords = regexp.MustCompile(`(?i)[ \t]*\b(?:` + alternation(l.StopWords) + `)\b`)
	}
	if len(l.ActionVerbs) > 0 {
		c.actionLine = regexp.MustCompile(`(?i)^\s*(?:` + alternation(l.ActionVerbs) + `)\b`)
	}
	for i, group := range l.RelatedLabels {
		for _, label := range group {
			c.labelGroups[strings.ToLower(label)] = i
		}
	}
	return c
}

// alternation builds a regexp alternation, longest entries first so that
// multi-word phrases win over their prefixes.
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	parts := make([]string, len(sorted))
	for i, w := range sorted {
		parts[i] = phraseExpr(w)
	}
	return strings.Join(parts, "|")
}

// phraseExpr quotes a phrase and lets any whitespace run match its spaces.
func phraseExpr(phrase string) string {
	fields := strings.Fields(phrase)
	for i, f := range fields {
		fields[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(fields, `\s+`)
}
