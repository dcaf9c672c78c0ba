package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		original   string
		compressed string
		promptType PromptType
		wantScore  int
		wantFlags  []string
	}{
		{
			name:       "clean",
			original:   "Summarize the text in detail.",
			compressed: "Summarize the text.",
			promptType: TypeAnalysis,
			wantScore:  100,
			wantFlags:  []string{},
		},
		{
			name:       "headers lost",
			original:   "## A\n## B\ntext.",
			compressed: "text.",
			promptType: TypeAnalysis,
			wantScore:  80,
			wantFlags:  []string{FlagHeadersLost},
		},
		{
			name:       "truncated",
			original:   "no punctuation here",
			compressed: "no punctuation",
			promptType: TypeAnalysis,
			wantScore:  75,
			wantFlags:  []string{FlagTruncated},
		},
		{
			name:       "steps lost",
			original:   "1. a\n2. b\n3. c",
			compressed: "a, b, c.",
			promptType: TypeLogical,
			wantScore:  55,
			wantFlags:  []string{FlagActionsLost, FlagStepsLost},
		},
		{
			name:       "steps kept",
			original:   "1. a\n2. b\n3. c",
			compressed: "1. a\n2. b\n3. c.",
			promptType: TypeCode,
			wantScore:  100,
			wantFlags:  []string{},
		},
		{
			name:       "examples lost",
			original:   "Classify it.",
			compressed: "Classify it.",
			promptType: TypeFewShot,
			wantScore:  80,
			wantFlags:  []string{FlagExamplesLost},
		},
		{
			name:       "anchors",
			original:   "Edit config.yaml and run `make test`.",
			compressed: "Edit the file.",
			promptType: TypeAnalysis,
			wantScore:  100,
			wantFlags:  []string{"anchor_missing:config.yaml", "anchor_missing:make test"},
		},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := e.Policies().Lookup(tt.promptType)
			score, flags := e.validate(tt.original, tt.compressed, tt.promptType, cfg, nil)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantFlags, flags)
		})
	}
}

func TestValidate_RiskyTechniques(t *testing.T) {
	e := New()
	cfg := e.Policies().Lookup(TypeLogical)

	_, flags := e.validate("If a then b.", "a → b.", TypeLogical, cfg, []Technique{TechniqueSymbolic, TechniqueWithinBand})

	assert.Equal(t, []string{"risky:symbolic_notation"}, flags)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-10))
	assert.Equal(t, 100, clampScore(120))
	assert.Equal(t, 55, clampScore(55))
}

func TestExtractAnchors(t *testing.T) {
	input := "Read ./docs/guide.md and ~/notes/todo.txt, run `go test ./...`.\n" +
		"```python\ndef load_rules():\n    pass\n```"

	anchors := extractAnchors(input)

	assert.Contains(t, anchors, "./docs/guide.md")
	assert.Contains(t, anchors, "~/notes/todo.txt")
	assert.Contains(t, anchors, "go test ./...")
	assert.Contains(t, anchors, "load_rules")
	assert.NotContains(t, anchors, "v1.2")
}

func TestMissingAnchors_CaseInsensitive(t *testing.T) {
	assert.Empty(t, missingAnchors("Open README.md first.", "open readme.md."))
	assert.Equal(t, []string{"README.md"}, missingAnchors("Open README.md first.", "Open it."))
}
