package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListToProse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		runs  int
	}{
		{
			name:  "bullet run",
			input: "- apples\n- pears\nend",
			want:  "apples, pears.\nend",
			runs:  1,
		},
		{
			name:  "unicode bullets with punctuation",
			input: "• Point 1\n• Point 2;\n• Point 3.",
			want:  "Point 1, Point 2, Point 3.",
			runs:  1,
		},
		{
			name:  "single bullet untouched",
			input: "- only one\nprose",
			want:  "- only one\nprose",
		},
		{
			name:  "indented bullets untouched",
			input: "  - nested a\n  - nested b",
			want:  "  - nested a\n  - nested b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, runs := listToProse(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.runs, runs)
		})
	}
}

func TestDedupSentences(t *testing.T) {
	input := "Always cite your sources here. Always cite your sources here.\nAlways cite  your sources here!\nOutput: yes\nOutput: yes"
	got, removed := dedupSentences(input)

	assert.Equal(t, "Always cite your sources here.\nOutput: yes\nOutput: yes", got)
	assert.Equal(t, 2, removed)
}

func TestDedupSentences_ShortRepeats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		removed int
	}{
		{
			name:    "short sentences on one line",
			input:   "Be concise. Use plain words. Be concise. Use plain words.",
			want:    "Be concise. Use plain words.",
			removed: 2,
		},
		{
			name:    "short repeat on its own line",
			input:   "Be brief.\nCite sources.\nBe brief!",
			want:    "Be brief.\nCite sources.",
			removed: 1,
		},
		{
			name:    "labeled example lines kept",
			input:   "Input: great\nOutput: positive\nInput: awful\nOutput: negative\nInput: superb\nOutput: positive",
			want:    "Input: great\nOutput: positive\nInput: awful\nOutput: negative\nInput: superb\nOutput: positive",
			removed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := dedupSentences(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.removed, removed)
		})
	}
}

func TestDedupSentences_KeepsHeaders(t *testing.T) {
	input := "## Rules for the reply\nBe kind to every reader.\n## Rules for the reply"
	got, removed := dedupSentences(input)

	assert.Equal(t, input, got)
	assert.Zero(t, removed)
}

func TestStripAsides(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	got, n := lex.stripAsides("Summarize the text (i.e. the article above) in two lines.")
	assert.Equal(t, "Summarize the text in two lines.", got)
	assert.Equal(t, 1, n)

	got, n = lex.stripAsides("Use the API (version 2) only.")
	assert.Equal(t, "Use the API (version 2) only.", got)
	assert.Zero(t, n)
}

func TestStripIntensifiers(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	tests := []struct {
		input string
		want  string
	}{
		{"Be very careful.", "Be careful."},
		{"Very careful work.", "Careful work."},
		{"It is really very important.", "It is important."},
		{"The result must be absolutely precise.", "The result must be precise."},
		{"Nothing to strip.", "Nothing to strip."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, _ := lex.stripIntensifiers(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEliminate_RespectsPolicy(t *testing.T) {
	e := New()
	cfg := CompressionConfig{AllowedTechniques: []Technique{TechniqueIntensifiers}}

	got, applied := e.eliminate("- a\n- b\nBe very brief.", TypeAnalysis, cfg)

	assert.Equal(t, "- a\n- b\nBe brief.", got)
	assert.Equal(t, []Technique{TechniqueIntensifiers}, applied)
}
