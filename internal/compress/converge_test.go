package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToBand(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine."

	tests := []struct {
		name string
		cfg  CompressionConfig
		want string
	}{
		{
			name: "sentence boundary inside band",
			cfg:  CompressionConfig{TargetReductionMin: 25, TargetReductionMax: 50},
			want: "One two three. Four five six.",
		},
		{
			name: "word boundary when sentence cut leaves band",
			cfg:  CompressionConfig{TargetReductionMin: 25, TargetReductionMax: 30},
			want: "One two three. Four five six. Seven",
		},
		{
			name: "under budget",
			cfg:  CompressionConfig{TargetReductionMin: 0, TargetReductionMax: 10},
			want: text,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateToBand(text, 12, tt.cfg))
		})
	}
}

func TestAggressive_KeepsHeadersAndActions(t *testing.T) {
	e := New()
	cfg := CompressionConfig{TargetReductionMin: 25, TargetReductionMax: 50}
	input := "## Goal\nSome narrative prose.\n- Check the totals which were reported.\nAnother narrative line."

	got := e.aggressive(input, 100, cfg)

	assert.Equal(t, "## Goal\n- Check the totals were reported.", got)
}

func TestAggressive_KeepsAllLinesWhenNoneMatch(t *testing.T) {
	e := New()
	cfg := CompressionConfig{TargetReductionMin: 25, TargetReductionMax: 50}

	got := e.aggressive("Plain prose that wanders.", 100, cfg)

	assert.Equal(t, "Plain prose wanders.", got)
}

func TestRehydrate_PrependsMissingContext(t *testing.T) {
	original := "Context: we ship weekly.\nWrite the release notes for version two of the app."
	s := ExtractStructure(original)

	got := rehydrate(original, "Write release notes.", TypeAnalysis, s)
	assert.Equal(t, "we ship weekly.\nWrite release notes.", got)

	got = rehydrate(original, "We ship weekly. Write release notes.", TypeAnalysis, s)
	assert.Equal(t, "We ship weekly. Write release notes.", got, "context already present")
}

func TestRehydrate_NeverGrowsPastOriginal(t *testing.T) {
	s := ExtractedStructure{Context: Present("A context sentence that is far too long to fit back in.")}
	original := "Short original prompt."

	got := rehydrate(original, "Short.", TypeAnalysis, s)
	assert.Equal(t, "Short.", got)
}

func TestRehydrate_RestoresFirstExample(t *testing.T) {
	original := reviewExamples
	s := ExtractStructure(original)

	got := rehydrate(original, "Label each review.", TypeFewShot, s)

	assert.True(t, strings.HasSuffix(got, "Example 1: Input: I loved this movie.\nOutput: positive"))
	assert.Equal(t, 1, countExamples(got))
}

func TestConverge_Branches(t *testing.T) {
	e := New()
	cfg := CompressionConfig{TargetReductionMin: 25, TargetReductionMax: 50}
	original := strings.Repeat("abcd", 25) // 100 runes, 25 tokens
	s := ExtractedStructure{}

	_, branch := e.converge(original, strings.Repeat("abcd", 15), TypeAnalysis, cfg, s)
	assert.Equal(t, TechniqueWithinBand, branch)

	_, branch = e.converge(original, strings.Repeat("abcd", 5), TypeAnalysis, cfg, s)
	assert.Equal(t, TechniqueRehydration, branch)

	_, branch = e.converge(original, strings.Repeat("abcd", 24), TypeAnalysis, cfg, s)
	assert.Equal(t, TechniqueAggressive, branch)
}
