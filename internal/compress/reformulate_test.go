package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondensePhrases(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "replacement keeps capital",
			input: "In order to finish, use the CLI.",
			want:  "To finish, use the CLI.",
		},
		{
			name:  "removal moves capital",
			input: "Please make sure to validate the input.",
			want:  "Validate the input.",
		},
		{
			name:  "mid sentence",
			input: "Reply in English due to the fact that readers are local.",
			want:  "Reply in English because readers are local.",
		},
		{
			name:  "contrast",
			input: "On the one hand, speed matters; on the other hand, accuracy matters.",
			want:  "speed matters vs accuracy matters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := lex.condensePhrases(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Positive(t, n)
		})
	}
}

func TestFlattenPassive(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	got, n := lex.flattenPassive("The report must be written in plain English.")
	assert.Equal(t, "Write report in plain English.", got)
	assert.Equal(t, 1, n)

	got, n = lex.flattenPassive("- The report must be written in plain English.")
	assert.Equal(t, "- The report must be written in plain English.", got, "list items keep their form")
	assert.Zero(t, n)
}

func TestAbstractPatterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "shared target",
			input: "Check the input with the schema, then validate the output with the schema.",
			want:  "With the schema: check the input, validate the output.",
		},
		{
			name:  "parallel lines",
			input: "Add tests to the parser.\nAdd docs to the parser.",
			want:  "Add tests, docs to the parser.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := abstractPatterns(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, n)
		})
	}
}

func TestReformulate_AbstractionOnlyForLogicalAndCode(t *testing.T) {
	e := New()
	input := "Add tests to the parser.\nAdd docs to the parser."

	got, applied := e.reformulate(input, TypeCode, e.Policies().Lookup(TypeCode))
	assert.Equal(t, "Add tests, docs to the parser.", got)
	assert.Equal(t, []Technique{TechniqueAbstraction}, applied)

	got, applied = e.reformulate(input, TypeAnalysis, e.Policies().Lookup(TypeAnalysis))
	assert.Equal(t, input, got)
	assert.Empty(t, applied)
}
