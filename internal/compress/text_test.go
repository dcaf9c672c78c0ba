package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureTerminal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Done.", "Done."},
		{"Really?", "Really?"},
		{"Go!  \n", "Go!"},
		{"no punctuation", "no punctuation."},
		{"dangling comma,", "dangling comma."},
		{"dangling colon :", "dangling colon."},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ensureTerminal(tt.input))
		})
	}
}

func TestFitTerminal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"room for the full stop", "Hi", 3, "Hi."},
		{"drops the last rune", "Hi", 2, "H."},
		{"dangling punctuation swapped in place", "Hi:", 3, "Hi."},
		{"terminal text over the limit", "Hi!", 2, "H!"},
		{"drops the space left behind", "Go on n", 7, "Go on."},
		{"single rune grows", "A", 1, "A."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fitTerminal(tt.input, tt.limit))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Version 1.5 is out. Update now! Why wait?")
	assert.Equal(t, []string{"Version 1.5 is out.", "Update now!", "Why wait?"}, got)

	assert.Equal(t, []string{"no terminal"}, splitSentences("no terminal"))
	assert.Empty(t, splitSentences("   "))
}

func TestCollapseWhitespace(t *testing.T) {
	input := "  first   line  \r\n\n\n\tsecond\t\tline\n   \n"
	assert.Equal(t, "first line\nsecond line", collapseWhitespace(input))
}

func TestCaseHelpers(t *testing.T) {
	assert.Equal(t, "Write it", capitalizeFirst("write it"))
	assert.Equal(t, "report", lowerFirst("Report"))
	assert.Equal(t, "API docs", lowerFirst("API docs"))
	assert.True(t, startsUpper("Hello"))
	assert.False(t, startsUpper("hello"))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("We Ship  weekly.", "we ship weekly"))
	assert.False(t, containsFold("We ship monthly.", "we ship weekly"))
}
