package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRelatedSections(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	input := "Style: oil painting, warm.\nMood: calm evening.\nSubject: a lighthouse."
	got, merged := lex.mergeRelatedSections(input)

	assert.Equal(t, "Style/Mood: oil painting, warm; calm evening.\nSubject: a lighthouse.", got)
	assert.Equal(t, 1, merged)
}

func TestMergeRelatedSections_UnrelatedLabels(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	input := "Style: noir.\nCamera: low angle.\nNotes: none."
	got, merged := lex.mergeRelatedSections(input)

	assert.Equal(t, input, got)
	assert.Zero(t, merged)
}

func TestNestNumberedLists(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	input := "1. First, open the file.\n   - check the header\n2. Then save it."
	got, changed := lex.nestNumberedLists(input)

	assert.Equal(t, "1. Open the file.\n1.1 Check the header\n2. Save it.", got)
	assert.Equal(t, 3, changed)
}

func TestNestNumberedLists_StepLabels(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	got, _ := lex.nestNumberedLists("Step 1: Gather data\nStep 2: Next, clean it")
	assert.Equal(t, "1. Gather data\n2. Clean it", got)
}

func TestNestNumberedLists_FlatLists(t *testing.T) {
	lex := compileLexicon(DefaultLexicon())

	tests := []struct {
		name    string
		input   string
		want    string
		changed int
	}{
		{
			name:    "under a label line",
			input:   "Steps:\n1. Open the file.\n2. Read the header.\n3. Write a summary.",
			want:    "Steps:\n1.1 Open the file\n1.2 Read the header\n1.3 Write a summary",
			changed: 3,
		},
		{
			name:    "sections numbered in order",
			input:   "## Setup\n1. Install Go.\n2. Clone the repo.\nRun:\n1. Then build it.\n2. Test it.",
			want:    "## Setup\n1.1 Install Go\n1.2 Clone the repo\nRun:\n2.1 Build it\n2.2 Test it",
			changed: 4,
		},
		{
			name:    "under parent items",
			input:   "1. Prepare:\n2. Open the file.\n3. Read it.\n4. Report:\n5. Write a summary.",
			want:    "1. Prepare:\n1.1 Open the file\n1.2 Read it\n2. Report:\n2.1 Write a summary",
			changed: 4,
		},
		{
			name:    "no label keeps top level",
			input:   "Do this now.\n1. Open the file.\n2. Read the header.",
			want:    "Do this now.\n1. Open the file.\n2. Read the header.",
			changed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := lex.nestNumberedLists(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
			assert.LessOrEqual(t, len([]rune(got)), len([]rune(tt.input)))
		})
	}
}

func TestToSymbolic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		n     int
	}{
		{
			name:  "if then",
			input: "If the input is empty then return zero.",
			want:  "The input is empty → return zero.",
			n:     1,
		},
		{
			name:  "if then after a sentence",
			input: "Read the rows. If a row is blank then skip it.",
			want:  "Read the rows. A row is blank → skip it.",
			n:     1,
		},
		{
			name:  "if then mid sentence",
			input: "Stop early, if the list is empty then return zero.",
			want:  "Stop early, the list is empty → return zero.",
			n:     1,
		},
		{
			name:  "for each",
			input: "For each row, sum the values.",
			want:  "∀row: sum the values.",
			n:     1,
		},
		{
			name:  "plain",
			input: "Return the total.",
			want:  "Return the total.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := toSymbolic(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestRestructure_OnlyForMatchingType(t *testing.T) {
	e := New()
	input := "If the input is empty then return zero."

	got, applied := e.restructure(input, TypeLogical, e.Policies().Lookup(TypeLogical))
	assert.Equal(t, "The input is empty → return zero.", got)
	assert.Equal(t, []Technique{TechniqueSymbolic}, applied)

	got, applied = e.restructure(input, TypeAnalysis, e.Policies().Lookup(TypeAnalysis))
	assert.Equal(t, input, got)
	assert.Empty(t, applied)
}
