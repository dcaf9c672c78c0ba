package compress

import (
	"regexp"
	"strings"
)

// Fragment is a piece of the original prompt that may or may not exist.
// The zero value is absent, which is distinct from a present empty string.
type Fragment struct {
	text  string
	found bool
}

// Present wraps text as a found fragment.
func Present(text string) Fragment {
	return Fragment{text: text, found: true}
}

// Get returns the fragment text and whether it was found.
func (f Fragment) Get() (string, bool) {
	return f.text, f.found
}

// Found reports whether the fragment exists.
func (f Fragment) Found() bool {
	return f.found
}

// ExtractedStructure captures fragments of the original prompt before any
// transformation. It is only consulted for rehydration.
type ExtractedStructure struct {
	Role         Fragment
	Context      Fragment
	Objective    Fragment
	Instructions Fragment
	FirstExample Fragment
}

var (
	rolePattern         = regexp.MustCompile(`(?i)\b(?:you are|you're|act as|acting as|your role)\b`)
	contextLabelPattern = regexp.MustCompile(`(?i)^(?:context|background)\s*:\s*(\S.*)$`)
	contextPattern      = regexp.MustCompile(`(?i)\b(?:context|background|given that|we are|i am|i'm|our (?:team|company|project|product))\b`)
	objectivePattern    = regexp.MustCompile(`(?i)\b(?:goal|objective|your task|the task|aim|purpose)\b`)
	instructionsPattern = regexp.MustCompile(`(?i)^[ \t]*(?:#+[ \t]*)?(?:\*\*)?instructions?(?:\*\*)?[ \t]*(?::[ \t]*(.*))?$`)
)

// ExtractStructure pulls the role, context, objective, instructions block and
// first example block out of text. Missing pieces are left absent.
func ExtractStructure(text string) ExtractedStructure {
	var s ExtractedStructure
	lines := splitLines(text)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !s.Context.found {
			if m := contextLabelPattern.FindStringSubmatch(trimmed); m != nil {
				s.Context = Present(m[1])
			}
		}
		for _, sentence := range splitSentences(trimmed) {
			if !s.Role.found && rolePattern.MatchString(sentence) {
				s.Role = Present(sentence)
			}
			if !s.Context.found && contextPattern.MatchString(sentence) {
				s.Context = Present(sentence)
			}
			if !s.Objective.found && objectivePattern.MatchString(sentence) {
				s.Objective = Present(sentence)
			}
		}
	}

	s.Instructions = extractInstructions(lines)
	if blocks := findExampleBlocks(lines); len(blocks) > 0 {
		s.FirstExample = Present(strings.Join(lines[blocks[0].start:blocks[0].end], "\n"))
	}
	return s
}

// extractInstructions returns the block under an "Instructions" heading, or
// the inline text after an "Instructions:" label.
func extractInstructions(lines []string) Fragment {
	for i, line := range lines {
		m := instructionsPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if inline := strings.TrimSpace(m[1]); inline != "" {
			return Present(inline)
		}
		var block []string
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" || isHeaderLine(next) {
				break
			}
			block = append(block, strings.TrimSpace(next))
		}
		if len(block) > 0 {
			return Present(strings.Join(block, "\n"))
		}
	}
	return Fragment{}
}
