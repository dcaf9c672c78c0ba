package compress

import (
	"regexp"
	"strings"
)

var (
	headerPattern       = regexp.MustCompile(`^[ \t]*(?:#{1,6}[ \t]+\S.*|\*\*[^*]+\*\*:?|[A-Z][A-Za-z0-9 /&()'-]{0,40}:|[A-Z][A-Z0-9 /&-]{1,30}:[ \t]+\S.*)[ \t]*$`)
	headingPattern      = regexp.MustCompile(`^[ \t]*#{1,6}[ \t]+\S`)
	bulletPattern       = regexp.MustCompile(`^[ \t]*[•\-*+–▪◦][ \t]+\S`)
	numberedStepPattern = regexp.MustCompile(`^[ \t]*(?:\d+(?:\.\d+)+\.?|\d+[.)]|(?i:step)[ \t]*\d+[ \t]*[:.)\-]?)[ \t]+\S`)
)

// span is a half-open range of line indexes.
type span struct {
	start, end int
}

func isHeaderLine(line string) bool {
	return headerPattern.MatchString(line)
}

func isBulletLine(line string) bool {
	return bulletPattern.MatchString(line)
}

func isNumberedLine(line string) bool {
	return numberedStepPattern.MatchString(line)
}

func isExampleMarker(line string) bool {
	return exampleMarkerPattern.MatchString(line)
}

// isActionLine reports whether a line is a bullet, a numbered step, an
// example marker, or starts with an action verb.
func (c *compiledLexicon) isActionLine(line string) bool {
	if isBulletLine(line) || isNumberedLine(line) || isExampleMarker(line) {
		return true
	}
	return c.actionLine != nil && c.actionLine.MatchString(line)
}

// countLines counts the lines of text accepted by match.
func countLines(text string, match func(string) bool) int {
	n := 0
	for _, line := range splitLines(text) {
		if match(line) {
			n++
		}
	}
	return n
}

// countExamples counts example markers in text.
func countExamples(text string) int {
	return len(exampleMarkerPattern.FindAllStringIndex(text, -1))
}

// CountExamples returns the number of example markers ("Example 1:") in text.
func CountExamples(text string) int {
	return countExamples(text)
}

// findExampleBlocks locates example blocks. A block opens at an example marker
// and runs until a blank line, a markdown heading or the next marker.
func findExampleBlocks(lines []string) []span {
	var blocks []span
	for i := 0; i < len(lines); i++ {
		if !isExampleMarker(lines[i]) {
			continue
		}
		j := i + 1
		for j < len(lines) {
			next := lines[j]
			if strings.TrimSpace(next) == "" || headingPattern.MatchString(next) || isExampleMarker(next) {
				break
			}
			j++
		}
		blocks = append(blocks, span{start: i, end: j})
		i = j - 1
	}
	return blocks
}
