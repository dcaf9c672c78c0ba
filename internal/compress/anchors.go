package compress

import (
	"regexp"
	"sort"
	"strings"
)

var (
	pathPatterns = []*regexp.Regexp{
		// Absolute paths: /foo/bar (must start with letter after /)
		regexp.MustCompile(`(?:^|[\s"'\(])(/[a-zA-Z][a-zA-Z0-9_\-./]*[a-zA-Z0-9_/])`),
		// Relative paths: ./foo or ../foo
		regexp.MustCompile(`(?:^|[\s"'\(])(\.\./[a-zA-Z0-9_\-./]+|\./[a-zA-Z0-9_\-./]+)`),
		// Home paths: ~/foo
		regexp.MustCompile(`(?:^|[\s"'\(])(~/[a-zA-Z0-9_\-./]+)`),
		// Named files with a known extension
		regexp.MustCompile(`(?:^|[\s"'\(])([a-zA-Z][a-zA-Z0-9_\-]*\.(?:yaml|yml|json|toml|md|txt|csv|py|go|ts|js|rs|sql|html|css))\b`),
	}
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")
	codeBlockPattern  = regexp.MustCompile("(?s)```[a-zA-Z]*\n(.*?)```")
	versionPattern    = regexp.MustCompile(`^v?\d+\.\d+`)

	definitionPatterns = []*regexp.Regexp{
		// Python: def func_name, class ClassName
		regexp.MustCompile(`(?:def|class)\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		// Go: func FuncName
		regexp.MustCompile(`func\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
		// TypeScript/JavaScript: function funcName
		regexp.MustCompile(`function\s+([a-zA-Z_][a-zA-Z0-9_]*)`),
	}
)

// genericIdentifiers are illustrative names that are not worth tracking.
var genericIdentifiers = map[string]bool{
	"main": true, "foo": true, "bar": true, "baz": true, "test": true,
	"run": true, "helper": true, "example": true, "handler": true,
	"f": true, "g": true, "fn": true, "func": true, "x": true,
}

// extractAnchors finds literal content a compressed prompt should keep
// verbatim: file paths, inline code spans and names defined in code blocks.
func extractAnchors(text string) []string {
	seen := make(map[string]bool)
	var anchors []string
	add := func(a string) {
		if !seen[a] {
			seen[a] = true
			anchors = append(anchors, a)
		}
	}

	for _, pattern := range pathPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			path := strings.TrimRight(m[1], ".")
			if len(path) >= 2 && !versionPattern.MatchString(path) {
				add(path)
			}
		}
	}
	for _, m := range inlineCodePattern.FindAllStringSubmatch(text, -1) {
		if code := strings.TrimSpace(m[1]); len(code) >= 2 && len(code) <= 100 {
			add(code)
		}
	}
	for _, block := range codeBlockPattern.FindAllStringSubmatch(text, -1) {
		for _, pattern := range definitionPatterns {
			for _, m := range pattern.FindAllStringSubmatch(block[1], -1) {
				if !genericIdentifiers[strings.ToLower(m[1])] {
					add(m[1])
				}
			}
		}
	}

	sort.Strings(anchors)
	return anchors
}

// missingAnchors returns the anchors of original that compressed no longer
// contains, compared case-insensitively.
func missingAnchors(original, compressed string) []string {
	lower := strings.ToLower(compressed)
	var missing []string
	for _, anchor := range extractAnchors(original) {
		if !strings.Contains(lower, strings.ToLower(anchor)) {
			missing = append(missing, anchor)
		}
	}
	return missing
}
