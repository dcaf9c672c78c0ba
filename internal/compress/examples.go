package compress

import "strings"

// pruneExamples keeps the first MaxExamples example blocks and drops the
// rest. Few-shot prompts left with fewer than two examples get a short
// contrastive placeholder where the dropped blocks were, provided it is
// shorter than what was removed.
func (e *Engine) pruneExamples(text string, t PromptType, cfg CompressionConfig) (string, []Technique) {
	if !cfg.Allows(TechniquePruneExamples) {
		return text, nil
	}

	lines := splitLines(text)
	blocks := findExampleBlocks(lines)
	if len(blocks) <= cfg.MaxExamples {
		return text, nil
	}

	dropped := make(map[int]bool)
	removed := 0
	for _, block := range blocks[cfg.MaxExamples:] {
		for i := block.start; i < block.end; i++ {
			dropped[i] = true
			removed += runeLen(lines[i]) + 1
		}
	}

	applied := []Technique{TechniquePruneExamples}
	placeholder := e.lex.placeholder
	addPlaceholder := t == TypeFewShot &&
		cfg.MaxExamples < 2 &&
		cfg.Allows(TechniqueContrastive) &&
		placeholder != "" &&
		runeLen(placeholder)+1 <= removed
	insertAt := blocks[cfg.MaxExamples].start

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if addPlaceholder && i == insertAt {
			out = append(out, placeholder)
			applied = append(applied, TechniqueContrastive)
		}
		if !dropped[i] {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n"), applied
}
