package integration

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/HartBrook/condense/internal/compress"
)

// Asserter provides assertion helpers for compression results.
type Asserter struct {
	t   *testing.T
	run *Run
}

// NewAsserter creates an asserter for the given run.
func NewAsserter(t *testing.T, run *Run) *Asserter {
	return &Asserter{t: t, run: run}
}

// InBand reports whether the reduction lies within the policy band.
func (a *Asserter) InBand() bool {
	r := a.run.Result.ReductionRatePercent
	return r >= a.run.Policy.TargetReductionMin && r <= a.run.Policy.TargetReductionMax
}

// Grew reports whether the compressed text has more runes than the original.
func (a *Asserter) Grew() bool {
	return utf8.RuneCountInString(a.run.Result.Compressed) > utf8.RuneCountInString(a.run.Result.Original)
}

// EndsTerminal reports whether the compressed text ends in . ! or ?
func (a *Asserter) EndsTerminal() bool {
	s := strings.TrimRight(a.run.Result.Compressed, " \t\n")
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// RunAssertions runs all assertions from a fixture definition.
func (a *Asserter) RunAssertions(assertions FixtureAssertions) {
	a.t.Helper()
	result := a.run.Result

	if assertions.DetectedType != "" && string(result.DetectedType) != assertions.DetectedType {
		a.t.Errorf("detected type = %q, want %q", result.DetectedType, assertions.DetectedType)
	}

	if assertions.Compressed != nil && result.Compressed != *assertions.Compressed {
		a.t.Errorf("compressed = %q, want %q", result.Compressed, *assertions.Compressed)
	}

	for _, text := range assertions.Contains {
		if !strings.Contains(result.Compressed, text) {
			a.t.Errorf("expected compressed text to contain %q, got %q", text, result.Compressed)
		}
	}
	for _, text := range assertions.NotContains {
		if strings.Contains(result.Compressed, text) {
			a.t.Errorf("expected compressed text NOT to contain %q, got %q", text, result.Compressed)
		}
	}

	for _, label := range assertions.Techniques {
		if !result.HasTechnique(compress.Technique(label)) {
			a.t.Errorf("expected technique %q, got %v", label, result.AppliedTechniques)
		}
	}
	for _, label := range assertions.NotTechniques {
		if result.HasTechnique(compress.Technique(label)) {
			a.t.Errorf("unexpected technique %q in %v", label, result.AppliedTechniques)
		}
	}

	for _, flag := range assertions.Flags {
		if !result.HasFlag(flag) {
			a.t.Errorf("expected flag %q, got %v", flag, result.ValidationFlags)
		}
	}
	for _, flag := range assertions.NotFlags {
		if result.HasFlag(flag) {
			a.t.Errorf("unexpected flag %q in %v", flag, result.ValidationFlags)
		}
	}

	if assertions.MinQuality != nil && result.QualityScore < *assertions.MinQuality {
		a.t.Errorf("quality = %d, want >= %d", result.QualityScore, *assertions.MinQuality)
	}
	if assertions.Reduction != nil && result.ReductionRatePercent != *assertions.Reduction {
		a.t.Errorf("reduction = %d%%, want %d%%", result.ReductionRatePercent, *assertions.Reduction)
	}
	if assertions.MaxExamples != nil {
		if n := compress.CountExamples(result.Compressed); n > *assertions.MaxExamples {
			a.t.Errorf("examples = %d, want <= %d", n, *assertions.MaxExamples)
		}
	}

	if assertions.InBand && !a.InBand() {
		a.t.Errorf("reduction %d%% outside band [%d, %d]", result.ReductionRatePercent,
			a.run.Policy.TargetReductionMin, a.run.Policy.TargetReductionMax)
	}
	if assertions.NoGrowth && a.Grew() {
		a.t.Errorf("compressed text grew: %q", result.Compressed)
	}
	if assertions.Terminal && !a.EndsTerminal() {
		a.t.Errorf("compressed text lacks terminal punctuation: %q", result.Compressed)
	}
}
