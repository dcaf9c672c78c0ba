package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/HartBrook/condense/internal/compress"
)

// displayResult prints token stats, score and validation flags.
func displayResult(w io.Writer, result *compress.Result, fromCache, verbose bool) {
	stats := result.Stats()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s: %s\n", dim("Type"), info(string(result.DetectedType)))
	fmt.Fprintf(w, "  %s: %d tokens\n", dim("Before"), stats.Before)
	fmt.Fprintf(w, "  %s: %d tokens\n", dim("After"), stats.After)
	fmt.Fprintf(w, "  %s: %d tokens (%d%%)\n", dim("Saved"), stats.Saved(), result.ReductionRatePercent)
	fmt.Fprintf(w, "  %s: %s\n", dim("Quality"), scoreColor(result.QualityScore))

	if verbose && len(result.AppliedTechniques) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s:\n", dim("Techniques"))
		for _, t := range result.AppliedTechniques {
			fmt.Fprintf(w, "    %s\n", t)
		}
	}

	if len(result.ValidationFlags) > 0 {
		fmt.Fprintln(w)
		printWarning(w, "Validation flags: %s", strings.Join(result.ValidationFlags, ", "))
	}

	if fromCache {
		fmt.Fprintf(w, "\n  %s\n", dim("(from cache - use --force to recompress)"))
	}
}

// scoreColor renders a quality score green, yellow or red.
func scoreColor(score int) string {
	label := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return success(label)
	case score >= 60:
		return warning(label)
	default:
		return danger(label)
	}
}

// displayDiff shows a simple line diff between original and compressed text.
func displayDiff(w io.Writer, original, compressed string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, dim("--- original"))
	fmt.Fprintln(w, dim("+++ compressed"))
	fmt.Fprintln(w)

	origLines := strings.Split(original, "\n")
	newLines := strings.Split(compressed, "\n")

	// Show first differences (limited output for readability)
	shown := 0
	maxDiff := 20

	maxLen := max(len(origLines), len(newLines))

	for i := 0; i < maxLen && shown < maxDiff; i++ {
		origLine := ""
		newLine := ""
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(newLines) {
			newLine = newLines[i]
		}

		if origLine != newLine {
			if i < len(origLines) {
				fmt.Fprintf(w, "%s %s\n", danger("-"), origLine)
			}
			if i < len(newLines) {
				fmt.Fprintf(w, "%s %s\n", success("+"), newLine)
			}
			shown++
		}
	}

	if shown >= maxDiff {
		fmt.Fprintf(w, "\n%s\n", dim("(diff truncated, showing first 20 changes)"))
	}
}
