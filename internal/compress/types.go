package compress

import "strings"

// PromptType is the category assigned to a prompt by the classifier.
type PromptType string

const (
	TypeVisual      PromptType = "visual"
	TypeCreative    PromptType = "creative"
	TypeLogical     PromptType = "logical"
	TypeFewShot     PromptType = "fewshot"
	TypeInstruction PromptType = "instruction"
	TypeCode        PromptType = "code"
	TypeAnalysis    PromptType = "analysis"
	TypeData        PromptType = "data"
)

// Types returns every prompt type in classifier priority order.
func Types() []PromptType {
	return []PromptType{
		TypeVisual, TypeCode, TypeFewShot, TypeInstruction,
		TypeLogical, TypeData, TypeCreative, TypeAnalysis,
	}
}

// ParsePromptType parses a type name case-insensitively.
func ParsePromptType(s string) (PromptType, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "few-shot" || name == "few_shot" {
		name = string(TypeFewShot)
	}
	for _, t := range Types() {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// Technique labels a transformation. Phase labels are also the keys of a
// policy's allow-list; the order they appear in a Result is the order they ran.
type Technique string

const (
	TechniqueListToProse    Technique = "list to prose"
	TechniqueDedupSentences Technique = "duplicate sentences removed"
	TechniqueAsides         Technique = "filler asides removed"
	TechniqueIntensifiers   Technique = "intensifiers removed"
	TechniqueMergeSections  Technique = "related sections merged"
	TechniqueHierarchy      Technique = "hierarchical numbering"
	TechniqueSymbolic       Technique = "symbolic notation"
	TechniquePhrases        Technique = "verbose phrases condensed"
	TechniquePassive        Technique = "passive voice flattened"
	TechniqueAbstraction    Technique = "repeated pattern abstracted"
	TechniquePruneExamples  Technique = "examples pruned"
	TechniqueContrastive    Technique = "contrastive placeholder added"
	TechniqueAggressive     Technique = "aggressive compression applied"
	TechniqueRehydration    Technique = "rehydration applied"
	TechniqueWithinBand     Technique = "within target band"
	TechniqueNoChange       Technique = "no change required"
	TechniqueNoOpEmptyInput Technique = "no-op: empty input"
)

// Code returns the label as a flag-friendly identifier.
func (t Technique) Code() string {
	return strings.ReplaceAll(string(t), " ", "_")
}

// PhaseTechniques returns the techniques a policy can allow, in phase order.
func PhaseTechniques() []Technique {
	return []Technique{
		TechniqueListToProse, TechniqueDedupSentences, TechniqueAsides, TechniqueIntensifiers,
		TechniqueMergeSections, TechniqueHierarchy, TechniqueSymbolic,
		TechniquePhrases, TechniquePassive, TechniqueAbstraction,
		TechniquePruneExamples, TechniqueContrastive,
	}
}

// ParseTechnique accepts a phase technique by label ("list to prose") or by
// code ("list_to_prose").
func ParseTechnique(s string) (Technique, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range PhaseTechniques() {
		if string(t) == name || t.Code() == name {
			return t, true
		}
	}
	return "", false
}

// Request is a single compression call.
type Request struct {
	Text string
	Type PromptType // empty means classify
}

// Result is the outcome of a compression call.
type Result struct {
	Original             string      `json:"original"`
	Compressed           string      `json:"compressed"`
	OriginalTokens       int         `json:"original_tokens"`
	CompressedTokens     int         `json:"compressed_tokens"`
	ReductionRatePercent int         `json:"reduction_rate_percent"`
	AppliedTechniques    []Technique `json:"applied_techniques"`
	DetectedType         PromptType  `json:"detected_type"`
	QualityScore         int         `json:"quality_score"`
	ValidationFlags      []string    `json:"validation_flags"`
}

// Stats returns the before/after token counts of the result.
func (r *Result) Stats() TokenStats {
	return TokenStats{Before: r.OriginalTokens, After: r.CompressedTokens}
}

// HasTechnique reports whether t was applied.
func (r *Result) HasTechnique(t Technique) bool {
	for _, applied := range r.AppliedTechniques {
		if applied == t {
			return true
		}
	}
	return false
}

// HasFlag reports whether the validator raised flag.
func (r *Result) HasFlag(flag string) bool {
	for _, f := range r.ValidationFlags {
		if f == flag {
			return true
		}
	}
	return false
}
