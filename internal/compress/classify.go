package compress

import "regexp"

// detector tests whether a prompt belongs to a type.
type detector struct {
	promptType PromptType
	match      func(text string) bool
}

var (
	visualPattern = regexp.MustCompile(`(?i)\b(?:image|images|photo|photograph|picture|illustration|render|rendering|drawing|painting|portrait|logo|artwork|wallpaper|ultra-realistic|photorealistic|artistic style|[48]k|midjourney|camera angle|lighting)\b`)
	codePattern   = regexp.MustCompile(`(?i)\b(?:function|functions|code|script|class|method|api|bug|debug|refactor|compile|python|javascript|typescript|golang|java|sql|implement|unit tests?)\b`)

	fewShotPattern       = regexp.MustCompile(`(?i)\bfew-shot\b`)
	exampleMarkerPattern = regexp.MustCompile(`(?im)^[ \t]*(?:#+[ \t]*)?(?:\*\*)?example[ \t]*#?[ \t]*\d*[ \t]*(?:\*\*)?[ \t]*[:.)\-]`)
	inputPattern         = regexp.MustCompile(`(?im)^[ \t]*input[ \t]*:`)
	outputPattern        = regexp.MustCompile(`(?im)^[ \t]*output[ \t]*:`)

	instructionPattern  = regexp.MustCompile(`(?i)\b(?:step-by-step|step \d+|instructions|follow these)\b`)
	numberedLinePattern = regexp.MustCompile(`(?m)^[ \t]*(?:\d+(?:\.\d+)*[.)]|(?i:step)[ \t]*\d+[ \t]*[:.)\-]?)[ \t]+\S`)

	logicalPattern  = regexp.MustCompile(`(?i)\b(?:reason|reasoning|logic|logical|puzzle|deduce|prove|proof|solve|calculate|equation)\b|\bif\b[^.?!\n]*\bthen\b`)
	dataPattern     = regexp.MustCompile(`(?i)\b(?:csv|json|table|dataset|spreadsheet|columns?|rows|records|extract|parse)\b`)
	creativePattern = regexp.MustCompile(`(?i)\b(?:story|poem|novel|character|narrative|lyrics|screenplay|creative|fiction)\b`)
)

// detectors run in this order and the first match wins. A prompt that mentions
// both an image and a function is visual because the visual detector runs first.
var detectors = []detector{
	{TypeVisual, visualPattern.MatchString},
	{TypeCode, codePattern.MatchString},
	{TypeFewShot, isFewShot},
	{TypeInstruction, isInstruction},
	{TypeLogical, logicalPattern.MatchString},
	{TypeData, dataPattern.MatchString},
	{TypeCreative, creativePattern.MatchString},
}

// Classify assigns a prompt type. A non-empty override is returned unchanged;
// otherwise the detectors run in priority order and analysis is the fallback.
func Classify(text string, override PromptType) PromptType {
	if override != "" {
		return override
	}
	for _, d := range detectors {
		if d.match(text) {
			return d.promptType
		}
	}
	return TypeAnalysis
}

func isFewShot(text string) bool {
	if fewShotPattern.MatchString(text) {
		return true
	}
	if len(exampleMarkerPattern.FindAllStringIndex(text, 2)) >= 2 {
		return true
	}
	return len(inputPattern.FindAllStringIndex(text, 2)) >= 2 &&
		len(outputPattern.FindAllStringIndex(text, 2)) >= 2
}

func isInstruction(text string) bool {
	if instructionPattern.MatchString(text) {
		return true
	}
	return len(numberedLinePattern.FindAllStringIndex(text, 3)) >= 3
}
