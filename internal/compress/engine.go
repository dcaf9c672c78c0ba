package compress

import (
	"strings"

	"github.com/rs/zerolog"
)

// Engine compresses prompts. It is immutable after New and safe for
// concurrent use.
type Engine struct {
	policies PolicyTable
	lexicon  Lexicon
	lex      *compiledLexicon
	logger   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicies sets the policy table.
func WithPolicies(p PolicyTable) Option {
	return func(e *Engine) {
		e.policies = p
	}
}

// WithLexicon replaces the built-in lexicon.
func WithLexicon(l Lexicon) Option {
	return func(e *Engine) {
		e.lexicon = l.clone()
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine with the default policies and lexicon.
func New(opts ...Option) *Engine {
	e := &Engine{
		policies: DefaultPolicies(),
		lexicon:  DefaultLexicon(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.lex = compileLexicon(e.lexicon)
	return e
}

// Policies returns the engine's policy table.
func (e *Engine) Policies() PolicyTable {
	return e.policies
}

// Lexicon returns a copy of the engine's lexicon.
func (e *Engine) Lexicon() Lexicon {
	return e.lexicon.clone()
}

type phase struct {
	name string
	run  func(text string, t PromptType, cfg CompressionConfig) (string, []Technique)
}

func (e *Engine) phases() []phase {
	return []phase{
		{"elimination", e.eliminate},
		{"restructuring", e.restructure},
		{"reformulation", e.reformulate},
		{"example pruning", e.pruneExamples},
	}
}

// Compress runs the full pipeline on req and returns a fresh Result.
func (e *Engine) Compress(req Request) *Result {
	detected := Classify(req.Text, req.Type)
	if strings.TrimSpace(req.Text) == "" {
		return passthrough(req.Text, detected)
	}

	cfg := e.policies.Lookup(detected)
	structure := ExtractStructure(req.Text)
	log := e.logger.With().Str("type", string(detected)).Logger()

	text := strings.ReplaceAll(req.Text, "\r\n", "\n")
	var applied []Technique
	for _, p := range e.phases() {
		out, techniques := p.run(text, detected, cfg)
		if !acceptPhase(text, out) {
			log.Debug().Str("phase", p.name).Msg("phase output rejected")
			continue
		}
		if len(techniques) > 0 {
			log.Debug().
				Str("phase", p.name).
				Int("runes_before", runeLen(text)).
				Int("runes_after", runeLen(out)).
				Msg("phase applied")
		}
		text = out
		applied = append(applied, techniques...)
	}
	text = ensureTerminal(collapseWhitespace(text))
	if len(applied) == 0 {
		applied = append(applied, TechniqueNoChange)
	}

	adjusted, branch := e.converge(req.Text, text, detected, cfg, structure)
	if adjusted = fitTerminal(collapseWhitespace(adjusted), runeLen(req.Text)); adjusted != "" {
		text = adjusted
	}
	applied = append(applied, branch)
	log.Debug().Str("branch", string(branch)).Msg("convergence step")

	result := &Result{
		Original:          req.Text,
		Compressed:        text,
		OriginalTokens:    EstimateTokens(req.Text),
		CompressedTokens:  EstimateTokens(text),
		AppliedTechniques: applied,
		DetectedType:      detected,
	}
	result.ReductionRatePercent = result.Stats().PercentReduction()
	result.QualityScore, result.ValidationFlags = e.validate(req.Text, text, detected, cfg, applied)
	switch {
	case result.ReductionRatePercent < cfg.TargetReductionMin:
		result.ValidationFlags = appendFlag(result.ValidationFlags, FlagBelowBand)
	case result.ReductionRatePercent > cfg.TargetReductionMax:
		result.ValidationFlags = appendFlag(result.ValidationFlags, FlagAboveBand)
	}

	log.Debug().
		Int("original_tokens", result.OriginalTokens).
		Int("compressed_tokens", result.CompressedTokens).
		Int("reduction", result.ReductionRatePercent).
		Int("quality", result.QualityScore).
		Msg("compressed")
	return result
}
