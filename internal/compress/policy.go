package compress

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// CompressionConfig is the policy for one prompt type.
type CompressionConfig struct {
	TargetReductionMin int         // lower edge of the policy band, percent
	TargetReductionMax int         // upper edge of the policy band, percent
	MaxExamples        int         // example blocks kept by pruning
	AllowedTechniques  []Technique // phase techniques that may run
	RiskyTechniques    []Technique // techniques flagged when they run
}

// Allows reports whether technique t may run under this policy.
func (c CompressionConfig) Allows(t Technique) bool {
	return containsTechnique(c.AllowedTechniques, t)
}

// IsRisky reports whether technique t is flagged as risky under this policy.
func (c CompressionConfig) IsRisky(t Technique) bool {
	return containsTechnique(c.RiskyTechniques, t)
}

// Validate checks the band and example cap.
func (c CompressionConfig) Validate() error {
	if c.TargetReductionMin < 0 || c.TargetReductionMax > 100 {
		return fmt.Errorf("target band [%d, %d] must lie within [0, 100]", c.TargetReductionMin, c.TargetReductionMax)
	}
	if c.TargetReductionMin > c.TargetReductionMax {
		return fmt.Errorf("target minimum %d exceeds maximum %d", c.TargetReductionMin, c.TargetReductionMax)
	}
	if c.MaxExamples < 0 {
		return fmt.Errorf("max examples must not be negative, got %d", c.MaxExamples)
	}
	return nil
}

func (c CompressionConfig) clone() CompressionConfig {
	c.AllowedTechniques = append([]Technique(nil), c.AllowedTechniques...)
	c.RiskyTechniques = append([]Technique(nil), c.RiskyTechniques...)
	return c
}

func containsTechnique(list []Technique, t Technique) bool {
	for _, candidate := range list {
		if candidate == t {
			return true
		}
	}
	return false
}

// PolicyTable maps prompt types to their compression policy. The zero value
// is empty; use DefaultPolicies. Tables are values: WithOverride returns a new
// table and never changes the receiver.
type PolicyTable struct {
	configs map[PromptType]CompressionConfig
}

var baseTechniques = []Technique{
	TechniqueListToProse, TechniqueDedupSentences, TechniqueAsides, TechniqueIntensifiers,
	TechniquePhrases, TechniquePassive, TechniquePruneExamples,
}

func withBase(extra ...Technique) []Technique {
	return append(append([]Technique(nil), baseTechniques...), extra...)
}

var defaultPolicies = map[PromptType]CompressionConfig{
	TypeVisual: {
		TargetReductionMin: 30, TargetReductionMax: 50, MaxExamples: 1,
		AllowedTechniques: withBase(TechniqueMergeSections),
		RiskyTechniques:   []Technique{TechniqueMergeSections},
	},
	TypeCreative: {
		TargetReductionMin: 20, TargetReductionMax: 40, MaxExamples: 1,
		AllowedTechniques: withBase(TechniqueMergeSections),
		RiskyTechniques:   []Technique{TechniqueMergeSections},
	},
	TypeLogical: {
		TargetReductionMin: 25, TargetReductionMax: 45, MaxExamples: 5,
		AllowedTechniques: withBase(TechniqueSymbolic, TechniqueAbstraction),
		RiskyTechniques:   []Technique{TechniqueSymbolic, TechniqueAbstraction},
	},
	TypeFewShot: {
		TargetReductionMin: 35, TargetReductionMax: 55, MaxExamples: 3,
		AllowedTechniques: withBase(TechniqueContrastive),
		RiskyTechniques:   []Technique{TechniquePruneExamples},
	},
	TypeInstruction: {
		TargetReductionMin: 30, TargetReductionMax: 50, MaxExamples: 1,
		AllowedTechniques: withBase(TechniqueHierarchy),
	},
	TypeCode: {
		TargetReductionMin: 20, TargetReductionMax: 40, MaxExamples: 1,
		AllowedTechniques: withBase(TechniqueSymbolic, TechniqueAbstraction),
		RiskyTechniques:   []Technique{TechniqueSymbolic, TechniqueAbstraction},
	},
	TypeAnalysis: {
		TargetReductionMin: 25, TargetReductionMax: 50, MaxExamples: 1,
		AllowedTechniques: withBase(),
	},
	TypeData: {
		TargetReductionMin: 40, TargetReductionMax: 60, MaxExamples: 1,
		AllowedTechniques: withBase(),
	},
}

// DefaultPolicies returns the built-in policy table.
func DefaultPolicies() PolicyTable {
	configs := make(map[PromptType]CompressionConfig, len(defaultPolicies))
	for t, cfg := range defaultPolicies {
		configs[t] = cfg.clone()
	}
	return PolicyTable{configs: configs}
}

// Lookup returns a copy of the policy for t. Types without an entry use the
// analysis policy.
func (p PolicyTable) Lookup(t PromptType) CompressionConfig {
	if cfg, ok := p.configs[t]; ok {
		return cfg.clone()
	}
	if cfg, ok := p.configs[TypeAnalysis]; ok {
		return cfg.clone()
	}
	return defaultPolicies[TypeAnalysis].clone()
}

// WithOverride returns a copy of the table with the policy for t replaced.
func (p PolicyTable) WithOverride(t PromptType, cfg CompressionConfig) PolicyTable {
	configs := make(map[PromptType]CompressionConfig, len(p.configs)+1)
	for k, v := range p.configs {
		configs[k] = v
	}
	configs[t] = cfg.clone()
	return PolicyTable{configs: configs}
}

// Fingerprint identifies the table's contents; equal tables share a fingerprint.
func (p PolicyTable) Fingerprint() string {
	h := sha256.New()
	for _, t := range Types() {
		cfg := p.Lookup(t)
		fmt.Fprintf(h, "%s:%d:%d:%d:%s:%s\n", t,
			cfg.TargetReductionMin, cfg.TargetReductionMax, cfg.MaxExamples,
			joinTechniques(cfg.AllowedTechniques), joinTechniques(cfg.RiskyTechniques))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func joinTechniques(list []Technique) string {
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
