// Package config provides configuration loading and management for
// contractspec. The naming-suppression rules, type-equivalence table,
// and external-module allowlist are configuration data rather than code
// so new conventions can be added without touching the checkers.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete contractspec configuration.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction"`
	Naming     NamingConfig     `yaml:"naming"`
	Compare    CompareConfig    `yaml:"compare"`
	Imports    ImportsConfig    `yaml:"imports"`
}

// ExtractionConfig configures the declaration extractor.
type ExtractionConfig struct {
	// FenceLanguages lists the fenced-code-block language tags whose
	// contents are scanned for declarations. A document with no
	// recognized fences is scanned whole.
	FenceLanguages []string `yaml:"fence_languages"`
}

// PairRule is one legitimate-pairing convention: two names are not
// near-duplicates when stripping A from one and B from the other (as a
// prefix or suffix) leaves the same base string.
type PairRule struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// NamingConfig configures the name similarity auditor.
type NamingConfig struct {
	// SimilarityThreshold is the general near-duplicate threshold.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// CrossDocumentThreshold is the stricter threshold used during
	// cross-document naming checks.
	CrossDocumentThreshold float64 `yaml:"cross_document_threshold"`

	// PairRules lists recognized legitimate-pairing conventions.
	PairRules []PairRule `yaml:"pair_rules"`

	// StripSuffixes lists suffixes stripped from both names before the
	// same-base suppression check. Plural forms are derived
	// automatically.
	StripSuffixes []string `yaml:"strip_suffixes"`
}

// CompareConfig configures the structural comparator.
type CompareConfig struct {
	// EquivalentTypes lists type-expression pairs treated as
	// compatible despite differing spellings.
	EquivalentTypes []PairRule `yaml:"equivalent_types"`
}

// ImportsConfig configures import resolution.
type ImportsConfig struct {
	// ExternalModules lists module names whose imports are out of
	// scope and skipped rather than flagged.
	ExternalModules []string `yaml:"external_modules"`
}

// DefaultConfig returns a Config with the built-in rule set.
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			FenceLanguages: []string{"typescript", "ts"},
		},
		Naming: NamingConfig{
			SimilarityThreshold:    0.8,
			CrossDocumentThreshold: 0.85,
			PairRules: []PairRule{
				{A: "create", B: "update"},
				{A: "request", B: "response"},
				{A: "input", B: "output"},
				{A: "id", B: "ref"},
				{A: "identifier", B: "reference"},
				{A: "score", B: "scores"},
				{A: "service", B: "repository"},
			},
			StripSuffixes: []string{
				"id", "identifier", "ref", "reference",
				"input", "output", "request", "response",
				"type", "status",
			},
		},
		Compare: CompareConfig{
			EquivalentTypes: []PairRule{
				{A: "string", B: "Date"},
				{A: "string", B: "DateTime"},
				{A: "number", B: "integer"},
				{A: "number", B: "float"},
				{A: "boolean", B: "bool"},
			},
		},
		Imports: ImportsConfig{
			ExternalModules: []string{
				"zod", "io-ts", "yup", "date-fns", "uuid",
			},
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Naming.SimilarityThreshold <= 0 || c.Naming.SimilarityThreshold > 1 {
		return fmt.Errorf("naming.similarity_threshold must be in (0, 1]")
	}
	if c.Naming.CrossDocumentThreshold <= 0 || c.Naming.CrossDocumentThreshold > 1 {
		return fmt.Errorf("naming.cross_document_threshold must be in (0, 1]")
	}
	if len(c.Extraction.FenceLanguages) == 0 {
		return fmt.Errorf("extraction.fence_languages must not be empty")
	}
	for _, rule := range c.Naming.PairRules {
		if rule.A == "" || rule.B == "" {
			return fmt.Errorf("naming.pair_rules entries require both a and b")
		}
	}
	return nil
}

// Merge overlays non-zero fields from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if len(other.Extraction.FenceLanguages) > 0 {
		c.Extraction.FenceLanguages = other.Extraction.FenceLanguages
	}
	if other.Naming.SimilarityThreshold != 0 {
		c.Naming.SimilarityThreshold = other.Naming.SimilarityThreshold
	}
	if other.Naming.CrossDocumentThreshold != 0 {
		c.Naming.CrossDocumentThreshold = other.Naming.CrossDocumentThreshold
	}
	if len(other.Naming.PairRules) > 0 {
		c.Naming.PairRules = other.Naming.PairRules
	}
	if len(other.Naming.StripSuffixes) > 0 {
		c.Naming.StripSuffixes = other.Naming.StripSuffixes
	}
	if len(other.Compare.EquivalentTypes) > 0 {
		c.Compare.EquivalentTypes = other.Compare.EquivalentTypes
	}
	if len(other.Imports.ExternalModules) > 0 {
		c.Imports.ExternalModules = other.Imports.ExternalModules
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
