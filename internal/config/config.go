// Package config provides configuration loading for the CLI: analysis
// thresholds and the stage-mapping taxonomy, from JSON or YAML files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/hm-insights/internal/stages"
	"github.com/jonathan/hm-insights/internal/types"
)

// LoadRules loads an HMRulesConfig from a JSON or YAML file. Fields left
// at zero are filled from the defaults, then the whole config is
// validated; a threshold that is still missing afterwards is an error.
func LoadRules(path string) (*types.HMRulesConfig, error) {
	var cfg types.HMRulesConfig
	if err := unmarshalFile(path, &cfg); err != nil {
		return nil, err
	}
	merged := MergeRulesWithDefaults(cfg, types.DefaultHMRules())
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("config error in %s: %w", path, err)
	}
	return &merged, nil
}

// MergeRulesWithDefaults fills zero-valued thresholds from defaults.
// Explicit values always win.
func MergeRulesWithDefaults(cfg, defaults types.HMRulesConfig) types.HMRulesConfig {
	result := cfg
	if result.NoMovementDays == 0 {
		result.NoMovementDays = defaults.NoMovementDays
	}
	if result.LowPipelineThreshold == 0 {
		result.LowPipelineThreshold = defaults.LowPipelineThreshold
	}
	if result.HMReviewDueDays == 0 {
		result.HMReviewDueDays = defaults.HMReviewDueDays
	}
	if result.DecisionDueDays == 0 {
		result.DecisionDueDays = defaults.DecisionDueDays
	}
	if result.OfferStallDays == 0 {
		result.OfferStallDays = defaults.OfferStallDays
	}
	if result.LateStageEmptyDays == 0 {
		result.LateStageEmptyDays = defaults.LateStageEmptyDays
	}
	if result.FeedbackDueDays == 0 {
		result.FeedbackDueDays = defaults.FeedbackDueDays
	}
	return result
}

// LoadStageMapping loads a StageMappingConfig from a JSON or YAML file.
// A config with no rules is an error; an empty mapping would silently send
// every candidate to the OTHER bucket.
func LoadStageMapping(path string) (*types.StageMappingConfig, error) {
	var cfg types.StageMappingConfig
	if err := unmarshalFile(path, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("config error: stage mapping %s contains no rules", path)
	}
	return &cfg, nil
}

// LoadStageMappingOrDefault loads the mapping when a path is given and
// falls back to the stock mapping otherwise.
func LoadStageMappingOrDefault(path string) (*types.StageMappingConfig, error) {
	if path == "" {
		return stages.DefaultMapping(), nil
	}
	return LoadStageMapping(path)
}

// unmarshalFile reads and decodes a config file, dispatching on extension.
func unmarshalFile(path string, out any) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config YAML %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config JSON %s: %w", path, err)
		}
	}
	return nil
}
