package types

import "github.com/go-playground/validator/v10"

// StageMappingRule maps one raw ATS stage label to a canonical stage.
// Matching is case-insensitive; the first matching rule in order wins.
type StageMappingRule struct {
	RawLabel  string         `json:"raw_label" yaml:"raw_label"`
	Canonical CanonicalStage `json:"canonical" yaml:"canonical"`
}

// StageMappingConfig is the operator-maintained stage taxonomy: an ordered
// rule list plus the raw labels currently known to be unmapped.
type StageMappingConfig struct {
	Rules          []StageMappingRule `json:"rules" yaml:"rules"`
	UnmappedStages []string           `json:"unmapped_stages,omitempty" yaml:"unmapped_stages,omitempty"`
}

// HMRulesConfig holds the numeric thresholds driving stall classification,
// risk flags, and pending-action detection. All seven thresholds are
// required; a config missing any of them is a caller error.
type HMRulesConfig struct {
	NoMovementDays       int `json:"no_movement_days" yaml:"no_movement_days" validate:"required,min=1"`
	LowPipelineThreshold int `json:"low_pipeline_threshold" yaml:"low_pipeline_threshold" validate:"required,min=1"`
	HMReviewDueDays      int `json:"hm_review_due_days" yaml:"hm_review_due_days" validate:"required,min=1"`
	DecisionDueDays      int `json:"decision_due_days" yaml:"decision_due_days" validate:"required,min=1"`
	OfferStallDays       int `json:"offer_stall_days" yaml:"offer_stall_days" validate:"required,min=1"`
	LateStageEmptyDays   int `json:"late_stage_empty_days" yaml:"late_stage_empty_days" validate:"required,min=1"`
	FeedbackDueDays      int `json:"feedback_due_days" yaml:"feedback_due_days" validate:"required,min=1"`
}

// Validate checks that every threshold is present and positive using the
// validator. Engine entry points call this before doing any work.
func (c *HMRulesConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// DefaultHMRules returns the stock thresholds used when no rules config is
// supplied.
func DefaultHMRules() HMRulesConfig {
	return HMRulesConfig{
		NoMovementDays:       14,
		LowPipelineThreshold: 3,
		HMReviewDueDays:      5,
		DecisionDueDays:      5,
		OfferStallDays:       7,
		LateStageEmptyDays:   30,
		FeedbackDueDays:      3,
	}
}
