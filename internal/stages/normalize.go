// Package stages maps raw ATS stage labels to canonical stages and decision
// buckets.
package stages

import (
	"strings"

	"github.com/jonathan/hm-insights/internal/types"
)

// bucketForStage is the fixed, total mapping from canonical stage to the
// decision-ownership bucket (who must act next).
var bucketForStage = map[types.CanonicalStage]types.DecisionBucket{
	types.StageApplied:         types.BucketOther,
	types.StageRecruiterScreen: types.BucketOther,
	types.StageHMScreen:        types.BucketHMReview,
	types.StageInterview:       types.BucketHMInterviewDecision,
	types.StageDebrief:         types.BucketHMFeedback,
	types.StageFinalReview:     types.BucketHMFinalDecision,
	types.StageOffer:           types.BucketOfferDecision,
	types.StageHired:           types.BucketDone,
	types.StageRejected:        types.BucketDone,
	types.StageWithdrawn:       types.BucketDone,
}

// terminalStages are the canonical stages with no further pipeline movement.
var terminalStages = map[types.CanonicalStage]bool{
	types.StageHired:     true,
	types.StageRejected:  true,
	types.StageWithdrawn: true,
}

// Normalize looks up a raw stage label against the mapping rules.
// Matching is case-insensitive and the first matching rule in order wins.
// Returns nil for unmapped labels; the label should then appear in the
// config's unmapped list for operator visibility, which is the stage
// configuration UI's concern, not ours.
func Normalize(rawLabel string, cfg *types.StageMappingConfig) *types.CanonicalStage {
	if cfg == nil {
		return nil
	}
	needle := strings.TrimSpace(strings.ToLower(rawLabel))
	if needle == "" {
		return nil
	}
	for i := range cfg.Rules {
		if strings.ToLower(strings.TrimSpace(cfg.Rules[i].RawLabel)) == needle {
			stage := cfg.Rules[i].Canonical
			return &stage
		}
	}
	return nil
}

// BucketForStage returns the decision bucket for a canonical stage.
// A nil (unmapped) stage lands in OTHER.
func BucketForStage(stage *types.CanonicalStage) types.DecisionBucket {
	if stage == nil {
		return types.BucketOther
	}
	if bucket, ok := bucketForStage[*stage]; ok {
		return bucket
	}
	return types.BucketOther
}

// IsTerminalStage reports whether a canonical stage is Hired, Rejected, or
// Withdrawn. A nil stage is not terminal.
func IsTerminalStage(stage *types.CanonicalStage) bool {
	if stage == nil {
		return false
	}
	return terminalStages[*stage]
}

// DefaultMapping returns a stage mapping covering the stock labels the demo
// ATS exports use. Real deployments replace this via the stage
// configuration UI.
func DefaultMapping() *types.StageMappingConfig {
	return &types.StageMappingConfig{
		Rules: []types.StageMappingRule{
			{RawLabel: "Applied", Canonical: types.StageApplied},
			{RawLabel: "New Application", Canonical: types.StageApplied},
			{RawLabel: "Recruiter Screen", Canonical: types.StageRecruiterScreen},
			{RawLabel: "Phone Screen", Canonical: types.StageRecruiterScreen},
			{RawLabel: "HM Screen", Canonical: types.StageHMScreen},
			{RawLabel: "Hiring Manager Review", Canonical: types.StageHMScreen},
			{RawLabel: "Interview", Canonical: types.StageInterview},
			{RawLabel: "Onsite", Canonical: types.StageInterview},
			{RawLabel: "Debrief", Canonical: types.StageDebrief},
			{RawLabel: "Final Review", Canonical: types.StageFinalReview},
			{RawLabel: "Offer", Canonical: types.StageOffer},
			{RawLabel: "Hired", Canonical: types.StageHired},
			{RawLabel: "Rejected", Canonical: types.StageRejected},
			{RawLabel: "Withdrawn", Canonical: types.StageWithdrawn},
		},
	}
}
