package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hm-insights/internal/types"
)

func TestNormalize_CaseInsensitiveMatch(t *testing.T) {
	cfg := DefaultMapping()

	got := Normalize("hm screen", cfg)
	require.NotNil(t, got)
	assert.Equal(t, types.StageHMScreen, *got)

	got = Normalize("ONSITE", cfg)
	require.NotNil(t, got)
	assert.Equal(t, types.StageInterview, *got)
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	cfg := DefaultMapping()

	got := Normalize("  Offer  ", cfg)
	require.NotNil(t, got)
	assert.Equal(t, types.StageOffer, *got)
}

func TestNormalize_UnmappedReturnsNil(t *testing.T) {
	cfg := DefaultMapping()

	assert.Nil(t, Normalize("Culture Fit Chat", cfg))
	assert.Nil(t, Normalize("", cfg))
	assert.Nil(t, Normalize("Offer", nil))
}

func TestNormalize_FirstMatchingRuleWins(t *testing.T) {
	cfg := &types.StageMappingConfig{
		Rules: []types.StageMappingRule{
			{RawLabel: "Screen", Canonical: types.StageRecruiterScreen},
			{RawLabel: "Screen", Canonical: types.StageHMScreen},
		},
	}

	got := Normalize("Screen", cfg)
	require.NotNil(t, got)
	assert.Equal(t, types.StageRecruiterScreen, *got)
}

func TestBucketForStage_AllCanonicalStages(t *testing.T) {
	expected := map[types.CanonicalStage]types.DecisionBucket{
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

	for stage, bucket := range expected {
		s := stage
		assert.Equal(t, bucket, BucketForStage(&s), "stage %s", stage)
	}
}

func TestBucketForStage_NilStageIsOther(t *testing.T) {
	assert.Equal(t, types.BucketOther, BucketForStage(nil))
}

func TestIsTerminalStage(t *testing.T) {
	hired := types.StageHired
	rejected := types.StageRejected
	withdrawn := types.StageWithdrawn
	interview := types.StageInterview

	assert.True(t, IsTerminalStage(&hired))
	assert.True(t, IsTerminalStage(&rejected))
	assert.True(t, IsTerminalStage(&withdrawn))
	assert.False(t, IsTerminalStage(&interview))
	assert.False(t, IsTerminalStage(nil))
}

func TestDefaultMapping_CoversEveryCanonicalStage(t *testing.T) {
	cfg := DefaultMapping()

	seen := make(map[types.CanonicalStage]bool)
	for _, rule := range cfg.Rules {
		seen[rule.Canonical] = true
	}

	for _, stage := range []types.CanonicalStage{
		types.StageApplied, types.StageRecruiterScreen, types.StageHMScreen,
		types.StageInterview, types.StageDebrief, types.StageFinalReview,
		types.StageOffer, types.StageHired, types.StageRejected, types.StageWithdrawn,
	} {
		assert.True(t, seen[stage], "default mapping missing %s", stage)
	}
}
