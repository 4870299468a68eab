package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hm-insights/internal/types"
)

var asOf = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func daysAgo(n int) time.Time { return asOf.AddDate(0, 0, -n) }

// testSnapshot builds a small but realistic pipeline: two HMs, three reqs
// (one closed), candidates spread across buckets, and an overdue feedback
// item on req_001.
func testSnapshot() *types.Snapshot {
	return &types.Snapshot{
		Requisitions: []types.Requisition{
			{
				ReqID: "req_001", ReqTitle: "Backend Engineer", Function: "Engineering", Level: "L5",
				OpenedAt: timePtr(daysAgo(45)), Status: "Open",
				HiringManagerID: "u_hm1", RecruiterID: "u_rec",
			},
			{
				ReqID: "req_002", ReqTitle: "Data Scientist", Function: "Data", Level: "L4",
				OpenedAt: timePtr(daysAgo(20)), Status: "Open",
				HiringManagerID: "u_hm2", RecruiterID: "u_rec",
			},
			{
				ReqID: "req_003", ReqTitle: "Product Manager", Function: "Product", Level: "L5",
				OpenedAt: timePtr(daysAgo(90)), ClosedAt: timePtr(daysAgo(10)), Status: "Closed",
				HiringManagerID: "u_hm1", RecruiterID: "u_rec",
			},
		},
		Candidates: []types.Candidate{
			{CandidateID: "c1", ReqID: "req_001", CurrentStage: "HM Screen", CurrentStageEnteredAt: timePtr(daysAgo(8))},
			{CandidateID: "c2", ReqID: "req_001", CurrentStage: "Interview", CurrentStageEnteredAt: timePtr(daysAgo(3))},
			{CandidateID: "c3", ReqID: "req_001", CurrentStage: "Rejected", Disposition: "Rejected"},
			{CandidateID: "c4", ReqID: "req_002", CurrentStage: "Offer", CurrentStageEnteredAt: timePtr(daysAgo(2))},
			{CandidateID: "c5", ReqID: "req_002", CurrentStage: "Applied", CurrentStageEnteredAt: timePtr(daysAgo(1))},
		},
		Events: []types.Event{
			{EventID: "e1", CandidateID: "c2", ReqID: "req_001", EventType: types.EventStageChange, ToStage: "Interview", EventAt: daysAgo(3)},
			{EventID: "e2", CandidateID: "c2", ReqID: "req_001", EventType: types.EventInterviewCompleted, EventAt: daysAgo(7), ActorUserID: "u_hm1"},
			{EventID: "e3", CandidateID: "c4", ReqID: "req_002", EventType: types.EventOfferExtended, EventAt: daysAgo(2), ActorUserID: "u_hm2"},
		},
		Users: []types.User{
			{UserID: "u_hm1", Name: "Dana Torres", Role: "HM"},
			{UserID: "u_hm2", Name: "Priya Shah", Role: "HM"},
			{UserID: "u_rec", Name: "Sam Li", Role: "Recruiter"},
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	result, err := Run(context.Background(), Options{Snapshot: testSnapshot(), AsOf: asOf})
	require.NoError(t, err)

	assert.Len(t, result.Facts.ReqFacts, 3)
	assert.Len(t, result.Facts.CandidateFacts, 5)
	require.Len(t, result.ReqRollups, 2) // closed req excluded
	assert.Len(t, result.HMRollups, 2)

	// req_001: interview completed 7 days ago without feedback.
	req1 := result.ReqRollups[0]
	assert.Equal(t, "req_001", req1.ReqID)
	assert.Equal(t, types.StallAwaitingHMFeedback, req1.PrimaryStallReason.Code)
	assert.Equal(t, 2, req1.PipelineDepth)

	require.NotEmpty(t, result.PendingActions)
	assert.Equal(t, types.ActionFeedbackDue, result.PendingActions[0].ActionType)
	assert.Equal(t, "Dana Torres", result.PendingActions[0].HMName)
}

func TestRun_BucketConservationAcrossRollups(t *testing.T) {
	result, err := Run(context.Background(), Options{Snapshot: testSnapshot(), AsOf: asOf})
	require.NoError(t, err)

	for _, rr := range result.ReqRollups {
		sum := 0
		for _, b := range types.PipelineBucketOrder {
			sum += rr.CandidatesByBucket[b]
		}
		assert.Equal(t, rr.PipelineDepth, sum, "req %s", rr.ReqID)
	}
}

func TestRun_Deterministic(t *testing.T) {
	first, err := Run(context.Background(), Options{Snapshot: testSnapshot(), AsOf: asOf})
	require.NoError(t, err)
	second, err := Run(context.Background(), Options{Snapshot: testSnapshot(), AsOf: asOf})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_HMRollupsSortedByID(t *testing.T) {
	result, err := Run(context.Background(), Options{Snapshot: testSnapshot(), AsOf: asOf})
	require.NoError(t, err)

	require.Len(t, result.HMRollups, 2)
	assert.Equal(t, "u_hm1", result.HMRollups[0].HMUserID)
	assert.Equal(t, "u_hm2", result.HMRollups[1].HMUserID)
	assert.Equal(t, 1, result.HMRollups[0].OpenReqs)
	assert.Equal(t, 1, result.HMRollups[0].ClosedReqs)
}

func TestRun_NilSnapshotIsAnError(t *testing.T) {
	_, err := Run(context.Background(), Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot is required")
}

func TestRun_InvalidRulesRejectedUpFront(t *testing.T) {
	rules := types.HMRulesConfig{NoMovementDays: 14} // six thresholds missing

	_, err := Run(context.Background(), Options{
		Snapshot: testSnapshot(),
		Rules:    &rules,
		AsOf:     asOf,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules config")
}

func TestRun_ProgressCallbackObservesSteps(t *testing.T) {
	var steps []string

	_, err := Run(context.Background(), Options{
		Snapshot: testSnapshot(),
		AsOf:     asOf,
		OnProgress: func(step, _ string) {
			steps = append(steps, step)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"facts", "rollups", "actions", "benchmarks"}, steps)
}

func TestRun_EmptySnapshot(t *testing.T) {
	result, err := Run(context.Background(), Options{Snapshot: &types.Snapshot{}, AsOf: asOf})
	require.NoError(t, err)

	assert.Empty(t, result.ReqRollups)
	assert.Empty(t, result.HMRollups)
	assert.Empty(t, result.PendingActions)
}
