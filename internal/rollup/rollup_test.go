package rollup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hm-insights/internal/types"
)

var asOf = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func daysAgo(n int) time.Time { return asOf.AddDate(0, 0, -n) }

func reqFact(id, hmID string, open bool) types.ReqFact {
	status := "Open"
	if !open {
		status = "Closed"
	}
	return types.ReqFact{
		Requisition: types.Requisition{
			ReqID:           id,
			ReqTitle:        "Backend Engineer",
			Function:        "Engineering",
			Level:           "L5",
			OpenedAt:        timePtr(daysAgo(30)),
			Status:          status,
			HiringManagerID: hmID,
		},
		IsOpen:     open,
		ReqAgeDays: 30,
		HMName:     "Dana Torres",
	}
}

func activeCand(id, reqID string, bucket types.DecisionBucket, stageAgeDays int) types.CandidateFact {
	return types.CandidateFact{
		Candidate:      types.Candidate{CandidateID: id, ReqID: reqID},
		DecisionBucket: bucket,
		IsActive:       true,
		StageAgeDays:   stageAgeDays,
	}
}

func TestOpenReqs_FiltersClosedAndUndated(t *testing.T) {
	closed := reqFact("req_c", "u_hm", false)
	undated := reqFact("req_u", "u_hm", true)
	undated.OpenedAt = nil
	open := reqFact("req_o", "u_hm", true)

	got := OpenReqs([]types.ReqFact{closed, undated, open})

	require.Len(t, got, 1)
	assert.Equal(t, "req_o", got[0].ReqID)
}

func TestBuildReqRollup_BucketCountsSumToPipelineDepth(t *testing.T) {
	req := reqFact("req_001", "u_hm", true)
	cands := []types.CandidateFact{
		activeCand("c1", "req_001", types.BucketOther, 1),
		activeCand("c2", "req_001", types.BucketHMReview, 2),
		activeCand("c3", "req_001", types.BucketHMFinalDecision, 1),
		{
			Candidate:      types.Candidate{CandidateID: "c4", ReqID: "req_001"},
			DecisionBucket: types.BucketHMReview,
			IsActive:       false, // stale label, counts as DONE
		},
	}
	tables := &types.FactTables{ReqFacts: []types.ReqFact{req}, CandidateFacts: cands, AsOfDate: asOf}

	rr := BuildReqRollup(req, cands, nil, types.DefaultHMRules(), tables)

	assert.Equal(t, 3, rr.PipelineDepth)
	nonDone := 0
	for _, b := range types.PipelineBucketOrder {
		nonDone += rr.CandidatesByBucket[b]
	}
	assert.Equal(t, rr.PipelineDepth, nonDone)
	assert.Equal(t, 1, rr.CandidatesByBucket[types.BucketDone])
}

func TestBuildReqRollup_CarriesStallAndForecast(t *testing.T) {
	req := reqFact("req_001", "u_hm", true)
	cands := []types.CandidateFact{
		activeCand("c1", "req_001", types.BucketOfferDecision, 1),
	}
	events := []types.EventFact{
		{Event: types.Event{
			EventID: "e1", CandidateID: "c1", ReqID: "req_001",
			EventType: types.EventOfferExtended, EventAt: daysAgo(1),
		}},
	}
	tables := &types.FactTables{ReqFacts: []types.ReqFact{req}, CandidateFacts: cands, EventFacts: events, AsOfDate: asOf}

	rr := BuildReqRollup(req, cands, events, types.DefaultHMRules(), tables)

	// One active candidate: thin pipeline is the verdict.
	assert.Equal(t, types.StallPipelineThin, rr.PrimaryStallReason.Code)
	assert.Equal(t, 1, rr.DaysSinceLastMovement)
	require.NotNil(t, rr.LastMovementAt)
	require.NotNil(t, rr.Forecast)
	assert.Equal(t, types.BucketOfferDecision, rr.Forecast.CurrentBucket)
}

func TestUniqueHMs_SortedAndIncludesEmptyKey(t *testing.T) {
	reqs := []types.ReqFact{
		reqFact("r1", "u_b", true),
		reqFact("r2", "", true),
		reqFact("r3", "u_a", true),
		reqFact("r4", "u_b", false),
	}

	assert.Equal(t, []string{"", "u_a", "u_b"}, UniqueHMs(reqs))
}

func TestBuildHMRollups_AggregatesAcrossReqs(t *testing.T) {
	openA := reqFact("req_a", "u_hm", true)
	openB := reqFact("req_b", "u_hm", true)
	openB.Level = "L6"
	closed := reqFact("req_c", "u_hm", false)
	tables := &types.FactTables{
		ReqFacts: []types.ReqFact{openA, openB, closed},
		AsOfDate: asOf,
	}

	reqRollups := []types.HMReqRollup{
		{
			ReqID: "req_a", HMUserID: "u_hm",
			CandidatesByBucket: map[types.DecisionBucket]int{types.BucketHMReview: 2},
			PipelineDepth:      2,
			RiskFlags:          []types.RiskFlag{types.RiskLowPipeline},
		},
		{
			ReqID: "req_b", HMUserID: "u_hm",
			CandidatesByBucket: map[types.DecisionBucket]int{types.BucketOfferDecision: 1},
			PipelineDepth:      1,
		},
	}
	pending := []types.HMPendingAction{
		{ActionType: types.ActionFeedbackDue, HMUserID: "u_hm"},
		{ActionType: types.ActionFeedbackDue, HMUserID: "u_hm"},
		{ActionType: types.ActionReviewDue, HMUserID: "u_hm"},
	}

	rollups, err := BuildHMRollups(tables, reqRollups, pending)
	require.NoError(t, err)

	require.Len(t, rollups, 1)
	hm := rollups[0]
	assert.Equal(t, "u_hm", hm.HMUserID)
	assert.Equal(t, "Dana Torres", hm.HMName)
	assert.Equal(t, 2, hm.OpenReqs)
	assert.Equal(t, 1, hm.ClosedReqs)
	assert.Equal(t, 1, hm.AtRiskReqs)
	assert.Equal(t, 3, hm.ActiveCandidates)
	assert.Equal(t, 2, hm.CandidatesByBucket[types.BucketHMReview])
	assert.Equal(t, 1, hm.CandidatesByBucket[types.BucketOfferDecision])
	assert.Equal(t, 3, hm.TotalPendingActions)
	assert.Equal(t, 2, hm.PendingActionsByType[types.ActionFeedbackDue])
	assert.Equal(t, map[string]int{"Engineering": 3}, hm.FunctionMix)
	assert.Equal(t, map[string]int{"L5": 2, "L6": 1}, hm.LevelMix)
}

func TestBuildHMRollups_UnknownHMKey(t *testing.T) {
	req := reqFact("req_x", "", true)
	req.HMName = "Unknown"
	tables := &types.FactTables{ReqFacts: []types.ReqFact{req}, AsOfDate: asOf}

	rollups, err := BuildHMRollups(tables, nil, nil)
	require.NoError(t, err)

	require.Len(t, rollups, 1)
	assert.Equal(t, "", rollups[0].HMUserID)
	assert.Equal(t, "Unknown", rollups[0].HMName)
}

func TestBuildHMRollups_LatencyFromOwnEvents(t *testing.T) {
	req := reqFact("req_a", "u_hm", true)
	tables := &types.FactTables{
		ReqFacts: []types.ReqFact{req},
		EventFacts: []types.EventFact{
			{Event: types.Event{
				EventID: "e1", CandidateID: "c1", ReqID: "req_a",
				EventType: types.EventInterviewCompleted, EventAt: daysAgo(10),
			}, HMUserID: "u_hm"},
			{Event: types.Event{
				EventID: "e2", CandidateID: "c1", ReqID: "req_a",
				EventType: types.EventFeedbackSubmitted, EventAt: daysAgo(8),
			}, HMUserID: "u_hm"},
		},
		AsOfDate: asOf,
	}

	rollups, err := BuildHMRollups(tables, nil, nil)
	require.NoError(t, err)

	require.Len(t, rollups, 1)
	feedback := rollups[0].LatencyMetrics.Feedback
	assert.Equal(t, 1, feedback.SampleSize)
	require.NotNil(t, feedback.Median)
	assert.Equal(t, 2.0, *feedback.Median)
}
