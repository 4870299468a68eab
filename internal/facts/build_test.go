package facts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hm-insights/internal/stages"
	"github.com/jonathan/hm-insights/internal/types"
)

var asOf = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func daysAgo(n int) time.Time { return asOf.AddDate(0, 0, -n) }

func testUsers() []types.User {
	return []types.User{
		{UserID: "u_hm", Name: "Dana Torres", Role: "HM"},
		{UserID: "u_rec", Name: "Sam Li", Role: "Recruiter"},
	}
}

func testReq() types.Requisition {
	return types.Requisition{
		ReqID:           "req_001",
		ReqTitle:        "Senior Backend Engineer",
		Function:        "Engineering",
		Level:           "L5",
		OpenedAt:        timePtr(daysAgo(40)),
		Status:          "Open",
		HiringManagerID: "u_hm",
		RecruiterID:     "u_rec",
	}
}

func TestBuild_ReqFactOpenAndAge(t *testing.T) {
	tables := Build([]types.Requisition{testReq()}, nil, nil, testUsers(), stages.DefaultMapping(), asOf)

	require.Len(t, tables.ReqFacts, 1)
	rf := tables.ReqFacts[0]
	assert.True(t, rf.IsOpen)
	assert.Equal(t, 40, rf.ReqAgeDays)
	assert.Equal(t, "Dana Torres", rf.HMName)
	assert.Equal(t, "Sam Li", rf.RecruiterName)
}

func TestBuild_ClosedReqAgeFrozenAtCloseDate(t *testing.T) {
	req := testReq()
	req.Status = "Closed"
	req.ClosedAt = timePtr(daysAgo(10))

	tables := Build([]types.Requisition{req}, nil, nil, testUsers(), stages.DefaultMapping(), asOf)

	rf := tables.ReqFacts[0]
	assert.False(t, rf.IsOpen)
	// opened 40 days ago, closed 10 days ago: age stops at 30
	assert.Equal(t, 30, rf.ReqAgeDays)
}

func TestBuild_ReqWithoutOpenedAtHasZeroAge(t *testing.T) {
	req := testReq()
	req.OpenedAt = nil

	tables := Build([]types.Requisition{req}, nil, nil, testUsers(), stages.DefaultMapping(), asOf)

	rf := tables.ReqFacts[0]
	assert.True(t, rf.IsOpen)
	assert.Equal(t, 0, rf.ReqAgeDays)
}

func TestBuild_CandidateFactNormalizationAndBucket(t *testing.T) {
	cand := types.Candidate{
		CandidateID:           "cand_001",
		ReqID:                 "req_001",
		CurrentStage:          "HM Screen",
		CurrentStageEnteredAt: timePtr(daysAgo(6)),
	}

	tables := Build([]types.Requisition{testReq()}, []types.Candidate{cand}, nil, testUsers(), stages.DefaultMapping(), asOf)

	require.Len(t, tables.CandidateFacts, 1)
	cf := tables.CandidateFacts[0]
	require.NotNil(t, cf.CanonicalStage)
	assert.Equal(t, types.StageHMScreen, *cf.CanonicalStage)
	assert.Equal(t, types.BucketHMReview, cf.DecisionBucket)
	assert.True(t, cf.IsActive)
	assert.Equal(t, 6, cf.StageAgeDays)
	assert.Equal(t, "Senior Backend Engineer", cf.ReqTitle)
	assert.Equal(t, "u_hm", cf.HMUserID)
	assert.Equal(t, "Dana Torres", cf.HMName)
}

func TestBuild_UnmappedStageLandsInOtherAndStaysActive(t *testing.T) {
	cand := types.Candidate{
		CandidateID:  "cand_002",
		ReqID:        "req_001",
		CurrentStage: "Culture Fit Chat",
	}

	tables := Build([]types.Requisition{testReq()}, []types.Candidate{cand}, nil, testUsers(), stages.DefaultMapping(), asOf)

	cf := tables.CandidateFacts[0]
	assert.Nil(t, cf.CanonicalStage)
	assert.Equal(t, types.BucketOther, cf.DecisionBucket)
	assert.True(t, cf.IsActive)
}

func TestBuild_DispositionWinsOverStageLabel(t *testing.T) {
	// Candidate marked Hired but parked in a non-terminal stage label: the
	// disposition ends the pipeline, the label is just stale.
	cand := types.Candidate{
		CandidateID:  "cand_003",
		ReqID:        "req_001",
		CurrentStage: "Interview",
		Disposition:  "Hired",
	}

	tables := Build([]types.Requisition{testReq()}, []types.Candidate{cand}, nil, testUsers(), stages.DefaultMapping(), asOf)

	cf := tables.CandidateFacts[0]
	require.NotNil(t, cf.CanonicalStage)
	assert.Equal(t, types.StageInterview, *cf.CanonicalStage)
	assert.False(t, cf.IsActive)
}

func TestBuild_TerminalStageIsInactiveWithoutDisposition(t *testing.T) {
	cand := types.Candidate{
		CandidateID:  "cand_004",
		ReqID:        "req_001",
		CurrentStage: "Rejected",
	}

	tables := Build([]types.Requisition{testReq()}, []types.Candidate{cand}, nil, testUsers(), stages.DefaultMapping(), asOf)

	assert.False(t, tables.CandidateFacts[0].IsActive)
}

func TestBuild_StageEnteredAtReconstructedFromEvents(t *testing.T) {
	cand := types.Candidate{
		CandidateID:  "cand_005",
		ReqID:        "req_001",
		CurrentStage: "Interview",
	}
	events := []types.Event{
		{
			EventID: "ev_1", CandidateID: "cand_005", ReqID: "req_001",
			EventType: types.EventStageChange, ToStage: "Interview",
			EventAt: daysAgo(20),
		},
		// Candidate looped back into Interview later; the most recent entry
		// wins.
		{
			EventID: "ev_2", CandidateID: "cand_005", ReqID: "req_001",
			EventType: types.EventStageChange, ToStage: "interview",
			EventAt: daysAgo(8),
		},
	}

	tables := Build([]types.Requisition{testReq()}, []types.Candidate{cand}, events, testUsers(), stages.DefaultMapping(), asOf)

	cf := tables.CandidateFacts[0]
	require.NotNil(t, cf.StageEnteredAt)
	assert.Equal(t, daysAgo(8), *cf.StageEnteredAt)
	assert.Equal(t, 8, cf.StageAgeDays)
}

func TestBuild_RecordedStageEntryPreferredOverEvents(t *testing.T) {
	cand := types.Candidate{
		CandidateID:           "cand_006",
		ReqID:                 "req_001",
		CurrentStage:          "Interview",
		CurrentStageEnteredAt: timePtr(daysAgo(3)),
	}
	events := []types.Event{
		{
			EventID: "ev_1", CandidateID: "cand_006", ReqID: "req_001",
			EventType: types.EventStageChange, ToStage: "Interview",
			EventAt: daysAgo(20),
		},
	}

	tables := Build([]types.Requisition{testReq()}, []types.Candidate{cand}, events, testUsers(), stages.DefaultMapping(), asOf)

	assert.Equal(t, 3, tables.CandidateFacts[0].StageAgeDays)
}

func TestBuild_NoStageEntryKeepsZeroAge(t *testing.T) {
	cand := types.Candidate{
		CandidateID:  "cand_007",
		ReqID:        "req_001",
		CurrentStage: "Interview",
	}

	tables := Build([]types.Requisition{testReq()}, []types.Candidate{cand}, nil, testUsers(), stages.DefaultMapping(), asOf)

	cf := tables.CandidateFacts[0]
	assert.Nil(t, cf.StageEnteredAt)
	assert.Equal(t, 0, cf.StageAgeDays)
}

func TestBuild_MissingLookupsDegradeToUnknown(t *testing.T) {
	cand := types.Candidate{
		CandidateID:  "cand_008",
		ReqID:        "req_missing",
		CurrentStage: "Applied",
	}
	event := types.Event{
		EventID: "ev_1", CandidateID: "cand_008", ReqID: "req_missing",
		EventType: types.EventFeedbackSubmitted, ActorUserID: "u_gone",
		EventAt: daysAgo(1),
	}

	tables := Build(nil, []types.Candidate{cand}, []types.Event{event}, nil, stages.DefaultMapping(), asOf)

	cf := tables.CandidateFacts[0]
	assert.Equal(t, UnknownName, cf.ReqTitle)
	assert.Equal(t, UnknownName, cf.HMName)

	ef := tables.EventFacts[0]
	assert.Equal(t, UnknownName, ef.ReqTitle)
	assert.Equal(t, UnknownName, ef.ActorName)
}

func TestBuild_EventFactBucketsBothSides(t *testing.T) {
	event := types.Event{
		EventID: "ev_1", CandidateID: "cand_001", ReqID: "req_001",
		EventType: types.EventStageChange,
		FromStage: "HM Screen", ToStage: "Onsite",
		ActorUserID: "u_rec",
		EventAt:     daysAgo(2),
	}

	tables := Build([]types.Requisition{testReq()}, nil, []types.Event{event}, testUsers(), stages.DefaultMapping(), asOf)

	ef := tables.EventFacts[0]
	assert.Equal(t, types.BucketHMReview, ef.FromBucket)
	assert.Equal(t, types.BucketHMInterviewDecision, ef.ToBucket)
	assert.Equal(t, "Sam Li", ef.ActorName)
	assert.Equal(t, "u_hm", ef.HMUserID)
}

func TestBuild_IsIdempotent(t *testing.T) {
	reqs := []types.Requisition{testReq()}
	cands := []types.Candidate{
		{CandidateID: "cand_001", ReqID: "req_001", CurrentStage: "Interview"},
		{CandidateID: "cand_002", ReqID: "req_001", CurrentStage: "Offer", Disposition: "Withdrawn"},
	}
	events := []types.Event{
		{EventID: "ev_1", CandidateID: "cand_001", ReqID: "req_001", EventType: types.EventStageChange, ToStage: "Interview", EventAt: daysAgo(9)},
		{EventID: "ev_2", CandidateID: "cand_001", ReqID: "req_001", EventType: types.EventInterviewCompleted, EventAt: daysAgo(5)},
	}

	first := Build(reqs, cands, events, testUsers(), stages.DefaultMapping(), asOf)
	second := Build(reqs, cands, events, testUsers(), stages.DefaultMapping(), asOf)

	assert.Equal(t, first, second)
}

func TestDaysBetween_TruncatesPartialDays(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(start, start.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysBetween(start, start.Add(25*time.Hour)))
	assert.Equal(t, 7, DaysBetween(start, start.AddDate(0, 0, 7)))
}
