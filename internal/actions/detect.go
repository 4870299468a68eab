// Package actions scans fact tables for overdue hiring-manager items:
// feedback, reviews, and final decisions.
package actions

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/hm-insights/internal/facts"
	"github.com/jonathan/hm-insights/internal/latency"
	"github.com/jonathan/hm-insights/internal/types"
)

// FindPendingActions emits one record per overdue item across all open
// requisitions. Output is sorted by daysOverdue descending; ties keep
// discovery order so identical inputs always produce identical output.
func FindPendingActions(tables *types.FactTables, rules types.HMRulesConfig) []types.HMPendingAction {
	candsByReq := facts.GroupCandidatesByReq(tables.CandidateFacts)
	eventsByReq := facts.GroupEventsByReq(tables.EventFacts)

	var pending []types.HMPendingAction
	for _, req := range tables.ReqFacts {
		if !req.IsOpen {
			continue
		}
		pending = append(pending, feedbackDue(req, eventsByReq[req.ReqID], rules, tables.AsOfDate)...)
		pending = append(pending, stageDue(req, candsByReq[req.ReqID], types.BucketHMReview, types.ActionReviewDue, rules.HMReviewDueDays)...)
		pending = append(pending, stageDue(req, candsByReq[req.ReqID], types.BucketHMFinalDecision, types.ActionDecisionDue, rules.DecisionDueDays)...)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DaysOverdue > pending[j].DaysOverdue
	})
	return pending
}

// feedbackDue emits one action per completed interview whose feedback is
// past the due threshold.
func feedbackDue(req types.ReqFact, events []types.EventFact, rules types.HMRulesConfig, asOf time.Time) []types.HMPendingAction {
	var due []types.HMPendingAction
	for _, o := range latency.OpenObservations(latency.FeedbackObservations(events)) {
		waiting := o.DaysWaiting(asOf)
		overdue := waiting - rules.FeedbackDueDays
		if overdue <= 0 {
			continue
		}
		due = append(due, types.HMPendingAction{
			ActionType:      types.ActionFeedbackDue,
			HMUserID:        req.HiringManagerID,
			HMName:          req.HMName,
			ReqID:           req.ReqID,
			ReqTitle:        req.ReqTitle,
			CandidateID:     o.CandidateID,
			TriggerDate:     o.StartAt,
			DaysWaiting:     waiting,
			DaysOverdue:     overdue,
			SuggestedAction: fmt.Sprintf("Submit interview feedback for candidate %s (%d days overdue)", o.CandidateID, overdue),
		})
	}
	return due
}

// stageDue emits one action per active candidate parked in the given
// bucket past its threshold.
func stageDue(req types.ReqFact, cands []types.CandidateFact, bucket types.DecisionBucket, actionType types.ActionType, dueDays int) []types.HMPendingAction {
	verb := "Review"
	if actionType == types.ActionDecisionDue {
		verb = "Make a final decision on"
	}
	var due []types.HMPendingAction
	for _, c := range cands {
		if !c.IsActive || c.DecisionBucket != bucket {
			continue
		}
		overdue := c.StageAgeDays - dueDays
		if overdue <= 0 {
			continue
		}
		action := types.HMPendingAction{
			ActionType:      actionType,
			HMUserID:        req.HiringManagerID,
			HMName:          req.HMName,
			ReqID:           req.ReqID,
			ReqTitle:        req.ReqTitle,
			CandidateID:     c.CandidateID,
			DaysWaiting:     c.StageAgeDays,
			DaysOverdue:     overdue,
			SuggestedAction: fmt.Sprintf("%s candidate %s (%d days overdue)", verb, c.CandidateID, overdue),
		}
		if c.StageEnteredAt != nil {
			action.TriggerDate = *c.StageEnteredAt
		}
		due = append(due, action)
	}
	return due
}
