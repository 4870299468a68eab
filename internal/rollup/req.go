// Package rollup aggregates fact tables into per-requisition and
// per-hiring-manager summary rows.
package rollup

import (
	"github.com/jonathan/hm-insights/internal/facts"
	"github.com/jonathan/hm-insights/internal/forecast"
	"github.com/jonathan/hm-insights/internal/stall"
	"github.com/jonathan/hm-insights/internal/types"
)

// OpenReqs filters the requisition facts that belong to the open-pipeline
// universe: open status and a known opened_at.
func OpenReqs(reqFacts []types.ReqFact) []types.ReqFact {
	var open []types.ReqFact
	for _, r := range reqFacts {
		if r.IsOpen && r.OpenedAt != nil {
			open = append(open, r)
		}
	}
	return open
}

// BuildReqRollup builds the summary row for a single open requisition.
func BuildReqRollup(
	req types.ReqFact,
	cands []types.CandidateFact,
	events []types.EventFact,
	rules types.HMRulesConfig,
	tables *types.FactTables,
) types.HMReqRollup {
	daysSince := stall.DaysSinceLastMovement(req, events, tables.AsOfDate)
	reason, flags := stall.Classify(stall.Input{
		Req:                   req,
		Candidates:            cands,
		Events:                events,
		DaysSinceLastMovement: daysSince,
		AsOf:                  tables.AsOfDate,
		Rules:                 rules,
	})

	return types.HMReqRollup{
		ReqID:                 req.ReqID,
		ReqTitle:              req.ReqTitle,
		HMUserID:              req.HiringManagerID,
		HMName:                req.HMName,
		Function:              req.Function,
		Level:                 req.Level,
		ReqAgeDays:            req.ReqAgeDays,
		CandidatesByBucket:    facts.CountByBucket(cands),
		PipelineDepth:         facts.ActiveDepth(cands),
		RiskFlags:             flags,
		PrimaryStallReason:    reason,
		LastMovementAt:        stall.LastMovement(events),
		DaysSinceLastMovement: daysSince,
		Forecast:              forecast.Project(cands, tables.AsOfDate),
	}
}

// BuildReqRollups builds one row per open requisition, in req-fact order.
func BuildReqRollups(tables *types.FactTables, rules types.HMRulesConfig) []types.HMReqRollup {
	candsByReq := facts.GroupCandidatesByReq(tables.CandidateFacts)
	eventsByReq := facts.GroupEventsByReq(tables.EventFacts)

	open := OpenReqs(tables.ReqFacts)
	rollups := make([]types.HMReqRollup, 0, len(open))
	for _, req := range open {
		rollups = append(rollups, BuildReqRollup(req, candsByReq[req.ReqID], eventsByReq[req.ReqID], rules, tables))
	}
	return rollups
}
