// Package facts builds the enriched fact tables from the raw record
// streams. Building is a pure function of the inputs and the as-of
// instant; every lookup map is constructed per invocation.
package facts

import (
	"sort"
	"strings"
	"time"

	"github.com/jonathan/hm-insights/internal/stages"
	"github.com/jonathan/hm-insights/internal/types"
)

// UnknownName is the display name used when a user lookup cannot be
// resolved. Missing foreign keys degrade to this rather than failing.
const UnknownName = "Unknown"

// inactiveDispositions end a candidate's pipeline regardless of the stage
// label they were last parked in.
var inactiveDispositions = map[string]bool{
	"rejected":  true,
	"withdrawn": true,
	"hired":     true,
}

// Build joins the four record collections into the three fact tables.
// It never mutates its inputs and never fails on malformed business data.
func Build(
	reqs []types.Requisition,
	candidates []types.Candidate,
	events []types.Event,
	users []types.User,
	stageCfg *types.StageMappingConfig,
	asOf time.Time,
) *types.FactTables {
	userNames := buildUserNameMap(users)
	reqByID := buildReqMap(reqs)
	stageEntries := buildStageEntryMap(events)

	reqFacts := make([]types.ReqFact, 0, len(reqs))
	for _, req := range reqs {
		reqFacts = append(reqFacts, buildReqFact(req, userNames, asOf))
	}

	candidateFacts := make([]types.CandidateFact, 0, len(candidates))
	for _, cand := range candidates {
		candidateFacts = append(candidateFacts, buildCandidateFact(cand, reqByID, userNames, stageEntries, stageCfg, asOf))
	}

	eventFacts := make([]types.EventFact, 0, len(events))
	for _, ev := range events {
		eventFacts = append(eventFacts, buildEventFact(ev, reqByID, userNames, stageCfg))
	}

	return &types.FactTables{
		ReqFacts:       reqFacts,
		CandidateFacts: candidateFacts,
		EventFacts:     eventFacts,
		AsOfDate:       asOf,
	}
}

// buildReqFact derives the requisition fact row.
func buildReqFact(req types.Requisition, userNames map[string]string, asOf time.Time) types.ReqFact {
	fact := types.ReqFact{
		Requisition:   req,
		IsOpen:        req.ClosedAt == nil && strings.EqualFold(req.Status, "Open"),
		HMName:        lookupName(userNames, req.HiringManagerID),
		RecruiterName: lookupName(userNames, req.RecruiterID),
	}
	// A req without opened_at stays out of the open-pipeline universe but
	// still gets a fact row with zero age.
	if req.OpenedAt != nil {
		end := asOf
		if req.ClosedAt != nil {
			end = *req.ClosedAt
		}
		fact.ReqAgeDays = DaysBetween(*req.OpenedAt, end)
	}
	return fact
}

// buildCandidateFact derives the candidate fact row.
func buildCandidateFact(
	cand types.Candidate,
	reqByID map[string]types.Requisition,
	userNames map[string]string,
	stageEntries map[stageEntryKey]time.Time,
	stageCfg *types.StageMappingConfig,
	asOf time.Time,
) types.CandidateFact {
	canonical := stages.Normalize(cand.CurrentStage, stageCfg)

	fact := types.CandidateFact{
		Candidate:      cand,
		CanonicalStage: canonical,
		DecisionBucket: stages.BucketForStage(canonical),
		IsActive:       isActive(cand.Disposition, canonical),
		ReqTitle:       UnknownName,
		HMName:         UnknownName,
		RecruiterName:  UnknownName,
	}

	if req, ok := reqByID[cand.ReqID]; ok {
		fact.ReqTitle = req.ReqTitle
		fact.HMUserID = req.HiringManagerID
		fact.HMName = lookupName(userNames, req.HiringManagerID)
		fact.RecruiterName = lookupName(userNames, req.RecruiterID)
	}

	// Prefer the recorded stage entry time; fall back to the event-log
	// reconstruction. When neither exists the stage age stays zero rather
	// than fabricating a timestamp.
	entered := cand.CurrentStageEnteredAt
	if entered == nil {
		if at, ok := stageEntries[entryKey(cand.CandidateID, cand.CurrentStage)]; ok {
			entered = &at
		}
	}
	fact.StageEnteredAt = entered
	if entered != nil {
		fact.StageAgeDays = DaysBetween(*entered, asOf)
	}

	return fact
}

// buildEventFact derives the event fact row, normalizing both sides of the
// transition independently.
func buildEventFact(
	ev types.Event,
	reqByID map[string]types.Requisition,
	userNames map[string]string,
	stageCfg *types.StageMappingConfig,
) types.EventFact {
	fact := types.EventFact{
		Event:      ev,
		ReqTitle:   UnknownName,
		ActorName:  lookupName(userNames, ev.ActorUserID),
		FromBucket: stages.BucketForStage(stages.Normalize(ev.FromStage, stageCfg)),
		ToBucket:   stages.BucketForStage(stages.Normalize(ev.ToStage, stageCfg)),
	}
	if req, ok := reqByID[ev.ReqID]; ok {
		fact.ReqTitle = req.ReqTitle
		fact.HMUserID = req.HiringManagerID
	}
	return fact
}

// isActive applies the activity rule: disposition wins over stage, so a
// candidate marked Hired while parked in a non-terminal stage label is
// still inactive (stale label, a data-quality signal rather than an error).
func isActive(disposition string, canonical *types.CanonicalStage) bool {
	if inactiveDispositions[strings.ToLower(strings.TrimSpace(disposition))] {
		return false
	}
	return !stages.IsTerminalStage(canonical)
}

// stageEntryKey keys the reconstructed stage-entry map.
type stageEntryKey struct {
	candidateID string
	stageLabel  string
}

func entryKey(candidateID, stageLabel string) stageEntryKey {
	return stageEntryKey{
		candidateID: candidateID,
		stageLabel:  strings.ToLower(strings.TrimSpace(stageLabel)),
	}
}

// buildStageEntryMap folds STAGE_CHANGE events, sorted ascending by event
// time, into a last-write-wins map: the most recent time each candidate
// entered each raw stage label. One sort plus one scan keeps this linear
// in the event count.
func buildStageEntryMap(events []types.Event) map[stageEntryKey]time.Time {
	changes := make([]types.Event, 0, len(events))
	for _, ev := range events {
		if ev.EventType == types.EventStageChange {
			changes = append(changes, ev)
		}
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].EventAt.Before(changes[j].EventAt)
	})

	entries := make(map[stageEntryKey]time.Time, len(changes))
	for _, ev := range changes {
		entries[entryKey(ev.CandidateID, ev.ToStage)] = ev.EventAt
	}
	return entries
}

// buildUserNameMap indexes users by ID for display-name resolution.
func buildUserNameMap(users []types.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.UserID] = u.Name
	}
	return names
}

// buildReqMap indexes requisitions by ID.
func buildReqMap(reqs []types.Requisition) map[string]types.Requisition {
	byID := make(map[string]types.Requisition, len(reqs))
	for _, r := range reqs {
		byID[r.ReqID] = r
	}
	return byID
}

// lookupName resolves a user ID to a display name, degrading to Unknown.
func lookupName(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return UnknownName
}

// DaysBetween returns whole days from start to end, truncated toward zero.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
