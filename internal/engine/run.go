// Package engine provides the high-level orchestration for one analysis
// run: facts, rollups, pending actions, and peer benchmarks from a single
// snapshot.
package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hm-insights/internal/actions"
	"github.com/jonathan/hm-insights/internal/benchmark"
	"github.com/jonathan/hm-insights/internal/facts"
	"github.com/jonathan/hm-insights/internal/rollup"
	"github.com/jonathan/hm-insights/internal/stages"
	"github.com/jonathan/hm-insights/internal/types"
)

// ProgressCallback is called as analysis steps complete.
type ProgressCallback func(step, message string)

// Options holds the inputs for one analysis run.
type Options struct {
	Snapshot    *types.Snapshot
	StageConfig *types.StageMappingConfig // nil uses the default mapping
	Rules       *types.HMRulesConfig      // nil uses DefaultHMRules
	AsOf        time.Time                 // zero uses the wall clock
	OnProgress  ProgressCallback
}

// emit reports progress if a callback is configured.
func (o *Options) emit(step, message string) {
	if o.OnProgress != nil {
		o.OnProgress(step, message)
	}
}

// Run executes a full analysis. It is a pure function of the snapshot, the
// configs, and the as-of instant: identical inputs produce structurally
// identical output, including ordering.
func Run(ctx context.Context, opts Options) (*types.AnalysisResult, error) {
	if opts.Snapshot == nil {
		return nil, fmt.Errorf("snapshot is required")
	}

	rules := types.DefaultHMRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules config: %w", err)
	}

	stageCfg := opts.StageConfig
	if stageCfg == nil {
		stageCfg = stages.DefaultMapping()
	}

	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	snap := opts.Snapshot
	tables := facts.Build(snap.Requisitions, snap.Candidates, snap.Events, snap.Users, stageCfg, asOf)
	opts.emit("facts", fmt.Sprintf("built %d req, %d candidate, %d event facts",
		len(tables.ReqFacts), len(tables.CandidateFacts), len(tables.EventFacts)))

	candsByReq := facts.GroupCandidatesByReq(tables.CandidateFacts)
	eventsByReq := facts.GroupEventsByReq(tables.EventFacts)
	openReqs := rollup.OpenReqs(tables.ReqFacts)

	// Classification is independent per requisition, so fan out; indexed
	// writes keep the output order identical to a serial pass. Pending
	// actions only need the fact tables and run as a sibling branch.
	reqRollups := make([]types.HMReqRollup, len(openReqs))
	var pending []types.HMPendingAction

	g, _ := errgroup.WithContext(ctx)
	for i := range openReqs {
		i := i
		g.Go(func() error {
			req := openReqs[i]
			reqRollups[i] = rollup.BuildReqRollup(req, candsByReq[req.ReqID], eventsByReq[req.ReqID], rules, tables)
			return nil
		})
	}
	g.Go(func() error {
		pending = actions.FindPendingActions(tables, rules)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	opts.emit("rollups", fmt.Sprintf("built %d req rollups", len(reqRollups)))
	opts.emit("actions", fmt.Sprintf("found %d pending actions", len(pending)))

	hmRollups, err := rollup.BuildHMRollups(tables, reqRollups, pending)
	if err != nil {
		return nil, fmt.Errorf("build HM rollups: %w", err)
	}
	benchmark.ApplyPeerBenchmarks(hmRollups)
	opts.emit("benchmarks", fmt.Sprintf("benchmarked %d hiring managers", len(hmRollups)))

	return &types.AnalysisResult{
		Facts:          tables,
		ReqRollups:     reqRollups,
		HMRollups:      hmRollups,
		PendingActions: pending,
	}, nil
}
