package types

import "time"

// HMReqRollup is the per-open-requisition summary row consumed by the
// dashboard. Bucket counts cover every bucket, zeroes included.
type HMReqRollup struct {
	ReqID              string                 `json:"req_id"`
	ReqTitle           string                 `json:"req_title"`
	HMUserID           string                 `json:"hm_user_id"`
	HMName             string                 `json:"hm_name"`
	Function           string                 `json:"function"`
	Level              string                 `json:"level"`
	ReqAgeDays         int                    `json:"req_age_days"`
	CandidatesByBucket map[DecisionBucket]int `json:"candidates_by_bucket"`
	// PipelineDepth counts active candidates outside the DONE bucket.
	PipelineDepth         int           `json:"pipeline_depth"`
	RiskFlags             []RiskFlag    `json:"risk_flags"`
	PrimaryStallReason    StallReason   `json:"primary_stall_reason"`
	LastMovementAt        *time.Time    `json:"last_movement_at"`
	DaysSinceLastMovement int           `json:"days_since_last_movement"`
	Forecast              *FillForecast `json:"forecast"`
}

// PeerStanding is one hiring manager's relative position for a single
// latency metric. PercentileRank uses the inverted convention where a
// higher rank means faster than peers.
type PeerStanding struct {
	PercentileRank   int      `json:"percentile_rank"`
	CohortMedian     *float64 `json:"cohort_median"`
	InsufficientData bool     `json:"insufficient_data"`
}

// PeerComparison holds an HM's standing for each tracked latency.
type PeerComparison struct {
	Feedback PeerStanding `json:"feedback"`
	Review   PeerStanding `json:"review"`
	Decision PeerStanding `json:"decision"`
}

// HMRollup is the per-hiring-manager summary row, aggregated across every
// requisition referencing that HM (closed reqs included).
type HMRollup struct {
	HMUserID             string                 `json:"hm_user_id"`
	HMName               string                 `json:"hm_name"`
	OpenReqs             int                    `json:"open_reqs"`
	ClosedReqs           int                    `json:"closed_reqs"`
	AtRiskReqs           int                    `json:"at_risk_reqs"`
	CandidatesByBucket   map[DecisionBucket]int `json:"candidates_by_bucket"`
	ActiveCandidates     int                    `json:"active_candidates"`
	PendingActionsByType map[ActionType]int     `json:"pending_actions_by_type"`
	TotalPendingActions  int                    `json:"total_pending_actions"`
	LatencyMetrics       LatencyMetrics         `json:"latency_metrics"`
	PeerComparison       PeerComparison         `json:"peer_comparison"`
	FunctionMix          map[string]int         `json:"function_mix"`
	LevelMix             map[string]int         `json:"level_mix"`
}

// AnalysisResult is the full engine output for one run.
type AnalysisResult struct {
	Facts          *FactTables       `json:"facts"`
	ReqRollups     []HMReqRollup     `json:"req_rollups"`
	HMRollups      []HMRollup        `json:"hm_rollups"`
	PendingActions []HMPendingAction `json:"pending_actions"`
}
