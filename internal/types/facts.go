package types

import "time"

// ReqFact is a requisition enriched with derived fields. Facts are rebuilt
// wholesale on every engine run and never mutated afterwards.
type ReqFact struct {
	Requisition

	// IsOpen is true when the req has no closed_at and its status is "Open".
	IsOpen bool `json:"is_open"`
	// ReqAgeDays is frozen at closed_at for closed reqs, otherwise measured
	// against the as-of instant. Zero when opened_at is missing.
	ReqAgeDays    int    `json:"req_age_days"`
	HMName        string `json:"hm_name"`
	RecruiterName string `json:"recruiter_name"`
}

// CandidateFact is a candidate enriched with normalized stage, decision
// bucket, activity state, and resolved display fields.
type CandidateFact struct {
	Candidate

	// CanonicalStage is nil when the raw label has no mapping rule.
	CanonicalStage *CanonicalStage `json:"canonical_stage"`
	DecisionBucket DecisionBucket  `json:"decision_bucket"`
	IsActive       bool            `json:"is_active"`
	// StageEnteredAt is reconstructed from STAGE_CHANGE events when the raw
	// record lacks it; nil when no entry event exists either.
	StageEnteredAt *time.Time `json:"stage_entered_at"`
	StageAgeDays   int        `json:"stage_age_days"`
	ReqTitle       string     `json:"req_title"`
	HMUserID       string     `json:"hm_user_id"`
	HMName         string     `json:"hm_name"`
	RecruiterName  string     `json:"recruiter_name"`
}

// EventFact is an event enriched with requisition context and the decision
// buckets on either side of the transition.
type EventFact struct {
	Event

	ReqTitle   string         `json:"req_title"`
	ActorName  string         `json:"actor_name"`
	HMUserID   string         `json:"hm_user_id"`
	FromBucket DecisionBucket `json:"from_bucket"`
	ToBucket   DecisionBucket `json:"to_bucket"`
}

// FactTables holds the three enriched fact tables plus the as-of instant
// they were built against.
type FactTables struct {
	ReqFacts       []ReqFact       `json:"req_facts"`
	CandidateFacts []CandidateFact `json:"candidate_facts"`
	EventFacts     []EventFact     `json:"event_facts"`
	AsOfDate       time.Time       `json:"as_of_date"`
}
