package types

import "time"

// ActionType identifies the kind of overdue item behind a pending action.
type ActionType string

// Pending action types.
const (
	ActionFeedbackDue ActionType = "FEEDBACK_DUE"
	ActionReviewDue   ActionType = "REVIEW_DUE"
	ActionDecisionDue ActionType = "DECISION_DUE"
)

// HMPendingAction is one overdue item owed by a hiring manager, detected
// on an open requisition.
type HMPendingAction struct {
	ActionType      ActionType `json:"action_type"`
	HMUserID        string     `json:"hm_user_id"`
	HMName          string     `json:"hm_name"`
	ReqID           string     `json:"req_id"`
	ReqTitle        string     `json:"req_title"`
	CandidateID     string     `json:"candidate_id"`
	TriggerDate     time.Time  `json:"trigger_date"`
	DaysWaiting     int        `json:"days_waiting"`
	DaysOverdue     int        `json:"days_overdue"`
	SuggestedAction string     `json:"suggested_action"`
}
