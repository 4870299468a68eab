package types

// StallReasonCode identifies the single highest-priority diagnosis for why
// an open requisition is not progressing.
type StallReasonCode string

// Stall reason codes in classifier priority order. NONE means no rule fired.
const (
	StallAwaitingHMFeedback StallReasonCode = "AWAITING_HM_FEEDBACK"
	StallAwaitingHMReview   StallReasonCode = "AWAITING_HM_REVIEW"
	StallPipelineThin       StallReasonCode = "PIPELINE_THIN"
	StallNoActivity         StallReasonCode = "NO_ACTIVITY"
	StallOfferStall         StallReasonCode = "OFFER_STALL"
	StallLateStageEmpty     StallReasonCode = "LATE_STAGE_EMPTY"
	StallNone               StallReasonCode = "NONE"
)

// StallReason is the classifier verdict with its supporting evidence.
type StallReason struct {
	Code           StallReasonCode `json:"code"`
	Detail         string          `json:"detail,omitempty"`
	Count          int             `json:"count,omitempty"`
	MaxDaysOverdue int             `json:"max_days_overdue,omitempty"`
}

// RiskFlag is an independent boolean condition on a requisition. Multiple
// flags may co-occur even though the req has only one primary stall reason.
type RiskFlag string

// Risk flags, computed independently of the stall-reason chain.
const (
	RiskNoMovement      RiskFlag = "NO_MOVEMENT"
	RiskLowPipeline     RiskFlag = "LOW_PIPELINE"
	RiskFeedbackBacklog RiskFlag = "FEEDBACK_BACKLOG"
	RiskHMReviewBacklog RiskFlag = "HM_REVIEW_BACKLOG"
)
