package types

// CanonicalStage is a normalized pipeline stage name, mapped from free-text
// ATS labels via StageMappingConfig.
type CanonicalStage string

// Canonical stages in pipeline order.
const (
	StageApplied         CanonicalStage = "Applied"
	StageRecruiterScreen CanonicalStage = "Recruiter Screen"
	StageHMScreen        CanonicalStage = "HM Screen"
	StageInterview       CanonicalStage = "Interview"
	StageDebrief         CanonicalStage = "Debrief"
	StageFinalReview     CanonicalStage = "Final Review"
	StageOffer           CanonicalStage = "Offer"
	StageHired           CanonicalStage = "Hired"
	StageRejected        CanonicalStage = "Rejected"
	StageWithdrawn       CanonicalStage = "Withdrawn"
)

// DecisionBucket is a coarse classification of who must act next on a
// candidate.
type DecisionBucket string

// Decision buckets. DONE is terminal; OTHER covers early-pipeline and
// unmapped stages where the recruiter, not the hiring manager, owns the
// next move.
const (
	BucketHMReview            DecisionBucket = "HM_REVIEW"
	BucketHMInterviewDecision DecisionBucket = "HM_INTERVIEW_DECISION"
	BucketHMFeedback          DecisionBucket = "HM_FEEDBACK"
	BucketHMFinalDecision     DecisionBucket = "HM_FINAL_DECISION"
	BucketOfferDecision       DecisionBucket = "OFFER_DECISION"
	BucketDone                DecisionBucket = "DONE"
	BucketOther               DecisionBucket = "OTHER"
)

// PipelineBucketOrder lists the non-terminal buckets from least to most
// advanced. The forecaster walks this sequence forward from a candidate's
// current bucket; rollups report counts in this order.
var PipelineBucketOrder = []DecisionBucket{
	BucketOther,
	BucketHMReview,
	BucketHMInterviewDecision,
	BucketHMFeedback,
	BucketHMFinalDecision,
	BucketOfferDecision,
}

// AllBuckets lists every bucket, pipeline order first, DONE last.
var AllBuckets = append(append([]DecisionBucket{}, PipelineBucketOrder...), BucketDone)
