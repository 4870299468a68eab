// Package types provides type definitions for the record streams, fact
// tables, and rollups used throughout the hm-insights engine.
package types

import "time"

// Requisition is a raw requisition record as supplied by the ATS import.
type Requisition struct {
	ReqID           string     `json:"req_id"`
	ReqTitle        string     `json:"req_title"`
	Function        string     `json:"function"`
	JobFamily       string     `json:"job_family"`
	Level           string     `json:"level"`
	Location        string     `json:"location"`
	LocationCountry string     `json:"location_country,omitempty"`
	OpenedAt        *time.Time `json:"opened_at"`
	ClosedAt        *time.Time `json:"closed_at"`
	Status          string     `json:"status"`
	HiringManagerID string     `json:"hiring_manager_id"`
	RecruiterID     string     `json:"recruiter_id"`
}

// Candidate is a raw candidate record tied to a requisition.
type Candidate struct {
	CandidateID           string     `json:"candidate_id"`
	ReqID                 string     `json:"req_id"`
	Source                string     `json:"source"`
	AppliedAt             *time.Time `json:"applied_at"`
	CurrentStage          string     `json:"current_stage"`
	CurrentStageEnteredAt *time.Time `json:"current_stage_entered_at,omitempty"`
	Disposition           string     `json:"disposition,omitempty"` // Hired, Rejected, Withdrawn, Active, or empty
	HiredAt               *time.Time `json:"hired_at,omitempty"`
	OfferExtendedAt       *time.Time `json:"offer_extended_at,omitempty"`
	OfferAcceptedAt       *time.Time `json:"offer_accepted_at,omitempty"`
}

// EventType identifies the kind of pipeline event.
type EventType string

// Event types emitted by the ATS event stream.
const (
	EventStageChange        EventType = "STAGE_CHANGE"
	EventScreenCompleted    EventType = "SCREEN_COMPLETED"
	EventInterviewScheduled EventType = "INTERVIEW_SCHEDULED"
	EventInterviewCompleted EventType = "INTERVIEW_COMPLETED"
	EventFeedbackSubmitted  EventType = "FEEDBACK_SUBMITTED"
	EventOfferExtended      EventType = "OFFER_EXTENDED"
	EventOfferAccepted      EventType = "OFFER_ACCEPTED"
	EventOfferDeclined      EventType = "OFFER_DECLINED"
	EventCandidateWithdrew  EventType = "CANDIDATE_WITHDREW"
)

// Event is a raw pipeline event. EventAt is the only strict ordering key.
type Event struct {
	EventID     string            `json:"event_id"`
	CandidateID string            `json:"candidate_id"`
	ReqID       string            `json:"req_id"`
	EventType   EventType         `json:"event_type"`
	FromStage   string            `json:"from_stage,omitempty"`
	ToStage     string            `json:"to_stage,omitempty"`
	ActorUserID string            `json:"actor_user_id,omitempty"`
	EventAt     time.Time         `json:"event_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// User is a directory record used to resolve display names.
type User struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Team          string `json:"team"`
	ManagerUserID string `json:"manager_user_id,omitempty"`
}

// Snapshot bundles the four immutable record collections the engine
// operates on. The engine never mutates a snapshot.
type Snapshot struct {
	Requisitions []Requisition `json:"requisitions"`
	Candidates   []Candidate   `json:"candidates"`
	Events       []Event       `json:"events"`
	Users        []User        `json:"users"`
}
