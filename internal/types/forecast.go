package types

import "time"

// FillForecast projects fill dates for a requisition from its current
// pipeline position. Nil forecasts mean there is no active pipeline to
// project from.
type FillForecast struct {
	// CurrentBucket is the furthest-progressed non-DONE bucket holding at
	// least one active candidate.
	CurrentBucket DecisionBucket `json:"current_bucket"`
	LikelyDays    int            `json:"likely_days"`
	EarliestDate  time.Time      `json:"earliest_date"`
	LikelyDate    time.Time      `json:"likely_date"`
	LateDate      time.Time      `json:"late_date"`
}
