// Package latency computes right-censored interval statistics over paired
// start/end pipeline events.
package latency

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jonathan/hm-insights/internal/types"
)

// Observation is one paired interval. EndAt is nil while the terminating
// event has not occurred as of the snapshot instant (right-censored).
type Observation struct {
	CandidateID string
	ReqID       string
	StartAt     time.Time
	EndAt       *time.Time
}

// Closed reports whether both ends of the interval were observed.
func (o Observation) Closed() bool {
	return o.EndAt != nil
}

// Days returns the interval length in days for a closed observation.
func (o Observation) Days() float64 {
	if o.EndAt == nil {
		return 0
	}
	return o.EndAt.Sub(o.StartAt).Hours() / 24
}

// DaysWaiting returns how long an open observation has been waiting as of
// the given instant, in whole days.
func (o Observation) DaysWaiting(asOf time.Time) int {
	return int(asOf.Sub(o.StartAt).Hours() / 24)
}

// Compute summarizes a set of observations. Percentiles cover closed
// observations only; open ones are reported as a censoring count.
// A closed observation with a negative duration indicates corrupt event
// ordering and is a programmer error, not degradable business data.
func Compute(observations []Observation) (types.LatencyStats, error) {
	var closed []float64
	open := 0
	for _, o := range observations {
		if !o.Closed() {
			open++
			continue
		}
		d := o.Days()
		if d < 0 {
			return types.LatencyStats{}, fmt.Errorf("negative interval duration %.2f days for candidate %s (non-monotonic timestamps)", d, o.CandidateID)
		}
		closed = append(closed, d)
	}
	return FromValues(closed, open), nil
}

// FromValues summarizes pre-computed closed interval values plus an open
// (censored) count. Empty samples yield all-nil numeric fields, never NaN.
func FromValues(values []float64, openItems int) types.LatencyStats {
	stats := types.LatencyStats{
		SampleSize: len(values),
		OpenItems:  openItems,
	}
	if len(values) == 0 {
		return stats
	}

	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	median := Median(sorted)
	p75 := Percentile(sorted, 75)
	p90 := Percentile(sorted, 90)
	max := sorted[len(sorted)-1]

	stats.Median = &median
	stats.P75 = &p75
	stats.P90 = &p90
	stats.Max = &max
	return stats
}

// Percentile returns sorted[ceil(p/100*n)-1] with the index clamped to
// [0, n-1]. The input must already be sorted ascending.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Median returns the middle element for odd-length input and the average
// of the two middle elements for even-length input. The input must already
// be sorted ascending.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
