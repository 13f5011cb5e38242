// Package engine implements the pure escalation rules: elapsed-time
// bucketing and the follow-up/termination decision. Nothing in this package
// touches storage or the wall clock.
package engine

import "time"

const day = 24 * time.Hour

// Follow-up cadence by silence bucket. The cadence tightens as silence grows,
// then cuts off entirely at the lost threshold.
const (
	// LostThresholdDays is the silence duration at which a lead is terminated.
	LostThresholdDays = 45
	// SlowBucketFloorDays is the lower bound of the slow-cadence bucket.
	SlowBucketFloorDays = 31
	// MediumBucketFloorDays is the lower bound of the medium-cadence bucket.
	MediumBucketFloorDays = 15

	SlowIntervalDays   = 7
	MediumIntervalDays = 5
	FastIntervalDays   = 3
)

// ElapsedDays returns the number of whole days between the reference instant
// and now. The reference is the last contact when one exists, otherwise the
// lead's creation time. Negative spans (clock skew, future timestamps) clamp
// to zero.
func ElapsedDays(now time.Time, lastContactedAt *time.Time, createdAt time.Time) int {
	ref := createdAt
	if lastContactedAt != nil {
		ref = *lastContactedAt
	}

	elapsed := now.Sub(ref)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / day)
}

// IntervalDays maps elapsed silence to the next follow-up interval. A zero
// return means the lead has crossed the lost threshold and gets no further
// follow-up.
func IntervalDays(elapsedDays int) int {
	switch {
	case elapsedDays >= LostThresholdDays:
		return 0
	case elapsedDays >= SlowBucketFloorDays:
		return SlowIntervalDays
	case elapsedDays >= MediumBucketFloorDays:
		return MediumIntervalDays
	default:
		return FastIntervalDays
	}
}
