// Package progression classifies a session's performance against the most
// recent prior session for the same exercise.
package progression

// Progression statuses.
const (
	StatusProgressed = "progressed"
	StatusSame       = "same"
	StatusRegressed  = "regressed"
	StatusFirstTime  = "first_time"
)

// Progression reasons, set only when status is progressed.
const (
	ReasonHigherWeight = "higher_weight"
	ReasonHigherReps   = "higher_reps"
)

// Set is the slice of a logged set that matters for comparison.
type Set struct {
	SetNumber int
	WeightLbs float64
	Reps      int
}

// Result is a progression verdict.
type Result struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Compare classifies current against previous, matching sets by set number.
// Current sets with no same-numbered previous set are ignored. A weight
// increase on any matched pair dominates; at equal weight, more reps count
// as progression and fewer as regression. Weight equality is exact.
func Compare(current, previous []Set) Result {
	if len(previous) == 0 {
		return Result{Status: StatusFirstTime}
	}

	var higherWeight, higherReps, lowerPerformance bool

	for _, cur := range current {
		prev, ok := findSet(previous, cur.SetNumber)
		if !ok {
			continue
		}

		switch {
		case cur.WeightLbs > prev.WeightLbs:
			higherWeight = true
		case cur.WeightLbs == prev.WeightLbs:
			if cur.Reps > prev.Reps {
				higherReps = true
			} else if cur.Reps < prev.Reps {
				lowerPerformance = true
			}
		default:
			lowerPerformance = true
		}
	}

	switch {
	case higherWeight:
		return Result{Status: StatusProgressed, Reason: ReasonHigherWeight}
	case higherReps:
		return Result{Status: StatusProgressed, Reason: ReasonHigherReps}
	case !lowerPerformance:
		return Result{Status: StatusSame}
	default:
		return Result{Status: StatusRegressed}
	}
}

func findSet(sets []Set, setNumber int) (Set, bool) {
	for _, s := range sets {
		if s.SetNumber == setNumber {
			return s, true
		}
	}
	return Set{}, false
}
