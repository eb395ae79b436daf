package workout

import (
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestRestExtendedOverThreshold(t *testing.T) {
	if !restExtended(intPtr(101), intPtr(90)) {
		t.Error("restExtended(101, 90) = false, want true")
	}
}

func TestRestExtendedExactlyAtSlack(t *testing.T) {
	// Ten seconds over prescribed is still within the grace period.
	if restExtended(intPtr(100), intPtr(90)) {
		t.Error("restExtended(100, 90) = true, want false")
	}
}

func TestRestExtendedUnderPrescribed(t *testing.T) {
	if restExtended(intPtr(60), intPtr(90)) {
		t.Error("restExtended(60, 90) = true, want false")
	}
}

func TestRestExtendedMissingDuration(t *testing.T) {
	if restExtended(nil, intPtr(90)) {
		t.Error("restExtended(nil, 90) = true, want false")
	}
}

func TestRestExtendedMissingPrescribed(t *testing.T) {
	if restExtended(intPtr(500), nil) {
		t.Error("restExtended(500, nil) = true, want false")
	}
}

func TestValidRPEValues(t *testing.T) {
	for _, rpe := range []float64{7, 7.5, 8, 8.5, 9, 9.5, 10} {
		if problems := validateSetValues(nil, nil, nil, floatPtr(rpe)); len(problems) != 0 {
			t.Errorf("validateSetValues(rpe=%v) = %v, want no problems", rpe, problems)
		}
	}
}

func TestInvalidRPEValues(t *testing.T) {
	for _, rpe := range []float64{6.5, 7.25, 10.5, 0, -1, 11} {
		if problems := validateSetValues(nil, nil, nil, floatPtr(rpe)); len(problems) == 0 {
			t.Errorf("validateSetValues(rpe=%v) passed, want a problem", rpe)
		}
	}
}

func TestValidateSetValuesAggregatesProblems(t *testing.T) {
	problems := validateSetValues(intPtr(0), floatPtr(-5), intPtr(-1), floatPtr(6))
	if len(problems) != 4 {
		t.Fatalf("len(problems) = %d, want 4: %v", len(problems), problems)
	}
	joined := strings.Join(problems, "; ")
	for _, want := range []string{"set_number", "weight_lbs", "reps", "rpe"} {
		if !strings.Contains(joined, want) {
			t.Errorf("problems missing %q: %s", want, joined)
		}
	}
}

func TestValidateSetValuesZeroWeightAndReps(t *testing.T) {
	// Bodyweight work logs zero pounds, and a failed set can log zero reps.
	if problems := validateSetValues(intPtr(1), floatPtr(0), intPtr(0), floatPtr(10)); len(problems) != 0 {
		t.Errorf("validateSetValues = %v, want no problems", problems)
	}
}
