package models

import (
	"time"

	"github.com/google/uuid"
)

// SetLog is a single logged set.
type SetLog struct {
	ID                    uuid.UUID `json:"id"`
	SetNumber             int       `json:"set_number"`
	WeightLbs             float64   `json:"weight_lbs"`
	Reps                  int       `json:"reps"`
	RPE                   float64   `json:"rpe"`
	RestDurationSeconds   *int      `json:"rest_duration_seconds"`
	PrescribedRestSeconds *int      `json:"prescribed_rest_seconds"`
	RestWasExtended       bool      `json:"rest_was_extended"`
	CreatedAt             time.Time `json:"created_at"`
}

// NewSet is the payload for logging a set.
type NewSet struct {
	SetNumber             int     `json:"set_number"`
	WeightLbs             float64 `json:"weight_lbs"`
	Reps                  int     `json:"reps"`
	RPE                   float64 `json:"rpe"`
	RestDurationSeconds   *int    `json:"rest_duration_seconds"`
	PrescribedRestSeconds *int    `json:"prescribed_rest_seconds"`
}

// SetPatch is a partial update for a set. Nil fields are left unchanged;
// a rest field cannot be cleared through a patch, only replaced.
type SetPatch struct {
	SetNumber             *int     `json:"set_number"`
	WeightLbs             *float64 `json:"weight_lbs"`
	Reps                  *int     `json:"reps"`
	RPE                   *float64 `json:"rpe"`
	RestDurationSeconds   *int     `json:"rest_duration_seconds"`
	PrescribedRestSeconds *int     `json:"prescribed_rest_seconds"`
}

// IsZero reports whether the patch carries no fields.
func (p SetPatch) IsZero() bool {
	return p.SetNumber == nil && p.WeightLbs == nil && p.Reps == nil &&
		p.RPE == nil && p.RestDurationSeconds == nil && p.PrescribedRestSeconds == nil
}

// TouchesRest reports whether the patch changes either rest field, which
// requires the rest_was_extended flag to be recomputed.
func (p SetPatch) TouchesRest() bool {
	return p.RestDurationSeconds != nil || p.PrescribedRestSeconds != nil
}
