package models

import "time"

// PlannerSnapshot is a point-in-time view of the engine's derived state,
// used by exports.
type PlannerSnapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Allocations []Allocation   `json:"allocations"`
	Conflicts   []Conflict     `json:"conflicts"`
	Lanes       []ResourceLane `json:"lanes"`
}
