package models

// ResourceLane aggregates one employee's allocations with utilization.
// Utilization is the raw computed percentage and may exceed 100; capping is a
// display concern.
type ResourceLane struct {
	Employee    Employee     `json:"employee"`
	Allocations []Allocation `json:"allocations"`
	TotalHours  float64      `json:"total_hours"`
	Capacity    float64      `json:"capacity"`
	Utilization int          `json:"utilization"`
}
