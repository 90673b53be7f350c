package models

import "time"

// AllocationStatus tracks an allocation through its lifecycle.
type AllocationStatus string

const (
	AllocationStatusPlanned   AllocationStatus = "planned"
	AllocationStatusActive    AllocationStatus = "active"
	AllocationStatusCompleted AllocationStatus = "completed"
	AllocationStatusCancelled AllocationStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s AllocationStatus) Valid() bool {
	switch s {
	case AllocationStatusPlanned, AllocationStatusActive, AllocationStatusCompleted, AllocationStatusCancelled:
		return true
	}
	return false
}

// Allocation is a time-bounded commitment of an employee's hours to a project.
// Invariants: StartDate <= EndDate, AllocatedHours >= 0.
type Allocation struct {
	ID             string           `db:"id" json:"id"`
	EmployeeID     string           `db:"employee_id" json:"employee_id"`
	ProjectID      string           `db:"project_id" json:"project_id"`
	StartDate      time.Time        `db:"start_date" json:"start_date"`
	EndDate        time.Time        `db:"end_date" json:"end_date"`
	AllocatedHours float64          `db:"allocated_hours" json:"allocated_hours"`
	Role           string           `db:"role" json:"role"`
	Status         AllocationStatus `db:"status" json:"status"`
	Active         bool             `db:"active" json:"active"`
	Notes          string           `db:"notes" json:"notes"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// CoversDate reports whether the date falls inside the allocation's range,
// inclusive at both ends. Comparison is on calendar days.
func (a Allocation) CoversDate(date time.Time) bool {
	d := DateOnly(date)
	return !DateOnly(a.StartDate).After(d) && !DateOnly(a.EndDate).Before(d)
}

// Overlaps reports whether two allocations' date ranges intersect, inclusive
// at both ends so that single-day touching counts.
func (a Allocation) Overlaps(b Allocation) bool {
	return !DateOnly(a.StartDate).After(DateOnly(b.EndDate)) &&
		!DateOnly(a.EndDate).Before(DateOnly(b.StartDate))
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AllocationFilter describes query params for listing allocations.
type AllocationFilter struct {
	EmployeeID string
	ProjectID  string
	Status     string
	From       time.Time
	To         time.Time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
