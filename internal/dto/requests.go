package dto

// CreateAllocationsRequest creates one allocation per employee id against a
// single project and date range.
type CreateAllocationsRequest struct {
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,required"`
	ProjectID   string   `json:"project_id" validate:"required"`
	StartDate   Date     `json:"start_date"`
	EndDate     *Date    `json:"end_date,omitempty"`
	Hours       float64  `json:"hours" validate:"gte=0"`
	Role        string   `json:"role"`
	Notes       string   `json:"notes"`
}

// MoveAllocationRequest relocates an allocation to a new employee and start
// date, preserving its duration.
type MoveAllocationRequest struct {
	TargetEmployeeID string `json:"target_employee_id" validate:"required"`
	TargetDate       Date   `json:"target_date"`
}

// DeleteAllocationsRequest removes a batch of allocations.
type DeleteAllocationsRequest struct {
	AllocationIDs []string `json:"allocation_ids" validate:"required,min=1,dive,required"`
}

// BulkOperationRequest applies one operation kind to many allocations,
// sequentially, with per-item outcomes.
type BulkOperationRequest struct {
	Kind             string           `json:"kind" validate:"required,oneof=move update delete"`
	AllocationIDs    []string         `json:"allocation_ids" validate:"required,min=1,dive,required"`
	TargetEmployeeID string           `json:"target_employee_id,omitempty"`
	TargetDate       *Date            `json:"target_date,omitempty"`
	Fields           AllocationFields `json:"fields,omitempty"`
}

// SelectionRequest replaces the current selection.
type SelectionRequest struct {
	AllocationIDs []string `json:"allocation_ids"`
	Mode          string   `json:"mode" validate:"omitempty,oneof=single multiple"`
}
