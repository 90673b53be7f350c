package models

// DropValidation is the advisory pre-flight result for a proposed move. A
// valid result does not guarantee the store will accept the mutation.
type DropValidation struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason,omitempty"`
}

// Drop validation rejection reasons surfaced to the presentation layer.
const (
	DropReasonAllocationNotFound = "Allocation not found"
	DropReasonEmployeeNotFound   = "Target employee not found"
	DropReasonSlotTaken          = "Time slot already allocated"
)
