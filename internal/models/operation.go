package models

import "time"

// OperationKind tags an applied mutation in the undo/redo history.
type OperationKind string

const (
	OperationKindCreate OperationKind = "create"
	OperationKindUpdate OperationKind = "update"
	OperationKindDelete OperationKind = "delete"
	OperationKindMove   OperationKind = "move"
)

// Operation records one applied mutation with its pre- and post-images.
// Create operations carry no OldData, delete operations no NewData.
type Operation struct {
	ID            string        `json:"id"`
	Kind          OperationKind `json:"kind"`
	AllocationIDs []string      `json:"allocation_ids"`
	OldData       []Allocation  `json:"old_data,omitempty"`
	NewData       []Allocation  `json:"new_data,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}
