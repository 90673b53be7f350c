package models

// SelectionMode distinguishes single from multi selection.
type SelectionMode string

const (
	SelectionModeSingle   SelectionMode = "single"
	SelectionModeMultiple SelectionMode = "multiple"
)

// SelectionState is transient UI-adjacent state; it is never persisted.
type SelectionState struct {
	IDs  []string      `json:"ids"`
	Mode SelectionMode `json:"mode"`
}
