package service

import (
	"github.com/noah-isme/resource-planner-api/internal/models"
)

const defaultMaxUndoOperations = 50

// OperationLog is the bounded linear undo/redo history: an array-backed
// sequence with a cursor pointing at the most recently applied operation.
// Recording past the cursor discards the redone tail; exceeding the cap
// evicts the oldest entry. Not safe for concurrent use; the planner owns it
// under its own lock.
type OperationLog struct {
	ops    []models.Operation
	cursor int
	max    int
}

// NewOperationLog builds a log capped at max entries (default 50).
func NewOperationLog(max int) *OperationLog {
	if max <= 0 {
		max = defaultMaxUndoOperations
	}
	return &OperationLog{cursor: -1, max: max}
}

// Record appends an applied operation, discarding any redoable tail first.
func (l *OperationLog) Record(op models.Operation) {
	if l.cursor < len(l.ops)-1 {
		l.ops = l.ops[:l.cursor+1]
	}
	l.ops = append(l.ops, op)
	if overflow := len(l.ops) - l.max; overflow > 0 {
		l.ops = append([]models.Operation(nil), l.ops[overflow:]...)
	}
	l.cursor = len(l.ops) - 1
}

// CanUndo reports whether an operation is available to step back over.
func (l *OperationLog) CanUndo() bool {
	return l.cursor >= 0
}

// CanRedo reports whether a previously undone operation can be reapplied.
func (l *OperationLog) CanRedo() bool {
	return l.cursor < len(l.ops)-1
}

// Current returns the operation the cursor points at, i.e. the next undo
// candidate.
func (l *OperationLog) Current() (models.Operation, bool) {
	if !l.CanUndo() {
		return models.Operation{}, false
	}
	return l.ops[l.cursor], true
}

// Next returns the operation just past the cursor, i.e. the next redo
// candidate.
func (l *OperationLog) Next() (models.Operation, bool) {
	if !l.CanRedo() {
		return models.Operation{}, false
	}
	return l.ops[l.cursor+1], true
}

// StepBack moves the cursor one operation into the past.
func (l *OperationLog) StepBack() {
	if l.CanUndo() {
		l.cursor--
	}
}

// StepForward moves the cursor one operation into the future.
func (l *OperationLog) StepForward() {
	if l.CanRedo() {
		l.cursor++
	}
}

// Len returns the number of retained operations.
func (l *OperationLog) Len() int {
	return len(l.ops)
}

// Depth returns how many operations are undoable from the cursor.
func (l *OperationLog) Depth() int {
	return l.cursor + 1
}

// Reset drops the entire history, e.g. after a full refresh from the store.
func (l *OperationLog) Reset() {
	l.ops = nil
	l.cursor = -1
}
