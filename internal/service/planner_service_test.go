package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/resource-planner-api/internal/dto"
	"github.com/noah-isme/resource-planner-api/internal/models"
	appErrors "github.com/noah-isme/resource-planner-api/pkg/errors"
)

type mockAllocationStore struct {
	items        map[string]models.Allocation
	listErr      error
	createErr    error
	updateErr    error
	deleteErr    error
	failCreateID string
	failDeleteID string
	createCalls  int
	updateCalls  int
	deleteCalls  int
}

func newMockAllocationStore(seed ...models.Allocation) *mockAllocationStore {
	items := make(map[string]models.Allocation, len(seed))
	for _, a := range seed {
		items[a.ID] = a
	}
	return &mockAllocationStore{items: items}
}

func (m *mockAllocationStore) ListAll(_ context.Context) ([]models.Allocation, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Allocation, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAllocationStore) Create(_ context.Context, allocation *models.Allocation) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if m.failCreateID != "" && allocation.ID == m.failCreateID {
		return errors.New("create rejected")
	}
	m.items[allocation.ID] = *allocation
	return nil
}

func (m *mockAllocationStore) Update(_ context.Context, allocation *models.Allocation) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	m.items[allocation.ID] = *allocation
	return nil
}

func (m *mockAllocationStore) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if m.failDeleteID != "" && id == m.failDeleteID {
		return errors.New("delete rejected")
	}
	delete(m.items, id)
	return nil
}

type mockEmployeeSource struct {
	employees []models.Employee
	err       error
}

func (m *mockEmployeeSource) ListAll(_ context.Context) ([]models.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.employees, nil
}

type mockProjectSource struct {
	projects []models.Project
	err      error
}

func (m *mockProjectSource) ListAll(_ context.Context) ([]models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

type recordingNotifier struct {
	messages []string
	kinds    []NotificationKind
}

func (n *recordingNotifier) Notify(message string, kind NotificationKind) {
	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

func defaultEmployees() []models.Employee {
	return []models.Employee{
		{ID: "e1", FullName: "Ana", WeeklyCapacity: 40, Active: true},
		{ID: "e2", FullName: "Ben", WeeklyCapacity: 40, Active: true},
	}
}

func newTestPlanner(t *testing.T, store *mockAllocationStore, employees []models.Employee) *PlannerService {
	t.Helper()
	planner := NewPlannerService(
		store,
		&mockEmployeeSource{employees: employees},
		&mockProjectSource{projects: []models.Project{{ID: "proj-1", Name: "Atlas"}}},
		PlannerConfig{MaxUndoOperations: 10, DefaultCapacityHours: 40},
		nil,
		nil,
	)
	require.NoError(t, planner.Refresh(context.Background()))
	return planner
}

func TestPlannerRefreshLoadsWorkingSet(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	assert.Len(t, planner.Allocations(), 2)
	assert.Empty(t, planner.Conflicts())
	assert.Len(t, planner.Lanes(), 2)
	assert.False(t, planner.CanUndo())
	assert.False(t, planner.CanRedo())
}

func TestPlannerRefreshDefaultsMissingCapacity(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-06", 50, t),
	)
	employees := []models.Employee{{ID: "e1", FullName: "Ana", WeeklyCapacity: 0}}
	planner := newTestPlanner(t, store, employees)

	lanes := planner.Lanes()
	require.Len(t, lanes, 1)
	assert.Equal(t, 40.0, lanes[0].Capacity)

	// 50h against the defaulted 40h capacity is an overallocation.
	conflicts := planner.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictKindOverallocation, conflicts[0].Kind)
}

func TestPlannerRefreshPropagatesStoreError(t *testing.T) {
	store := newMockAllocationStore()
	store.listErr = errors.New("connection refused")
	planner := NewPlannerService(
		store,
		&mockEmployeeSource{},
		&mockProjectSource{},
		PlannerConfig{},
		nil,
		nil,
	)

	err := planner.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrPersistence))
}

func TestPlannerValidateDrop(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	t.Run("unknown allocation", func(t *testing.T) {
		result := planner.ValidateDrop("missing", "e2", day(t, "2026-01-12"))
		assert.False(t, result.IsValid)
		assert.Equal(t, models.DropReasonAllocationNotFound, result.Reason)
	})

	t.Run("unknown employee", func(t *testing.T) {
		result := planner.ValidateDrop("a1", "ghost", day(t, "2026-01-12"))
		assert.False(t, result.IsValid)
		assert.Equal(t, models.DropReasonEmployeeNotFound, result.Reason)
	})

	t.Run("slot taken", func(t *testing.T) {
		result := planner.ValidateDrop("a1", "e2", day(t, "2026-01-06"))
		assert.False(t, result.IsValid)
		assert.Equal(t, models.DropReasonSlotTaken, result.Reason)
	})

	t.Run("valid target", func(t *testing.T) {
		result := planner.ValidateDrop("a1", "e2", day(t, "2026-01-12"))
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Reason)
	})

	t.Run("moving within own range ignores itself", func(t *testing.T) {
		result := planner.ValidateDrop("a1", "e1", day(t, "2026-01-06"))
		assert.True(t, result.IsValid)
	})
}

func TestPlannerMovePreservesDuration(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	moved, err := planner.Move(context.Background(), "a1", dto.MoveAllocationRequest{
		TargetEmployeeID: "e2",
		TargetDate:       dto.Date{Time: day(t, "2026-01-12")},
	})
	require.NoError(t, err)

	assert.Equal(t, "e2", moved.EmployeeID)
	assert.Equal(t, day(t, "2026-01-12"), moved.StartDate)
	assert.Equal(t, day(t, "2026-01-14"), moved.EndDate)

	// Store and memory agree.
	assert.Equal(t, "e2", store.items["a1"].EmployeeID)
	assert.Equal(t, 1, store.updateCalls)

	// Exactly one undoable operation was recorded.
	assert.True(t, planner.CanUndo())
	assert.False(t, planner.CanRedo())
}

func TestPlannerMoveRejectedMakesNoStoreCall(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-12", "2026-01-14", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Move(context.Background(), "a1", dto.MoveAllocationRequest{
		TargetEmployeeID: "e2",
		TargetDate:       dto.Date{Time: day(t, "2026-01-13")},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, 0, store.updateCalls)
	assert.False(t, planner.CanUndo())
}

func TestPlannerMoveUnknownAllocationIsNotFound(t *testing.T) {
	store := newMockAllocationStore()
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Move(context.Background(), "missing", dto.MoveAllocationRequest{
		TargetEmployeeID: "e2",
		TargetDate:       dto.Date{Time: day(t, "2026-01-13")},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestPlannerMoveStoreFailureLeavesMemoryUntouched(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())
	store.updateErr = errors.New("deadlock")

	_, err := planner.Move(context.Background(), "a1", dto.MoveAllocationRequest{
		TargetEmployeeID: "e2",
		TargetDate:       dto.Date{Time: day(t, "2026-01-12")},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrPersistence))

	current := planner.Allocations()
	require.Len(t, current, 1)
	assert.Equal(t, "e1", current[0].EmployeeID)
	assert.Equal(t, day(t, "2026-01-05"), current[0].StartDate)
	assert.False(t, planner.CanUndo())
}

func TestPlannerCreateOnePerEmployee(t *testing.T) {
	store := newMockAllocationStore()
	planner := newTestPlanner(t, store, defaultEmployees())

	created, err := planner.Create(context.Background(), dto.CreateAllocationsRequest{
		EmployeeIDs: []string{"e1", "e2"},
		ProjectID:   "proj-1",
		StartDate:   dto.Date{Time: day(t, "2026-02-02")},
		EndDate:     &dto.Date{Time: day(t, "2026-02-04")},
		Hours:       16,
		Role:        "developer",
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 2, store.createCalls)
	assert.Len(t, planner.Allocations(), 2)
	assert.True(t, planner.CanUndo())

	for _, a := range created {
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, models.AllocationStatusPlanned, a.Status)
		assert.True(t, a.Active)
		assert.Equal(t, 16.0, a.AllocatedHours)
	}
}

func TestPlannerCreateUnknownEmployeeRejectedBeforeStore(t *testing.T) {
	store := newMockAllocationStore()
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Create(context.Background(), dto.CreateAllocationsRequest{
		EmployeeIDs: []string{"e1", "ghost"},
		ProjectID:   "proj-1",
		StartDate:   dto.Date{Time: day(t, "2026-02-02")},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, 0, store.createCalls)
	assert.Empty(t, planner.Allocations())
}

func TestPlannerCreateRejectsInvertedRange(t *testing.T) {
	store := newMockAllocationStore()
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Create(context.Background(), dto.CreateAllocationsRequest{
		EmployeeIDs: []string{"e1"},
		ProjectID:   "proj-1",
		StartDate:   dto.Date{Time: day(t, "2026-02-04")},
		EndDate:     &dto.Date{Time: day(t, "2026-02-02")},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestPlannerUpdateAppliesPartialFields(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	hours := 24.0
	status := string(models.AllocationStatusActive)
	updated, err := planner.Update(context.Background(), "a1", dto.AllocationFields{
		AllocatedHours: &hours,
		Status:         &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 24.0, updated.AllocatedHours)
	assert.Equal(t, models.AllocationStatusActive, updated.Status)
	// Untouched fields survive.
	assert.Equal(t, "e1", updated.EmployeeID)
	assert.Equal(t, day(t, "2026-01-05"), updated.StartDate)
	assert.True(t, planner.CanUndo())
}

func TestPlannerUpdateRejectsEmptyPayload(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Update(context.Background(), "a1", dto.AllocationFields{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestPlannerUpdateRejectsInvalidStatus(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	status := "paused"
	_, err := planner.Update(context.Background(), "a1", dto.AllocationFields{Status: &status})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, 0, store.updateCalls)
}

func TestPlannerDeleteBatch(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	count, err := planner.Delete(context.Background(), []string{"a1", "a2"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, planner.Allocations())
	assert.Empty(t, store.items)
	assert.True(t, planner.CanUndo())
}

func TestPlannerDeleteUnknownIDRejectsWholeBatch(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Delete(context.Background(), []string{"a1", "missing"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, 0, store.deleteCalls)
	assert.Len(t, planner.Allocations(), 1)
}

func TestPlannerUndoRedoMove(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Move(context.Background(), "a1", dto.MoveAllocationRequest{
		TargetEmployeeID: "e2",
		TargetDate:       dto.Date{Time: day(t, "2026-01-12")},
	})
	require.NoError(t, err)

	performed, err := planner.Undo(context.Background())
	require.NoError(t, err)
	assert.True(t, performed)

	restored := planner.Allocations()
	require.Len(t, restored, 1)
	assert.Equal(t, "e1", restored[0].EmployeeID)
	assert.Equal(t, day(t, "2026-01-05"), restored[0].StartDate)
	assert.Equal(t, "e1", store.items["a1"].EmployeeID)
	assert.False(t, planner.CanUndo())
	assert.True(t, planner.CanRedo())

	performed, err = planner.Redo(context.Background())
	require.NoError(t, err)
	assert.True(t, performed)

	replayed := planner.Allocations()
	require.Len(t, replayed, 1)
	assert.Equal(t, "e2", replayed[0].EmployeeID)
	assert.Equal(t, day(t, "2026-01-12"), replayed[0].StartDate)
	assert.True(t, planner.CanUndo())
	assert.False(t, planner.CanRedo())
}

func TestPlannerUndoCreateRemovesAllocations(t *testing.T) {
	store := newMockAllocationStore()
	planner := newTestPlanner(t, store, defaultEmployees())

	created, err := planner.Create(context.Background(), dto.CreateAllocationsRequest{
		EmployeeIDs: []string{"e1", "e2"},
		ProjectID:   "proj-1",
		StartDate:   dto.Date{Time: day(t, "2026-02-02")},
		Hours:       8,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	performed, err := planner.Undo(context.Background())
	require.NoError(t, err)
	assert.True(t, performed)
	assert.Empty(t, planner.Allocations())
	assert.Empty(t, store.items)

	performed, err = planner.Redo(context.Background())
	require.NoError(t, err)
	assert.True(t, performed)
	assert.Len(t, planner.Allocations(), 2)
}

func TestPlannerUndoDeleteRestoresPreImages(t *testing.T) {
	original := allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t)
	store := newMockAllocationStore(original)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Delete(context.Background(), []string{"a1"})
	require.NoError(t, err)
	assert.Empty(t, planner.Allocations())

	performed, err := planner.Undo(context.Background())
	require.NoError(t, err)
	assert.True(t, performed)

	restored := planner.Allocations()
	require.Len(t, restored, 1)
	assert.Equal(t, original.ID, restored[0].ID)
	assert.Equal(t, original.EmployeeID, restored[0].EmployeeID)
	assert.Equal(t, original.AllocatedHours, restored[0].AllocatedHours)
}

func TestPlannerUndoNothingRecorded(t *testing.T) {
	store := newMockAllocationStore()
	planner := newTestPlanner(t, store, defaultEmployees())

	performed, err := planner.Undo(context.Background())
	require.NoError(t, err)
	assert.False(t, performed)

	performed, err = planner.Redo(context.Background())
	require.NoError(t, err)
	assert.False(t, performed)
}

func TestPlannerUndoStoreFailureKeepsCursor(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Move(context.Background(), "a1", dto.MoveAllocationRequest{
		TargetEmployeeID: "e2",
		TargetDate:       dto.Date{Time: day(t, "2026-01-12")},
	})
	require.NoError(t, err)

	store.updateErr = errors.New("deadlock")
	performed, err := planner.Undo(context.Background())
	require.Error(t, err)
	assert.False(t, performed)

	// The operation stays undoable for a later retry.
	store.updateErr = nil
	performed, err = planner.Undo(context.Background())
	require.NoError(t, err)
	assert.True(t, performed)
}

func TestPlannerUndoPartialRevertRecomputesDerivedState(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Delete(context.Background(), []string{"a1", "a2"})
	require.NoError(t, err)
	require.Empty(t, planner.Allocations())

	// Undoing the batch delete re-creates a1 and then fails on a2. The
	// restored a1 is in the working set, so lanes and conflicts must follow.
	store.failCreateID = "a2"
	performed, err := planner.Undo(context.Background())
	require.Error(t, err)
	assert.False(t, performed)

	restored := planner.Allocations()
	require.Len(t, restored, 1)
	assert.Equal(t, "a1", restored[0].ID)

	lanes := planner.Lanes()
	require.Len(t, lanes, 2)
	var laneAllocations int
	for _, lane := range lanes {
		laneAllocations += len(lane.Allocations)
	}
	assert.Equal(t, 1, laneAllocations)

	// The cursor stayed put; clearing the fault lets the undo complete.
	store.failCreateID = ""
	performed, err = planner.Undo(context.Background())
	require.NoError(t, err)
	assert.True(t, performed)
	assert.Len(t, planner.Allocations(), 2)
}

func TestPlannerRedoPartialReplayRecomputesDerivedState(t *testing.T) {
	store := newMockAllocationStore()
	planner := newTestPlanner(t, store, defaultEmployees())

	created, err := planner.Create(context.Background(), dto.CreateAllocationsRequest{
		EmployeeIDs: []string{"e1", "e2"},
		ProjectID:   "proj-1",
		StartDate:   dto.Date{Time: day(t, "2026-02-02")},
		Hours:       8,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	performed, err := planner.Undo(context.Background())
	require.NoError(t, err)
	require.True(t, performed)
	require.Empty(t, planner.Allocations())

	// Redo replays the creates in order; the second one fails.
	store.failCreateID = created[1].ID
	performed, err = planner.Redo(context.Background())
	require.Error(t, err)
	assert.False(t, performed)

	require.Len(t, planner.Allocations(), 1)
	var laneAllocations int
	for _, lane := range planner.Lanes() {
		laneAllocations += len(lane.Allocations)
	}
	assert.Equal(t, 1, laneAllocations)
	assert.True(t, planner.CanRedo())
}

func TestPlannerNewMutationDiscardsRedoBranch(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.Move(context.Background(), "a1", dto.MoveAllocationRequest{
		TargetEmployeeID: "e2",
		TargetDate:       dto.Date{Time: day(t, "2026-01-12")},
	})
	require.NoError(t, err)

	performed, err := planner.Undo(context.Background())
	require.NoError(t, err)
	require.True(t, performed)
	require.True(t, planner.CanRedo())

	hours := 20.0
	_, err = planner.Update(context.Background(), "a1", dto.AllocationFields{AllocatedHours: &hours})
	require.NoError(t, err)

	assert.False(t, planner.CanRedo())
}

func TestPlannerRefreshResetsHistory(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	hours := 20.0
	_, err := planner.Update(context.Background(), "a1", dto.AllocationFields{AllocatedHours: &hours})
	require.NoError(t, err)
	require.True(t, planner.CanUndo())

	require.NoError(t, planner.Refresh(context.Background()))
	assert.False(t, planner.CanUndo())
	assert.False(t, planner.CanRedo())
}

func TestPlannerBulkDeletePartialFailure(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())
	store.failDeleteID = "a2"

	result, err := planner.BulkOperation(context.Background(), dto.BulkOperationRequest{
		Kind:          "delete",
		AllocationIDs: []string{"a1", "a2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a1"}, result.Successful)
	assert.Equal(t, []string{"a2"}, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "a2", result.Errors[0].ID)

	// The failed item survives in the working set.
	remaining := planner.Allocations()
	require.Len(t, remaining, 1)
	assert.Equal(t, "a2", remaining[0].ID)
}

func TestPlannerBulkMoveSequential(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e1", "2026-01-12", "2026-01-14", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	target := dto.Date{Time: day(t, "2026-02-02")}
	result, err := planner.BulkOperation(context.Background(), dto.BulkOperationRequest{
		Kind:             "move",
		AllocationIDs:    []string{"a1", "a2"},
		TargetEmployeeID: "e2",
		TargetDate:       &target,
	})
	require.NoError(t, err)

	// The first move lands on the target date; the second then collides with
	// it because each item sees its predecessor's result.
	assert.Equal(t, []string{"a1"}, result.Successful)
	assert.Equal(t, []string{"a2"}, result.Failed)
}

func TestPlannerBulkMoveRequiresTarget(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	_, err := planner.BulkOperation(context.Background(), dto.BulkOperationRequest{
		Kind:          "move",
		AllocationIDs: []string{"a1"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestPlannerBulkUpdate(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	status := string(models.AllocationStatusCompleted)
	result, err := planner.BulkOperation(context.Background(), dto.BulkOperationRequest{
		Kind:          "update",
		AllocationIDs: []string{"a1", "a2", "missing"},
		Fields:        dto.AllocationFields{Status: &status},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "a2"}, result.Successful)
	assert.Equal(t, []string{"missing"}, result.Failed)
	for _, a := range planner.Allocations() {
		assert.Equal(t, models.AllocationStatusCompleted, a.Status)
	}
}

func TestPlannerBulkNotifiesSummary(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
	)
	notifier := &recordingNotifier{}
	planner := NewPlannerService(
		store,
		&mockEmployeeSource{employees: defaultEmployees()},
		&mockProjectSource{},
		PlannerConfig{MaxUndoOperations: 10},
		nil,
		nil,
		WithNotifier(notifier),
	)
	require.NoError(t, planner.Refresh(context.Background()))

	_, err := planner.BulkOperation(context.Background(), dto.BulkOperationRequest{
		Kind:          "delete",
		AllocationIDs: []string{"a1"},
	})
	require.NoError(t, err)

	require.NotEmpty(t, notifier.messages)
	assert.Contains(t, notifier.messages[len(notifier.messages)-1], "1 succeeded, 0 failed")
}

func TestPlannerSelection(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 10, t),
		allocation("a2", "e2", "2026-01-05", "2026-01-07", 10, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	state := planner.SetSelection([]string{"a1", "missing"}, models.SelectionModeMultiple)
	assert.Equal(t, []string{"a1"}, state.IDs)
	assert.Equal(t, models.SelectionModeMultiple, state.Mode)

	state = planner.SelectAll()
	assert.Len(t, state.IDs, 2)
	assert.Equal(t, models.SelectionModeMultiple, state.Mode)

	// Deleting an allocation prunes it from the selection.
	_, err := planner.Delete(context.Background(), []string{"a1"})
	require.NoError(t, err)
	state = planner.Selection()
	assert.Equal(t, []string{"a2"}, state.IDs)

	state = planner.ClearSelection()
	assert.Empty(t, state.IDs)
	assert.Equal(t, models.SelectionModeSingle, state.Mode)
}

func TestPlannerSnapshot(t *testing.T) {
	store := newMockAllocationStore(
		allocation("a1", "e1", "2026-01-05", "2026-01-07", 30, t),
		allocation("a2", "e1", "2026-01-06", "2026-01-08", 30, t),
	)
	planner := newTestPlanner(t, store, defaultEmployees())

	snapshot := planner.Snapshot()
	assert.False(t, snapshot.GeneratedAt.IsZero())
	assert.Len(t, snapshot.Allocations, 2)
	assert.Len(t, snapshot.Lanes, 2)
	// One overlap plus two overallocations for e1.
	assert.Len(t, snapshot.Conflicts, 3)
}
