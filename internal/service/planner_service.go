package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/resource-planner-api/internal/dto"
	"github.com/noah-isme/resource-planner-api/internal/models"
	appErrors "github.com/noah-isme/resource-planner-api/pkg/errors"
)

type allocationStore interface {
	ListAll(ctx context.Context) ([]models.Allocation, error)
	Create(ctx context.Context, allocation *models.Allocation) error
	Update(ctx context.Context, allocation *models.Allocation) error
	Delete(ctx context.Context, id string) error
}

type employeeSource interface {
	ListAll(ctx context.Context) ([]models.Employee, error)
}

type projectSource interface {
	ListAll(ctx context.Context) ([]models.Project, error)
}

// PlannerConfig tunes the engine.
type PlannerConfig struct {
	MaxUndoOperations    int
	DefaultCapacityHours float64
}

// PlannerService is the scheduling engine. It exclusively owns the in-memory
// allocation set, the undo/redo history and the selection state; every read
// and write goes through its methods. Mutations run one at a time under an
// internal lock: validate, persist, apply, recompute. On any failure the
// in-memory set is left exactly as it was.
type PlannerService struct {
	store     allocationStore
	employees employeeSource
	projects  projectSource
	notifier  Notifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PlannerConfig

	mu           sync.Mutex
	busy         atomic.Bool
	allocations  map[string]models.Allocation
	employeeSet  []models.Employee
	employeeByID map[string]models.Employee
	projectSet   []models.Project
	conflicts    []models.Conflict
	lanes        []models.ResourceLane
	history      *OperationLog
	selection    models.SelectionState
}

// PlannerOption configures optional collaborators.
type PlannerOption func(*PlannerService)

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) PlannerOption {
	return func(s *PlannerService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithMetrics sets the metrics collaborator.
func WithMetrics(m *MetricsService) PlannerOption {
	return func(s *PlannerService) {
		s.metrics = m
	}
}

// NewPlannerService constructs the engine. State is empty until Refresh
// loads the working set from the store.
func NewPlannerService(store allocationStore, employees employeeSource, projects projectSource, cfg PlannerConfig, validate *validator.Validate, logger *zap.Logger, opts ...PlannerOption) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultCapacityHours <= 0 {
		cfg.DefaultCapacityHours = 40
	}
	svc := &PlannerService{
		store:        store,
		employees:    employees,
		projects:     projects,
		notifier:     NewLogNotifier(logger),
		validator:    validate,
		logger:       logger,
		cfg:          cfg,
		allocations:  make(map[string]models.Allocation),
		employeeByID: make(map[string]models.Employee),
		history:      NewOperationLog(cfg.MaxUndoOperations),
		selection:    models.SelectionState{IDs: []string{}, Mode: models.SelectionModeSingle},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Busy reports whether a mutating call is currently in flight. Advisory for
// the presentation layer; correctness never depends on callers checking it.
func (s *PlannerService) Busy() bool {
	return s.busy.Load()
}

// Refresh re-fetches the full working set from the store and recomputes all
// derived state. The undo history is reset since recorded pre-images may no
// longer match the store.
func (s *PlannerService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *PlannerService) refreshLocked(ctx context.Context) error {
	allocations, err := s.store.ListAll(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load allocations")
	}
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load employees")
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load projects")
	}

	s.allocations = make(map[string]models.Allocation, len(allocations))
	for _, a := range allocations {
		s.allocations[a.ID] = a
	}
	s.employeeSet = employees
	s.employeeByID = make(map[string]models.Employee, len(employees))
	for i := range s.employeeSet {
		if s.employeeSet[i].WeeklyCapacity <= 0 {
			s.employeeSet[i].WeeklyCapacity = s.cfg.DefaultCapacityHours
		}
		s.employeeByID[s.employeeSet[i].ID] = s.employeeSet[i]
	}
	s.projectSet = projects
	s.history.Reset()
	s.recomputeLocked()

	s.logger.Info("planner refreshed",
		zap.Int("allocations", len(allocations)),
		zap.Int("employees", len(employees)),
		zap.Int("projects", len(projects)))
	return nil
}

// recomputeLocked rebuilds conflicts and lanes from the current set and
// prunes the selection of ids that no longer resolve. Runs synchronously
// after every successful mutation so callers never observe stale derivations.
func (s *PlannerService) recomputeLocked() {
	working := s.allocationsLocked()
	s.conflicts = DetectConflicts(working, s.employeeSet)
	s.lanes = ComputeLanes(s.employeeSet, working)

	kept := s.selection.IDs[:0]
	for _, id := range s.selection.IDs {
		if _, ok := s.allocations[id]; ok {
			kept = append(kept, id)
		}
	}
	s.selection.IDs = kept

	s.metrics.SetConflictCount(len(s.conflicts))
	s.metrics.SetHistoryDepth(s.history.Depth())
}

func (s *PlannerService) allocationsLocked() []models.Allocation {
	out := make([]models.Allocation, 0, len(s.allocations))
	for _, a := range s.allocations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Allocations returns a sorted copy of the in-memory working set.
func (s *PlannerService) Allocations() []models.Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocationsLocked()
}

// Conflicts returns the conflicts computed against the current set.
func (s *PlannerService) Conflicts() []models.Conflict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Conflict(nil), s.conflicts...)
}

// Lanes returns the per-employee lanes computed against the current set.
func (s *PlannerService) Lanes() []models.ResourceLane {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ResourceLane(nil), s.lanes...)
}

// Employees returns the read-only employee roster.
func (s *PlannerService) Employees() []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Employee(nil), s.employeeSet...)
}

// Projects returns the read-only project catalog.
func (s *PlannerService) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Project(nil), s.projectSet...)
}

// Snapshot captures the current derived state for export.
func (s *PlannerService) Snapshot() models.PlannerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.PlannerSnapshot{
		GeneratedAt: time.Now().UTC(),
		Allocations: s.allocationsLocked(),
		Conflicts:   append([]models.Conflict(nil), s.conflicts...),
		Lanes:       append([]models.ResourceLane(nil), s.lanes...),
	}
}

// ValidateDrop is the advisory pre-flight check for a proposed move.
func (s *PlannerService) ValidateDrop(allocationID, targetEmployeeID string, targetDate time.Time) models.DropValidation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateDropLocked(allocationID, targetEmployeeID, targetDate)
}

func (s *PlannerService) validateDropLocked(allocationID, targetEmployeeID string, targetDate time.Time) models.DropValidation {
	if _, ok := s.allocations[allocationID]; !ok {
		return models.DropValidation{Reason: models.DropReasonAllocationNotFound}
	}
	if _, ok := s.employeeByID[targetEmployeeID]; !ok {
		return models.DropValidation{Reason: models.DropReasonEmployeeNotFound}
	}
	for _, other := range s.allocations {
		if other.ID == allocationID {
			continue
		}
		if other.EmployeeID == targetEmployeeID && other.CoversDate(targetDate) {
			return models.DropValidation{Reason: models.DropReasonSlotTaken}
		}
	}
	return models.DropValidation{IsValid: true}
}

// Move relocates an allocation to a new employee and start date, keeping its
// duration. Validation failures make no store call; store failures leave the
// in-memory set untouched.
func (s *PlannerService) Move(ctx context.Context, allocationID string, req dto.MoveAllocationRequest) (*models.Allocation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload")
	}
	if req.TargetDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "target_date is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)
	return s.moveLocked(ctx, allocationID, req.TargetEmployeeID, req.TargetDate.Time)
}

func (s *PlannerService) moveLocked(ctx context.Context, allocationID, targetEmployeeID string, targetDate time.Time) (*models.Allocation, error) {
	check := s.validateDropLocked(allocationID, targetEmployeeID, targetDate)
	if !check.IsValid {
		s.notify(check.Reason, NotificationError)
		s.metrics.ObserveEngineOp("move", "rejected")
		switch check.Reason {
		case models.DropReasonAllocationNotFound, models.DropReasonEmployeeNotFound:
			return nil, appErrors.Clone(appErrors.ErrNotFound, check.Reason)
		default:
			return nil, appErrors.Clone(appErrors.ErrValidation, check.Reason)
		}
	}

	current := s.allocations[allocationID]
	duration := models.DateOnly(current.EndDate).Sub(models.DateOnly(current.StartDate))
	updated := current
	updated.EmployeeID = targetEmployeeID
	updated.StartDate = models.DateOnly(targetDate)
	updated.EndDate = updated.StartDate.Add(duration)

	if err := s.store.Update(ctx, &updated); err != nil {
		s.logger.Error("move allocation", zap.String("allocation_id", allocationID), zap.Error(err))
		s.notify("Failed to move allocation", NotificationError)
		s.metrics.ObserveEngineOp("move", "failure")
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to move allocation")
	}

	s.allocations[updated.ID] = updated
	s.recordLocked(models.OperationKindMove, []models.Allocation{current}, []models.Allocation{updated})
	s.recomputeLocked()
	s.metrics.ObserveEngineOp("move", "success")

	target := s.employeeByID[targetEmployeeID]
	s.notify(fmt.Sprintf("Allocation moved to %s", target.FullName), NotificationSuccess)
	return &updated, nil
}

// Create issues one store create per employee id and records a single create
// operation for the whole batch. If any create fails, nothing is merged into
// the in-memory set; the next Refresh reconciles with the store.
func (s *PlannerService) Create(ctx context.Context, req dto.CreateAllocationsRequest) ([]models.Allocation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid allocation payload")
	}
	if req.StartDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date is required")
	}

	start := models.DateOnly(req.StartDate.Time)
	end := start
	if req.EndDate != nil {
		end = models.DateOnly(req.EndDate.Time)
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start date must not be after end date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	for _, employeeID := range req.EmployeeIDs {
		if _, ok := s.employeeByID[employeeID]; !ok {
			s.notify(models.DropReasonEmployeeNotFound, NotificationError)
			s.metrics.ObserveEngineOp("create", "rejected")
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee %s not found", employeeID))
		}
	}

	created := make([]models.Allocation, 0, len(req.EmployeeIDs))
	for _, employeeID := range req.EmployeeIDs {
		allocation := models.Allocation{
			ID:             uuid.NewString(),
			EmployeeID:     employeeID,
			ProjectID:      req.ProjectID,
			StartDate:      start,
			EndDate:        end,
			AllocatedHours: req.Hours,
			Role:           req.Role,
			Status:         models.AllocationStatusPlanned,
			Active:         true,
			Notes:          req.Notes,
		}
		if err := s.store.Create(ctx, &allocation); err != nil {
			s.logger.Error("create allocation", zap.String("employee_id", employeeID), zap.Error(err))
			s.notify("Failed to create allocations", NotificationError)
			s.metrics.ObserveEngineOp("create", "failure")
			return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to create allocations")
		}
		created = append(created, allocation)
	}

	for _, a := range created {
		s.allocations[a.ID] = a
	}
	s.recordLocked(models.OperationKindCreate, nil, created)
	s.recomputeLocked()
	s.metrics.ObserveEngineOp("create", "success")
	s.notify(fmt.Sprintf("%d allocation(s) created", len(created)), NotificationSuccess)
	return created, nil
}

// Update applies a partial field change to one allocation. Conflicts are
// always recomputed afterwards, whether or not dates or employee changed.
func (s *PlannerService) Update(ctx context.Context, allocationID string, fields dto.AllocationFields) (*models.Allocation, error) {
	if fields.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)
	return s.updateLocked(ctx, allocationID, fields)
}

func (s *PlannerService) updateLocked(ctx context.Context, allocationID string, fields dto.AllocationFields) (*models.Allocation, error) {
	current, ok := s.allocations[allocationID]
	if !ok {
		s.notify(models.DropReasonAllocationNotFound, NotificationError)
		s.metrics.ObserveEngineOp("update", "rejected")
		return nil, appErrors.Clone(appErrors.ErrNotFound, models.DropReasonAllocationNotFound)
	}

	updated := current
	if fields.EmployeeID != nil {
		if _, ok := s.employeeByID[*fields.EmployeeID]; !ok {
			s.notify(models.DropReasonEmployeeNotFound, NotificationError)
			s.metrics.ObserveEngineOp("update", "rejected")
			return nil, appErrors.Clone(appErrors.ErrNotFound, models.DropReasonEmployeeNotFound)
		}
		updated.EmployeeID = *fields.EmployeeID
	}
	if fields.ProjectID != nil {
		updated.ProjectID = *fields.ProjectID
	}
	if fields.StartDate != nil {
		updated.StartDate = models.DateOnly(*fields.StartDate)
	}
	if fields.EndDate != nil {
		updated.EndDate = models.DateOnly(*fields.EndDate)
	}
	if fields.AllocatedHours != nil {
		updated.AllocatedHours = *fields.AllocatedHours
	}
	if fields.Role != nil {
		updated.Role = *fields.Role
	}
	if fields.Status != nil {
		status := models.AllocationStatus(*fields.Status)
		if !status.Valid() {
			s.metrics.ObserveEngineOp("update", "rejected")
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid status %q", *fields.Status))
		}
		updated.Status = status
	}
	if fields.Active != nil {
		updated.Active = *fields.Active
	}
	if fields.Notes != nil {
		updated.Notes = *fields.Notes
	}

	if models.DateOnly(updated.EndDate).Before(models.DateOnly(updated.StartDate)) {
		s.metrics.ObserveEngineOp("update", "rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "start date must not be after end date")
	}
	if updated.AllocatedHours < 0 {
		s.metrics.ObserveEngineOp("update", "rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "allocated hours must not be negative")
	}

	if err := s.store.Update(ctx, &updated); err != nil {
		s.logger.Error("update allocation", zap.String("allocation_id", allocationID), zap.Error(err))
		s.notify("Failed to update allocation", NotificationError)
		s.metrics.ObserveEngineOp("update", "failure")
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to update allocation")
	}

	s.allocations[updated.ID] = updated
	s.recordLocked(models.OperationKindUpdate, []models.Allocation{current}, []models.Allocation{updated})
	s.recomputeLocked()
	s.metrics.ObserveEngineOp("update", "success")
	s.notify("Allocation updated", NotificationSuccess)
	return &updated, nil
}

// Delete removes a batch of allocations, one store call per id. All ids must
// resolve before any store call is made.
func (s *PlannerService) Delete(ctx context.Context, allocationIDs []string) (int, error) {
	if len(allocationIDs) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "no allocation ids given")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)
	return s.deleteLocked(ctx, allocationIDs)
}

func (s *PlannerService) deleteLocked(ctx context.Context, allocationIDs []string) (int, error) {
	preImages := make([]models.Allocation, 0, len(allocationIDs))
	for _, id := range allocationIDs {
		a, ok := s.allocations[id]
		if !ok {
			s.notify(models.DropReasonAllocationNotFound, NotificationError)
			s.metrics.ObserveEngineOp("delete", "rejected")
			return 0, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("allocation %s not found", id))
		}
		preImages = append(preImages, a)
	}

	for i, id := range allocationIDs {
		if err := s.store.Delete(ctx, id); err != nil {
			// Earlier deletes already landed; drop them from memory so the
			// set stays consistent with the store.
			for _, done := range allocationIDs[:i] {
				delete(s.allocations, done)
			}
			s.recomputeLocked()
			s.logger.Error("delete allocation", zap.String("allocation_id", id), zap.Error(err))
			s.notify("Failed to delete allocations", NotificationError)
			s.metrics.ObserveEngineOp("delete", "failure")
			return i, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to delete allocations")
		}
	}

	for _, id := range allocationIDs {
		delete(s.allocations, id)
	}
	s.recordLocked(models.OperationKindDelete, preImages, nil)
	s.recomputeLocked()
	s.metrics.ObserveEngineOp("delete", "success")
	s.notify(fmt.Sprintf("%d allocation(s) deleted", len(allocationIDs)), NotificationSuccess)
	return len(allocationIDs), nil
}

// BulkOperation applies one single-item operation per id, strictly
// sequentially so every item sees the state its predecessor left behind. One
// item's failure never aborts the rest.
func (s *PlannerService) BulkOperation(ctx context.Context, req dto.BulkOperationRequest) (models.BulkResult, error) {
	result := models.BulkResult{Successful: []string{}, Failed: []string{}, Errors: []models.BulkItemError{}}
	if err := s.validator.Struct(req); err != nil {
		return result, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk payload")
	}
	kind := models.BulkOperationKind(req.Kind)
	if kind == models.BulkOperationMove {
		if req.TargetEmployeeID == "" || req.TargetDate == nil {
			return result, appErrors.Clone(appErrors.ErrValidation, "bulk move requires target_employee_id and target_date")
		}
	}
	if kind == models.BulkOperationUpdate && req.Fields.Empty() {
		return result, appErrors.Clone(appErrors.ErrValidation, "bulk update requires fields")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	for _, id := range req.AllocationIDs {
		var err error
		switch kind {
		case models.BulkOperationMove:
			_, err = s.moveLocked(ctx, id, req.TargetEmployeeID, req.TargetDate.Time)
		case models.BulkOperationUpdate:
			_, err = s.updateLocked(ctx, id, req.Fields)
		case models.BulkOperationDelete:
			_, err = s.deleteLocked(ctx, []string{id})
		}
		if err != nil {
			result.Failed = append(result.Failed, id)
			result.Errors = append(result.Errors, models.BulkItemError{ID: id, Error: err.Error()})
			continue
		}
		result.Successful = append(result.Successful, id)
	}

	s.notify(fmt.Sprintf("Bulk %s: %d succeeded, %d failed", req.Kind, len(result.Successful), len(result.Failed)), NotificationInfo)
	return result, nil
}

// Undo steps back over the most recent operation, re-issuing store calls so
// the store and the in-memory set stay consistent. Returns false when there
// is nothing to undo.
func (s *PlannerService) Undo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	op, ok := s.history.Current()
	if !ok {
		s.notify("Nothing to undo", NotificationInfo)
		return false, nil
	}
	if err := s.revertLocked(ctx, op); err != nil {
		// Items already reverted before the failure are in the working set;
		// derived state must follow them even though the cursor stays put.
		s.recomputeLocked()
		s.notify("Failed to undo operation", NotificationError)
		s.metrics.ObserveEngineOp("undo", "failure")
		return false, err
	}
	s.history.StepBack()
	s.recomputeLocked()
	s.metrics.ObserveEngineOp("undo", "success")
	s.notify(fmt.Sprintf("Undid %s operation", op.Kind), NotificationSuccess)
	return true, nil
}

// Redo reapplies the most recently undone operation. Returns false when
// there is nothing to redo.
func (s *PlannerService) Redo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy.Store(true)
	defer s.busy.Store(false)

	op, ok := s.history.Next()
	if !ok {
		s.notify("Nothing to redo", NotificationInfo)
		return false, nil
	}
	if err := s.replayLocked(ctx, op); err != nil {
		s.recomputeLocked()
		s.notify("Failed to redo operation", NotificationError)
		s.metrics.ObserveEngineOp("redo", "failure")
		return false, err
	}
	s.history.StepForward()
	s.recomputeLocked()
	s.metrics.ObserveEngineOp("redo", "success")
	s.notify(fmt.Sprintf("Redid %s operation", op.Kind), NotificationSuccess)
	return true, nil
}

// revertLocked restores the pre-images of an operation against store and
// memory. On a mid-batch store failure the cursor is left unmoved; items
// already reverted are consistent between store and memory.
func (s *PlannerService) revertLocked(ctx context.Context, op models.Operation) error {
	switch op.Kind {
	case models.OperationKindCreate:
		for _, a := range op.NewData {
			if err := s.store.Delete(ctx, a.ID); err != nil {
				return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to revert create")
			}
			delete(s.allocations, a.ID)
		}
	case models.OperationKindDelete:
		for _, a := range op.OldData {
			restored := a
			if err := s.store.Create(ctx, &restored); err != nil {
				return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to revert delete")
			}
			s.allocations[restored.ID] = restored
		}
	case models.OperationKindUpdate, models.OperationKindMove:
		for _, a := range op.OldData {
			restored := a
			if err := s.store.Update(ctx, &restored); err != nil {
				return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to revert "+string(op.Kind))
			}
			s.allocations[restored.ID] = restored
		}
	}
	return nil
}

// replayLocked reapplies the post-images of an operation.
func (s *PlannerService) replayLocked(ctx context.Context, op models.Operation) error {
	switch op.Kind {
	case models.OperationKindCreate:
		for _, a := range op.NewData {
			created := a
			if err := s.store.Create(ctx, &created); err != nil {
				return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to replay create")
			}
			s.allocations[created.ID] = created
		}
	case models.OperationKindDelete:
		for _, a := range op.OldData {
			if err := s.store.Delete(ctx, a.ID); err != nil {
				return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to replay delete")
			}
			delete(s.allocations, a.ID)
		}
	case models.OperationKindUpdate, models.OperationKindMove:
		for _, a := range op.NewData {
			applied := a
			if err := s.store.Update(ctx, &applied); err != nil {
				return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to replay "+string(op.Kind))
			}
			s.allocations[applied.ID] = applied
		}
	}
	return nil
}

// CanUndo reports whether an undo is available.
func (s *PlannerService) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo is available.
func (s *PlannerService) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// SetSelection replaces the selection with the given ids, keeping only ids
// that resolve against the working set.
func (s *PlannerService) SetSelection(allocationIDs []string, mode models.SelectionMode) models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(allocationIDs))
	for _, id := range allocationIDs {
		if _, ok := s.allocations[id]; ok {
			ids = append(ids, id)
		}
	}
	if mode != models.SelectionModeSingle && mode != models.SelectionModeMultiple {
		mode = models.SelectionModeSingle
		if len(ids) > 1 {
			mode = models.SelectionModeMultiple
		}
	}
	s.selection = models.SelectionState{IDs: ids, Mode: mode}
	return s.selectionLocked()
}

// ClearSelection empties the selection.
func (s *PlannerService) ClearSelection() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = models.SelectionState{IDs: []string{}, Mode: models.SelectionModeSingle}
	return s.selectionLocked()
}

// SelectAll selects every allocation in the working set.
func (s *PlannerService) SelectAll() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.allocationsLocked()
	ids := make([]string, 0, len(working))
	for _, a := range working {
		ids = append(ids, a.ID)
	}
	s.selection = models.SelectionState{IDs: ids, Mode: models.SelectionModeMultiple}
	return s.selectionLocked()
}

// Selection returns a copy of the current selection state.
func (s *PlannerService) Selection() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionLocked()
}

func (s *PlannerService) selectionLocked() models.SelectionState {
	return models.SelectionState{
		IDs:  append([]string(nil), s.selection.IDs...),
		Mode: s.selection.Mode,
	}
}

func (s *PlannerService) recordLocked(kind models.OperationKind, oldData, newData []models.Allocation) {
	ids := make([]string, 0, len(oldData)+len(newData))
	seen := make(map[string]struct{})
	for _, a := range append(append([]models.Allocation{}, oldData...), newData...) {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		ids = append(ids, a.ID)
	}
	s.history.Record(models.Operation{
		ID:            uuid.NewString(),
		Kind:          kind,
		AllocationIDs: ids,
		OldData:       oldData,
		NewData:       newData,
		Timestamp:     time.Now().UTC(),
	})
}

func (s *PlannerService) notify(message string, kind NotificationKind) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(message, kind)
}
