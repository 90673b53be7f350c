package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/resource-planner-api/internal/models"
)

// AllocationRepository is the durable allocation store backed by Postgres.
type AllocationRepository struct {
	db *sqlx.DB
}

// NewAllocationRepository constructs an AllocationRepository.
func NewAllocationRepository(db *sqlx.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

const allocationColumns = "id, employee_id, project_id, start_date, end_date, allocated_hours, role, status, active, notes, created_at, updated_at"

// List returns allocations matching filters along with total count.
func (r *AllocationRepository) List(ctx context.Context, filter models.AllocationFilter) ([]models.Allocation, int, error) {
	base := "FROM allocations WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)+1))
		args = append(args, filter.EmployeeID)
	}
	if filter.ProjectID != "" {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", len(args)+1))
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("end_date >= $%d", len(args)+1))
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", len(args)+1))
		args = append(args, filter.To)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "start_date"
	}
	allowedSorts := map[string]string{
		"start_date":      "start_date",
		"end_date":        "end_date",
		"allocated_hours": "allocated_hours",
		"created_at":      "created_at",
		"updated_at":      "updated_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "start_date"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", allocationColumns, base, column, order, size, offset)
	var allocations []models.Allocation
	if err := r.db.SelectContext(ctx, &allocations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list allocations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count allocations: %w", err)
	}

	return allocations, total, nil
}

// ListAll returns the full working set ordered by start date.
func (r *AllocationRepository) ListAll(ctx context.Context) ([]models.Allocation, error) {
	query := fmt.Sprintf("SELECT %s FROM allocations ORDER BY start_date ASC", allocationColumns)
	var allocations []models.Allocation
	if err := r.db.SelectContext(ctx, &allocations, query); err != nil {
		return nil, fmt.Errorf("list all allocations: %w", err)
	}
	return allocations, nil
}

// FindByID fetches an allocation by ID.
func (r *AllocationRepository) FindByID(ctx context.Context, id string) (*models.Allocation, error) {
	query := fmt.Sprintf("SELECT %s FROM allocations WHERE id = $1", allocationColumns)
	var allocation models.Allocation
	if err := r.db.GetContext(ctx, &allocation, query, id); err != nil {
		return nil, err
	}
	return &allocation, nil
}

// Create inserts a new allocation record.
func (r *AllocationRepository) Create(ctx context.Context, allocation *models.Allocation) error {
	if allocation.ID == "" {
		allocation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if allocation.CreatedAt.IsZero() {
		allocation.CreatedAt = now
	}
	allocation.UpdatedAt = now

	const query = `INSERT INTO allocations (id, employee_id, project_id, start_date, end_date, allocated_hours, role, status, active, notes, created_at, updated_at)
		VALUES (:id, :employee_id, :project_id, :start_date, :end_date, :allocated_hours, :role, :status, :active, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, allocation); err != nil {
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

// Update modifies an existing allocation record.
func (r *AllocationRepository) Update(ctx context.Context, allocation *models.Allocation) error {
	allocation.UpdatedAt = time.Now().UTC()
	const query = `UPDATE allocations SET employee_id = :employee_id, project_id = :project_id, start_date = :start_date, end_date = :end_date, allocated_hours = :allocated_hours, role = :role, status = :status, active = :active, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, allocation); err != nil {
		return fmt.Errorf("update allocation: %w", err)
	}
	return nil
}

// Delete removes an allocation record.
func (r *AllocationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM allocations WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	return nil
}
