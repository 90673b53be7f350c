package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/resource-planner-api/internal/models"
	"github.com/noah-isme/resource-planner-api/internal/service"
)

type memoryAllocationStore struct {
	items map[string]models.Allocation
}

func (m *memoryAllocationStore) ListAll(_ context.Context) ([]models.Allocation, error) {
	out := make([]models.Allocation, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, nil
}

func (m *memoryAllocationStore) Create(_ context.Context, allocation *models.Allocation) error {
	m.items[allocation.ID] = *allocation
	return nil
}

func (m *memoryAllocationStore) Update(_ context.Context, allocation *models.Allocation) error {
	m.items[allocation.ID] = *allocation
	return nil
}

func (m *memoryAllocationStore) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memoryAllocationStore) List(_ context.Context, _ models.AllocationFilter) ([]models.Allocation, int, error) {
	out, _ := m.ListAll(context.Background())
	return out, len(out), nil
}

type staticEmployees struct{ employees []models.Employee }

func (s *staticEmployees) ListAll(_ context.Context) ([]models.Employee, error) {
	return s.employees, nil
}

type staticProjects struct{ projects []models.Project }

func (s *staticProjects) ListAll(_ context.Context) ([]models.Project, error) {
	return s.projects, nil
}

func testDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func newTestRouter(t *testing.T) (*gin.Engine, *memoryAllocationStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memoryAllocationStore{items: map[string]models.Allocation{
		"a1": {
			ID:         "a1",
			EmployeeID: "e1",
			ProjectID:  "p1",
			StartDate:  testDay(t, "2026-01-05"),
			EndDate:    testDay(t, "2026-01-07"),
			Status:     models.AllocationStatusPlanned,
			Active:     true,
		},
	}}
	planner := service.NewPlannerService(
		store,
		&staticEmployees{employees: []models.Employee{
			{ID: "e1", FullName: "Ana", WeeklyCapacity: 40},
			{ID: "e2", FullName: "Ben", WeeklyCapacity: 40},
		}},
		&staticProjects{projects: []models.Project{{ID: "p1", Name: "Atlas"}}},
		service.PlannerConfig{MaxUndoOperations: 10},
		nil,
		nil,
	)
	require.NoError(t, planner.Refresh(context.Background()))

	allocationHandler := NewAllocationHandler(planner, store)
	plannerHandler := NewPlannerHandler(planner, service.NewExportService(planner, nil, nil))

	router := gin.New()
	router.GET("/allocations", allocationHandler.List)
	router.POST("/allocations", allocationHandler.Create)
	router.POST("/allocations/bulk", allocationHandler.Bulk)
	router.PATCH("/allocations/:id", allocationHandler.Update)
	router.DELETE("/allocations/:id", allocationHandler.Delete)
	router.POST("/allocations/:id/move", allocationHandler.Move)
	router.POST("/allocations/:id/validate-drop", allocationHandler.ValidateDrop)
	router.GET("/planner/conflicts", plannerHandler.Conflicts)
	router.GET("/planner/history", plannerHandler.History)
	router.POST("/planner/undo", plannerHandler.Undo)
	router.POST("/planner/redo", plannerHandler.Redo)
	router.GET("/planner/export", plannerHandler.Export)
	return router, store
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAllocationHandlerMove(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/allocations/a1/move", `{"target_employee_id":"e2","target_date":"2026-01-12"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.Allocation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "e2", envelope.Data.EmployeeID)
	assert.Equal(t, "e2", store.items["a1"].EmployeeID)
}

func TestAllocationHandlerMoveUnknownAllocation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/allocations/missing/move", `{"target_employee_id":"e2","target_date":"2026-01-12"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAllocationHandlerMoveRejectsBadPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/allocations/a1/move", `{"target_date":"not a date"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllocationHandlerValidateDrop(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/allocations/a1/validate-drop", `{"target_employee_id":"ghost","target_date":"2026-01-12"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.DropValidation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.IsValid)
	assert.Equal(t, models.DropReasonEmployeeNotFound, envelope.Data.Reason)
}

func TestAllocationHandlerCreate(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/allocations", `{
		"employee_ids": ["e2"],
		"project_id": "p1",
		"start_date": "2026-02-02",
		"end_date": "2026-02-04",
		"hours": 16
	}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, store.items, 2)
}

func TestAllocationHandlerUpdateCamelCasePayload(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(router, http.MethodPatch, "/allocations/a1", `{"hours": 32, "status": "active"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 32.0, store.items["a1"].AllocatedHours)
	assert.Equal(t, models.AllocationStatusActive, store.items["a1"].Status)
}

func TestAllocationHandlerDelete(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(router, http.MethodDelete, "/allocations/a1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.items)
}

func TestAllocationHandlerBulkPartialOutcome(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/allocations/bulk", `{
		"kind": "delete",
		"allocation_ids": ["a1", "missing"]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.BulkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []string{"a1"}, envelope.Data.Successful)
	assert.Equal(t, []string{"missing"}, envelope.Data.Failed)
}

func TestPlannerHandlerUndoRedoRoundTrip(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/allocations/a1/move", `{"target_employee_id":"e2","target_date":"2026-01-12"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/planner/undo", "")
	require.Equal(t, http.StatusOK, w.Code)
	var undo struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &undo))
	assert.Equal(t, true, undo.Data["performed"])
	assert.Equal(t, true, undo.Data["can_redo"])
	assert.Equal(t, "e1", store.items["a1"].EmployeeID)

	w = doJSON(router, http.MethodPost, "/planner/redo", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "e2", store.items["a1"].EmployeeID)
}

func TestPlannerHandlerHistory(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/planner/history", "")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Data["can_undo"])
	assert.Equal(t, false, envelope.Data["can_redo"])
}

func TestPlannerHandlerConflicts(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/planner/conflicts", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPlannerHandlerExportCSV(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/planner/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "# Allocations")
}

func TestPlannerHandlerExportUnsupportedFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/planner/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllocationHandlerList(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/allocations?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data       []models.Allocation `json:"data"`
		Pagination *models.Pagination  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 1)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}
