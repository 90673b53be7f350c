package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/resource-planner-api/internal/dto"
	"github.com/noah-isme/resource-planner-api/internal/models"
	"github.com/noah-isme/resource-planner-api/internal/service"
	appErrors "github.com/noah-isme/resource-planner-api/pkg/errors"
	"github.com/noah-isme/resource-planner-api/pkg/response"
)

type allocationLister interface {
	List(ctx context.Context, filter models.AllocationFilter) ([]models.Allocation, int, error)
}

// AllocationHandler manages allocation endpoints.
type AllocationHandler struct {
	planner *service.PlannerService
	lister  allocationLister
}

// NewAllocationHandler constructs handler.
func NewAllocationHandler(planner *service.PlannerService, lister allocationLister) *AllocationHandler {
	return &AllocationHandler{planner: planner, lister: lister}
}

// List godoc
// @Summary List allocations
// @Tags Allocations
// @Produce json
// @Param employeeId query string false "Filter by employee"
// @Param projectId query string false "Filter by project"
// @Param status query string false "Filter by status"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /allocations [get]
func (h *AllocationHandler) List(c *gin.Context) {
	var filter models.AllocationFilter
	filter.EmployeeID = c.Query("employeeId")
	filter.ProjectID = c.Query("projectId")
	filter.Status = c.Query("status")
	if raw := c.Query("from"); raw != "" {
		if t, err := dto.ParseDate(raw); err == nil {
			filter.From = t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := dto.ParseDate(raw); err == nil {
			filter.To = t
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	allocations, total, err := h.lister.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list allocations"))
		return
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	response.JSON(c, http.StatusOK, allocations, &models.Pagination{Page: page, PageSize: size, TotalCount: total})
}

// Create godoc
// @Summary Create allocations for one or more employees
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body dto.CreateAllocationsRequest true "Allocation payload"
// @Success 201 {object} response.Envelope
// @Router /allocations [post]
func (h *AllocationHandler) Create(c *gin.Context) {
	var req dto.CreateAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.planner.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update allocation fields
// @Tags Allocations
// @Accept json
// @Produce json
// @Param id path string true "Allocation ID"
// @Param payload body dto.AllocationFields true "Partial fields"
// @Success 200 {object} response.Envelope
// @Router /allocations/{id} [patch]
func (h *AllocationHandler) Update(c *gin.Context) {
	var fields dto.AllocationFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	updated, err := h.planner.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// Delete godoc
// @Summary Delete one allocation
// @Tags Allocations
// @Produce json
// @Param id path string true "Allocation ID"
// @Success 204
// @Router /allocations/{id} [delete]
func (h *AllocationHandler) Delete(c *gin.Context) {
	if _, err := h.planner.Delete(c.Request.Context(), []string{c.Param("id")}); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteBatch godoc
// @Summary Delete a batch of allocations
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body dto.DeleteAllocationsRequest true "Allocation ids"
// @Success 200 {object} response.Envelope
// @Router /allocations/delete [post]
func (h *AllocationHandler) DeleteBatch(c *gin.Context) {
	var req dto.DeleteAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	count, err := h.planner.Delete(c.Request.Context(), req.AllocationIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": count}, nil)
}

// Move godoc
// @Summary Move an allocation to a new employee and date
// @Tags Allocations
// @Accept json
// @Produce json
// @Param id path string true "Allocation ID"
// @Param payload body dto.MoveAllocationRequest true "Move payload"
// @Success 200 {object} response.Envelope
// @Router /allocations/{id}/move [post]
func (h *AllocationHandler) Move(c *gin.Context) {
	var req dto.MoveAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	moved, err := h.planner.Move(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, moved, nil)
}

// ValidateDrop godoc
// @Summary Pre-flight check for a proposed move
// @Tags Allocations
// @Accept json
// @Produce json
// @Param id path string true "Allocation ID"
// @Param payload body dto.MoveAllocationRequest true "Proposed target"
// @Success 200 {object} response.Envelope
// @Router /allocations/{id}/validate-drop [post]
func (h *AllocationHandler) ValidateDrop(c *gin.Context) {
	var req dto.MoveAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result := h.planner.ValidateDrop(c.Param("id"), req.TargetEmployeeID, req.TargetDate.Time)
	response.JSON(c, http.StatusOK, result, nil)
}

// Bulk godoc
// @Summary Apply one operation to many allocations sequentially
// @Tags Allocations
// @Accept json
// @Produce json
// @Param payload body dto.BulkOperationRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Router /allocations/bulk [post]
func (h *AllocationHandler) Bulk(c *gin.Context) {
	var req dto.BulkOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.planner.BulkOperation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
