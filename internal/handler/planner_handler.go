package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/resource-planner-api/internal/dto"
	"github.com/noah-isme/resource-planner-api/internal/models"
	"github.com/noah-isme/resource-planner-api/internal/service"
	appErrors "github.com/noah-isme/resource-planner-api/pkg/errors"
	"github.com/noah-isme/resource-planner-api/pkg/response"
)

// PlannerHandler exposes the engine's derived state, undo/redo history and
// selection alongside export generation.
type PlannerHandler struct {
	planner *service.PlannerService
	exports *service.ExportService
}

// NewPlannerHandler constructs handler.
func NewPlannerHandler(planner *service.PlannerService, exports *service.ExportService) *PlannerHandler {
	return &PlannerHandler{planner: planner, exports: exports}
}

// Conflicts godoc
// @Summary List conflicts detected against the current allocation set
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/conflicts [get]
func (h *PlannerHandler) Conflicts(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.Conflicts(), nil)
}

// Lanes godoc
// @Summary List per-employee resource lanes
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/lanes [get]
func (h *PlannerHandler) Lanes(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.Lanes(), nil)
}

// History godoc
// @Summary Report undo/redo availability
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/history [get]
func (h *PlannerHandler) History(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"can_undo": h.planner.CanUndo(),
		"can_redo": h.planner.CanRedo(),
		"busy":     h.planner.Busy(),
	}, nil)
}

// Undo godoc
// @Summary Undo the most recent operation
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/undo [post]
func (h *PlannerHandler) Undo(c *gin.Context) {
	performed, err := h.planner.Undo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"performed": performed,
		"can_undo":  h.planner.CanUndo(),
		"can_redo":  h.planner.CanRedo(),
	}, nil)
}

// Redo godoc
// @Summary Reapply the most recently undone operation
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/redo [post]
func (h *PlannerHandler) Redo(c *gin.Context) {
	performed, err := h.planner.Redo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"performed": performed,
		"can_undo":  h.planner.CanUndo(),
		"can_redo":  h.planner.CanRedo(),
	}, nil)
}

// Refresh godoc
// @Summary Reload the working set from the store
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/refresh [post]
func (h *PlannerHandler) Refresh(c *gin.Context) {
	if err := h.planner.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.planner.Snapshot(), nil)
}

// Snapshot godoc
// @Summary Capture the full planner state
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/snapshot [get]
func (h *PlannerHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.Snapshot(), nil)
}

// Export godoc
// @Summary Export the planner state as JSON, CSV or PDF
// @Tags Planner
// @Produce json
// @Param format query string false "Export format (json, csv, pdf)" default(json)
// @Success 200 {file} binary
// @Router /planner/export [get]
func (h *PlannerHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "json"))
	result, err := h.exports.Generate(format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// GetSelection godoc
// @Summary Return the current selection
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/selection [get]
func (h *PlannerHandler) GetSelection(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.Selection(), nil)
}

// SetSelection godoc
// @Summary Replace the current selection
// @Tags Planner
// @Accept json
// @Produce json
// @Param payload body dto.SelectionRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Router /planner/selection [put]
func (h *PlannerHandler) SetSelection(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	state := h.planner.SetSelection(req.AllocationIDs, models.SelectionMode(req.Mode))
	response.JSON(c, http.StatusOK, state, nil)
}

// ClearSelection godoc
// @Summary Clear the current selection
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/selection [delete]
func (h *PlannerHandler) ClearSelection(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.ClearSelection(), nil)
}

// SelectAll godoc
// @Summary Select every allocation in the working set
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/selection/all [post]
func (h *PlannerHandler) SelectAll(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.planner.SelectAll(), nil)
}
