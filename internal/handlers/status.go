package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/task-tracker-api/internal/dto"
	"github.com/tasknest/task-tracker-api/internal/middleware"
	"github.com/tasknest/task-tracker-api/internal/response"
	"github.com/tasknest/task-tracker-api/internal/services"
)

type StatusHandler struct {
	statusService *services.StatusService
}

func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// ListStatuses returns all live status registry entries
func (h *StatusHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.statusService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch statuses", "")
		return
	}

	response.Success(c, http.StatusOK, "Statuses fetched successfully", gin.H{
		"statuses": dto.ToStatusDTOs(statuses),
	})
}

// GetStatus returns one status addressed by numeric id or code
func (h *StatusHandler) GetStatus(c *gin.Context) {
	status, err := h.statusService.Get(c.Param("idOrCode"))
	if err != nil {
		respondStatusError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Status fetched successfully", gin.H{
		"status": dto.ToStatusDTO(*status),
	})
}

// CreateStatus registers a new status code
func (h *StatusHandler) CreateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var req struct {
		Code string `json:"code" binding:"required,min=3,max=50"`
		Name string `json:"name" binding:"required,min=3,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	status, err := h.statusService.Create(principal, req.Code, req.Name)
	if err != nil {
		respondStatusError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Status created successfully", gin.H{
		"status": dto.ToStatusDTO(*status),
	})
}

// UpdateStatus replaces a status registry entry. Code and name are
// required; active keeps its value when absent.
func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var req struct {
		Code   string `json:"code" binding:"required,min=3,max=50"`
		Name   string `json:"name" binding:"required,min=3,max=50"`
		Active *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	status, err := h.statusService.Update(principal, c.Param("idOrCode"), services.StatusUpdateInput{
		Code:   &req.Code,
		Name:   &req.Name,
		Active: req.Active,
	})
	if err != nil {
		respondStatusError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated successfully", gin.H{
		"status": dto.ToStatusDTO(*status),
	})
}

// PatchStatus applies a partial update to a status registry entry
func (h *StatusHandler) PatchStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var req struct {
		Code   *string `json:"code" binding:"omitempty,min=3,max=50"`
		Name   *string `json:"name" binding:"omitempty,min=3,max=50"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	if req.Code == nil && req.Name == nil && req.Active == nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", "at least one field (code, name, active) is required")
		return
	}

	status, err := h.statusService.Update(principal, c.Param("idOrCode"), services.StatusUpdateInput{
		Code:   req.Code,
		Name:   req.Name,
		Active: req.Active,
	})
	if err != nil {
		respondStatusError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated successfully", gin.H{
		"status": dto.ToStatusDTO(*status),
	})
}

// DeleteStatus soft-deletes a status registry entry
func (h *StatusHandler) DeleteStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	if err := h.statusService.Delete(principal, c.Param("idOrCode")); err != nil {
		respondStatusError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Status deleted successfully", nil)
}

func respondStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStatusNotFound):
		response.Error(c, http.StatusNotFound, "Status not found", "")
	case errors.Is(err, services.ErrStatusCodeExists):
		response.Error(c, http.StatusConflict, "Status code already exists", "")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process status", "")
	}
}
