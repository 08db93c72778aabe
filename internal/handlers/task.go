package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/task-tracker-api/internal/dto"
	"github.com/tasknest/task-tracker-api/internal/middleware"
	"github.com/tasknest/task-tracker-api/internal/response"
	"github.com/tasknest/task-tracker-api/internal/services"
	"github.com/tasknest/task-tracker-api/internal/validation"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns live tasks joined with their status rows, optionally
// filtered by a ?status= query.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.List(c.Query("status"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch tasks", "")
		return
	}

	response.Success(c, http.StatusOK, "Tasks fetched successfully", gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// GetTasksByStatus returns live tasks carrying the given status code.
// An empty result is a 404, not an empty list.
func (h *TaskHandler) GetTasksByStatus(c *gin.Context) {
	statusCode := c.Param("status")

	tasks, err := h.taskService.List(statusCode)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch tasks", "")
		return
	}
	if len(tasks) == 0 {
		response.Error(c, http.StatusNotFound, "No tasks found with status "+statusCode, "")
		return
	}

	response.Success(c, http.StatusOK, "Tasks fetched successfully", gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns one live task by id
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Task fetched successfully", gin.H{
		"task": dto.ToTaskDTO(*task),
	})
}

// CreateTask creates a task with an optional team member list
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	in, violations := validation.TaskCreate(raw)
	if len(violations) > 0 {
		response.Error(c, http.StatusBadRequest, "Validation failed", strings.Join(violations, ", "))
		return
	}

	task, err := h.taskService.Create(principal, in)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	// Reload through the joined read path so the response carries the
	// resolved status name.
	if detail, err := h.taskService.Get(task.ID); err == nil {
		task = detail
	}

	response.Success(c, http.StatusCreated, "Task created successfully", gin.H{
		"task": dto.ToTaskDTO(*task),
	})
}

// UpdateTask replaces a task's fields
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	in, violations := validation.TaskUpdate(raw)
	if len(violations) > 0 {
		response.Error(c, http.StatusBadRequest, "Validation failed", strings.Join(violations, ", "))
		return
	}

	task, err := h.taskService.Update(principal, taskID, in)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Task updated successfully", gin.H{
		"task": dto.ToTaskDTO(*task),
	})
}

// PatchTask applies a role-gated partial update. Non-admins may only move
// the status, and must attach a comment when they do.
func (h *TaskHandler) PatchTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	in, violations := validation.TaskPatch(raw)
	if len(violations) > 0 {
		response.Error(c, http.StatusBadRequest, "Validation failed", strings.Join(violations, ", "))
		return
	}

	result, err := h.taskService.Patch(principal, taskID, in)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	message := "Task updated successfully"
	if result.CommentAdded && !result.StatusChanged {
		message = "Comment added successfully"
	}

	response.Success(c, http.StatusOK, message, gin.H{
		"task": dto.ToTaskDTO(*result.Task),
	})
}

// DeleteTask soft-deletes a task. Team member and comment rows survive.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(principal, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Task deleted successfully", nil)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		response.Error(c, http.StatusNotFound, "Task not found", "")
	case errors.Is(err, services.ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "Invalid status code", "")
	case errors.Is(err, services.ErrInvalidTeamMembers):
		response.Error(c, http.StatusBadRequest, "One or more team members are invalid", "")
	case errors.Is(err, services.ErrCommentRequired):
		response.Error(c, http.StatusBadRequest, "Comment is required when updating status", "")
	case errors.Is(err, services.ErrNonAdminFields):
		response.Error(c, http.StatusForbidden, "You are not allowed to update name, description or due date", "")
	case errors.Is(err, services.ErrAdminCommentNotAllowed):
		response.Error(c, http.StatusForbidden, "Admins cannot add comments", "")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process task", "")
	}
}
