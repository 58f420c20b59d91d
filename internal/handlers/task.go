package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/dto"
	apierrors "github.com/joinapp/join-backend/internal/errors"
	"github.com/joinapp/join-backend/internal/middleware"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/services"
)

// TaskHandler serves the task endpoints. Writes go through the
// TaskService, which reconciles the nested subtask collection.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the tasks created by the requester. Only the list
// endpoint is creator-scoped; detail operations resolve any id.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a task for the requester.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var payload dto.TaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := services.CreateTaskInput{
		CreatorID: userID,
	}
	if payload.Title.Set && payload.Title.Value != nil {
		input.Title = *payload.Title.Value
	}
	if payload.Description.Set && payload.Description.Value != nil {
		input.Description = *payload.Description.Value
	}
	if payload.Priority.Set && payload.Priority.Value != nil {
		input.Priority = models.TaskPriority(*payload.Priority.Value)
	}
	if payload.Status.Set && payload.Status.Value != nil {
		input.Status = models.TaskStatus(*payload.Status.Value)
	}
	if payload.DueDate.Set {
		input.DueDate = payload.DueDate.Value
	}
	if payload.Category.Set {
		input.CategoryID = payload.Category.Value
	}
	if payload.AssignedTo.Set && payload.AssignedTo.Value != nil {
		input.AssignedTo = *payload.AssignedTo.Value
	}
	if payload.Subtasks.Set && payload.Subtasks.Value != nil {
		// Descriptors carrying an id cannot reference anything on the
		// create path and are skipped, not created and not erred.
		for _, descriptor := range *payload.Subtasks.Value {
			if descriptor.ID != nil {
				continue
			}
			input.Subtasks = append(input.Subtasks, newSubtaskFrom(descriptor))
		}
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		h.respondTaskError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns any task by id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		h.respondTaskError(c, err, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update and reconciles the subtask set.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var payload dto.TaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := services.UpdateTaskInput{}
	if payload.Title.Set && payload.Title.Value != nil {
		input.Title = payload.Title.Value
	}
	if payload.Description.Set && payload.Description.Value != nil {
		input.Description = payload.Description.Value
	}
	if payload.Priority.Set && payload.Priority.Value != nil {
		priority := models.TaskPriority(*payload.Priority.Value)
		input.Priority = &priority
	}
	if payload.Status.Set && payload.Status.Value != nil {
		status := models.TaskStatus(*payload.Status.Value)
		input.Status = &status
	}
	if payload.DueDate.Set {
		if payload.DueDate.Value == nil {
			input.ClearDueDate = true
		} else {
			input.DueDate = payload.DueDate.Value
		}
	}
	if payload.Category.Set {
		if payload.Category.Value == nil {
			input.ClearCategory = true
		} else {
			input.CategoryID = payload.Category.Value
		}
	}
	if payload.AssignedTo.Set && payload.AssignedTo.Value != nil {
		input.ReplaceAssignees = true
		input.AssignedTo = *payload.AssignedTo.Value
	}
	// A missing or null subtasks key reconciles against an empty
	// descriptor list, deleting every linked subtask.
	if payload.Subtasks.Set && payload.Subtasks.Value != nil {
		for _, descriptor := range *payload.Subtasks.Value {
			if descriptor.ID != nil {
				input.SubtaskRefs = append(input.SubtaskRefs, services.SubtaskRef{
					ID:        *descriptor.ID,
					Text:      descriptor.Text,
					Completed: descriptor.Completed,
				})
				continue
			}
			input.NewSubtasks = append(input.NewSubtasks, newSubtaskFrom(descriptor))
		}
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		h.respondTaskError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task, detaching its contacts and subtasks.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		h.respondTaskError(c, err, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error, fallback string) {
	var fieldErrs apierrors.FieldErrors
	var subtaskErr *services.SubtaskNotFoundError

	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "The task does not exist"})
	case errors.As(err, &subtaskErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": subtaskErr.Error()})
	case errors.As(err, &fieldErrs):
		apierrors.ValidationFailed(c, fieldErrs)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func taskID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("pk"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "The task does not exist"})
		return 0, false
	}
	return id, true
}

func newSubtaskFrom(descriptor dto.TaskSubtaskPayload) services.NewSubtask {
	entry := services.NewSubtask{}
	if descriptor.Text != nil {
		entry.Text = *descriptor.Text
	}
	if descriptor.Completed != nil {
		entry.Completed = *descriptor.Completed
	}
	return entry
}
