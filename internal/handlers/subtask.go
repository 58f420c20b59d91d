package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/dto"
	apierrors "github.com/joinapp/join-backend/internal/errors"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
)

// SubtaskHandler serves the standalone subtask endpoints. Subtasks are
// global; no ownership scoping applies.
type SubtaskHandler struct {
	subtaskRepo repository.SubtaskRepository
}

// NewSubtaskHandler creates a new SubtaskHandler.
func NewSubtaskHandler(subtaskRepo repository.SubtaskRepository) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskRepo: subtaskRepo,
	}
}

// ListSubtasks returns all subtasks.
func (h *SubtaskHandler) ListSubtasks(c *gin.Context) {
	subtasks, err := h.subtaskRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subtasks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTOs(subtasks))
}

// CreateSubtask validates and inserts a subtask row.
func (h *SubtaskHandler) CreateSubtask(c *gin.Context) {
	var payload dto.SubtaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	errs := validateSubtaskPayload(payload)
	if !errs.Empty() {
		apierrors.ValidationFailed(c, errs)
		return
	}

	subtask := models.Subtask{
		Text:      *payload.Text,
		Completed: subtaskCompleted(payload),
	}

	if err := h.subtaskRepo.Create(&subtask); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subtask"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubtaskDTO(subtask))
}

// GetSubtask returns a subtask by id.
func (h *SubtaskHandler) GetSubtask(c *gin.Context) {
	subtask, ok := h.resolveSubtask(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTO(*subtask))
}

// UpdateSubtask applies full-replacement semantics: text is required
// and an omitted completed flag resets to false, unlike the
// field-level merge used for subtasks nested in a task update.
func (h *SubtaskHandler) UpdateSubtask(c *gin.Context) {
	subtask, ok := h.resolveSubtask(c)
	if !ok {
		return
	}

	var payload dto.SubtaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	errs := validateSubtaskPayload(payload)
	if !errs.Empty() {
		apierrors.ValidationFailed(c, errs)
		return
	}

	subtask.Text = *payload.Text
	subtask.Completed = subtaskCompleted(payload)

	if err := h.subtaskRepo.Update(subtask); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subtask"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSubtaskDTO(*subtask))
}

// DeleteSubtask removes a subtask row and its task links.
func (h *SubtaskHandler) DeleteSubtask(c *gin.Context) {
	subtask, ok := h.resolveSubtask(c)
	if !ok {
		return
	}

	if err := h.subtaskRepo.Delete(subtask.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subtask"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubtaskHandler) resolveSubtask(c *gin.Context) (*models.Subtask, bool) {
	id, err := strconv.ParseUint(c.Param("pk"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return nil, false
	}

	subtask, err := h.subtaskRepo.FindByID(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return nil, false
	}

	return subtask, true
}

func validateSubtaskPayload(payload dto.SubtaskPayload) apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}
	if payload.Text == nil || strings.TrimSpace(*payload.Text) == "" {
		errs.Add("text", apierrors.MsgFieldRequired)
	}
	return errs
}

func subtaskCompleted(payload dto.SubtaskPayload) bool {
	if payload.Completed == nil {
		return false
	}
	return *payload.Completed
}
