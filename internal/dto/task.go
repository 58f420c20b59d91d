package dto

import "github.com/joinapp/join-backend/internal/models"

// TaskDTO represents a task in API responses. Category and assignees
// serialize as primary keys, the creator as embedded user details and
// subtasks as nested objects.
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *models.Date        `json:"due_date"`
	Category    *uint64             `json:"category"`
	AssignedTo  []uint64            `json:"assigned_to"`
	Creator     *UserDTO            `json:"creator"`
	Subtasks    []SubtaskDTO        `json:"subtasks"`
	Status      models.TaskStatus   `json:"status"`
}

// TaskPayload is the request body for task create and update. Every
// field is optional so the update path can tell absent fields from
// explicit nulls; the create path enforces its required fields itself.
// There is deliberately no creator field: the creator comes from the
// authenticated session and is never read from the payload.
type TaskPayload struct {
	Title       Optional[string]               `json:"title"`
	Description Optional[string]               `json:"description"`
	Priority    Optional[string]               `json:"priority"`
	DueDate     Optional[models.Date]          `json:"due_date"`
	Category    Optional[uint64]               `json:"category"`
	AssignedTo  Optional[[]uint64]             `json:"assigned_to"`
	Subtasks    Optional[[]TaskSubtaskPayload] `json:"subtasks"`
	Status      Optional[string]               `json:"status"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Category:    task.CategoryID,
		AssignedTo:  make([]uint64, len(task.AssignedTo)),
		Subtasks:    ToSubtaskDTOs(task.Subtasks),
		Status:      task.Status,
	}

	for i, contact := range task.AssignedTo {
		dto.AssignedTo[i] = contact.ID
	}

	if task.Creator != nil {
		creator := ToUserDTO(*task.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
