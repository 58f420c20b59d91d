package dto

import "github.com/joinapp/join-backend/internal/models"

// SubtaskDTO represents a subtask in API responses
type SubtaskDTO struct {
	ID        uint64 `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// SubtaskPayload is the request body for the standalone subtask
// endpoints (full-replacement semantics).
type SubtaskPayload struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TaskSubtaskPayload is a subtask descriptor nested in a task payload.
// An entry with an ID refers to an existing subtask and carries a
// field-level patch; an entry without one describes a subtask to create.
type TaskSubtaskPayload struct {
	ID        *uint64 `json:"id"`
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// ToSubtaskDTO converts a Subtask model to SubtaskDTO
func ToSubtaskDTO(subtask models.Subtask) SubtaskDTO {
	return SubtaskDTO{
		ID:        subtask.ID,
		Text:      subtask.Text,
		Completed: subtask.Completed,
	}
}

// ToSubtaskDTOs converts a slice of subtasks
func ToSubtaskDTOs(subtasks []models.Subtask) []SubtaskDTO {
	dtos := make([]SubtaskDTO, len(subtasks))
	for i, subtask := range subtasks {
		dtos[i] = ToSubtaskDTO(subtask)
	}
	return dtos
}
