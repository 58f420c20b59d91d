package services

import (
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/joinapp/join-backend/internal/errors"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// SubtaskNotFoundError reports a subtask reference in an update payload
// that is not linked to the task being updated.
type SubtaskNotFoundError struct {
	ID uint64
}

func (e *SubtaskNotFoundError) Error() string {
	return fmt.Sprintf("Subtask ID %d not found", e.ID)
}

// SubtaskRef references a linked subtask and carries a field-level
// patch; nil fields keep their stored value.
type SubtaskRef struct {
	ID        uint64
	Text      *string
	Completed *bool
}

// NewSubtask describes a subtask to create and link to the task.
type NewSubtask struct {
	Text      string
	Completed bool
}

// CreateTaskInput represents input for creating a task. The creator
// always comes from the authenticated session, never from the payload.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Status      models.TaskStatus
	DueDate     *models.Date
	CategoryID  *uint64
	AssignedTo  []uint64
	Subtasks    []NewSubtask
	CreatorID   uint64
}

// UpdateTaskInput represents a partial task update. Nil scalar fields
// keep their stored values and the assignee set is only replaced when
// ReplaceAssignees is set. Subtasks have no such gate: every update
// reconciles the linked set against SubtaskRefs and NewSubtasks, so a
// payload that sends no descriptors deletes every linked subtask.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	Priority         *models.TaskPriority
	Status           *models.TaskStatus
	DueDate          *models.Date
	ClearDueDate     bool
	CategoryID       *uint64
	ClearCategory    bool
	ReplaceAssignees bool
	AssignedTo       []uint64
	SubtaskRefs      []SubtaskRef
	NewSubtasks      []NewSubtask
}

// TaskService owns the task write paths. Every write runs inside one
// transaction so a failing subtask reference rolls back scalar and
// assignee changes from the same call.
type TaskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// ListTasks returns the tasks created by the given user.
func (s *TaskService) ListTasks(creatorID uint64) ([]models.Task, error) {
	tasks, err := repository.NewTaskRepository(s.db).ListByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with all relations needed for serialization.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := repository.NewTaskRepository(s.db).FindByID(id, repository.TaskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates the payload, persists the task with its category
// and assignee set, and creates the requested subtasks. Subtask
// descriptors that carry an id are skipped on this path: nothing is
// linked yet for them to reference.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	errs := apierrors.FieldErrors{}
	if strings.TrimSpace(input.Title) == "" {
		errs.Add("title", apierrors.MsgFieldRequired)
	}
	if input.Priority == "" {
		errs.Add("priority", apierrors.MsgFieldRequired)
	} else if !input.Priority.Valid() {
		errs.Add("priority", invalidChoice(string(input.Priority)))
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	} else if !input.Status.Valid() {
		errs.Add("status", invalidChoice(string(input.Status)))
	}
	for _, entry := range input.Subtasks {
		if strings.TrimSpace(entry.Text) == "" {
			errs.Add("subtasks", apierrors.MsgFieldRequired)
			break
		}
	}
	if !errs.Empty() {
		return nil, errs
	}

	var taskID uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)
		contactRepo := repository.NewContactRepository(tx)
		subtaskRepo := repository.NewSubtaskRepository(tx)

		if input.CategoryID != nil {
			if err := resolveCategory(tx, *input.CategoryID); err != nil {
				return err
			}
		}

		contacts, err := resolveContacts(contactRepo, input.AssignedTo)
		if err != nil {
			return err
		}

		creatorID := input.CreatorID
		task := &models.Task{
			Title:       input.Title,
			Description: input.Description,
			Priority:    input.Priority,
			DueDate:     input.DueDate,
			CategoryID:  input.CategoryID,
			CreatorID:   &creatorID,
			Status:      input.Status,
		}
		if err := taskRepo.Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		if err := taskRepo.ReplaceAssignees(task, contacts); err != nil {
			return fmt.Errorf("failed to assign contacts: %w", err)
		}

		for _, entry := range input.Subtasks {
			subtask := &models.Subtask{Text: entry.Text, Completed: entry.Completed}
			if err := subtaskRepo.Create(subtask); err != nil {
				return fmt.Errorf("failed to create subtask: %w", err)
			}
			if err := taskRepo.LinkSubtask(task, subtask); err != nil {
				return fmt.Errorf("failed to link subtask: %w", err)
			}
		}

		taskID = task.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTask(taskID)
}

// UpdateTask applies a partial update: scalar patches, wholesale
// assignee replacement and subtask reconciliation, all in one
// transaction. The creator is never touched. Reconciliation runs on
// every update; clients resend the complete subtask list each time, so
// an update without descriptors empties the linked set.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	errs := apierrors.FieldErrors{}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		errs.Add("title", "This field may not be blank.")
	}
	if input.Priority != nil && !input.Priority.Valid() {
		errs.Add("priority", invalidChoice(string(*input.Priority)))
	}
	if input.Status != nil && !input.Status.Valid() {
		errs.Add("status", invalidChoice(string(*input.Status)))
	}
	for _, entry := range input.NewSubtasks {
		if strings.TrimSpace(entry.Text) == "" {
			errs.Add("subtasks", apierrors.MsgFieldRequired)
			break
		}
	}
	if !errs.Empty() {
		return nil, errs
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)
		contactRepo := repository.NewContactRepository(tx)
		subtaskRepo := repository.NewSubtaskRepository(tx)

		task, err := taskRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Priority != nil {
			task.Priority = *input.Priority
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		if input.ClearDueDate {
			task.DueDate = nil
		} else if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
		if input.ClearCategory {
			task.CategoryID = nil
		} else if input.CategoryID != nil {
			if err := resolveCategory(tx, *input.CategoryID); err != nil {
				return err
			}
			task.CategoryID = input.CategoryID
		}

		if err := taskRepo.Save(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		if input.ReplaceAssignees {
			contacts, err := resolveContacts(contactRepo, input.AssignedTo)
			if err != nil {
				return err
			}
			if err := taskRepo.ReplaceAssignees(task, contacts); err != nil {
				return fmt.Errorf("failed to replace assignees: %w", err)
			}
		}

		if err := reconcileSubtasks(taskRepo, subtaskRepo, task, input.SubtaskRefs, input.NewSubtasks); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTask(id)
}

// DeleteTask removes the task row, detaching assigned contacts and
// linked subtasks without deleting them.
func (s *TaskService) DeleteTask(id uint64) error {
	taskRepo := repository.NewTaskRepository(s.db)

	if _, err := taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// reconcileSubtasks applies the set difference between the subtasks
// currently linked to the task and the incoming descriptors: referenced
// subtasks are field-merged, id-less entries are created and linked, and
// linked subtasks the payload does not mention are deleted outright,
// row included.
func reconcileSubtasks(taskRepo repository.TaskRepository, subtaskRepo repository.SubtaskRepository, task *models.Task, refs []SubtaskRef, added []NewSubtask) error {
	existing, err := taskRepo.LinkedSubtasks(task.ID)
	if err != nil {
		return fmt.Errorf("failed to load linked subtasks: %w", err)
	}

	current := make(map[uint64]*models.Subtask, len(existing))
	for i := range existing {
		current[existing[i].ID] = &existing[i]
	}

	incoming := make(map[uint64]struct{}, len(refs))
	for _, ref := range refs {
		subtask, ok := current[ref.ID]
		if !ok {
			return &SubtaskNotFoundError{ID: ref.ID}
		}
		incoming[ref.ID] = struct{}{}

		if ref.Text != nil {
			subtask.Text = *ref.Text
		}
		if ref.Completed != nil {
			subtask.Completed = *ref.Completed
		}
		if err := subtaskRepo.Update(subtask); err != nil {
			return fmt.Errorf("failed to update subtask %d: %w", ref.ID, err)
		}
	}

	for _, entry := range added {
		subtask := &models.Subtask{Text: entry.Text, Completed: entry.Completed}
		if err := subtaskRepo.Create(subtask); err != nil {
			return fmt.Errorf("failed to create subtask: %w", err)
		}
		if err := taskRepo.LinkSubtask(task, subtask); err != nil {
			return fmt.Errorf("failed to link subtask: %w", err)
		}
	}

	// Omission is deletion: clients resend the complete subtask list on
	// every update, so an unmentioned subtask loses its row, not just
	// its link.
	for subtaskID := range current {
		if _, mentioned := incoming[subtaskID]; mentioned {
			continue
		}
		if err := subtaskRepo.Delete(subtaskID); err != nil {
			return fmt.Errorf("failed to delete subtask %d: %w", subtaskID, err)
		}
	}

	return nil
}

func resolveCategory(tx *gorm.DB, id uint64) error {
	if _, err := repository.NewCategoryRepository(tx).FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.FieldErrors{"category": {invalidPK(id)}}
		}
		return fmt.Errorf("failed to resolve category: %w", err)
	}
	return nil
}

// resolveContacts loads the referenced contacts; any id that does not
// resolve fails the whole call, no partial application.
func resolveContacts(contactRepo repository.ContactRepository, ids []uint64) ([]models.Contact, error) {
	unique := uniqueUint64(ids)

	contacts, err := contactRepo.FindByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contacts: %w", err)
	}
	if len(contacts) != len(unique) {
		found := make(map[uint64]struct{}, len(contacts))
		for _, contact := range contacts {
			found[contact.ID] = struct{}{}
		}
		errs := apierrors.FieldErrors{}
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				errs.Add("assigned_to", invalidPK(id))
			}
		}
		return nil, errs
	}

	return contacts, nil
}

func invalidPK(id uint64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

func invalidChoice(value string) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
