package repository

import (
	"github.com/joinapp/join-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ListByCreator lists tasks created by a user, fully populated
func (r *GormTaskRepository) ListByCreator(creatorID uint64) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.Where("creator_id = ?", creatorID).Order("id ASC")
	for _, p := range TaskPreloads {
		query = query.Preload(p)
	}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// Create persists a task row. Associations are managed explicitly, so
// they are omitted here to keep writes deterministic.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// Save persists scalar changes without touching associations
func (r *GormTaskRepository) Save(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete removes a task row. Assigned contacts and linked subtasks are
// detached, never deleted.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		task := models.Task{ID: id}
		if err := tx.Model(&task).Association("AssignedTo").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&task).Association("Subtasks").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// ReplaceAssignees swaps the task's assignee set wholesale
func (r *GormTaskRepository) ReplaceAssignees(task *models.Task, contacts []models.Contact) error {
	return r.db.Model(task).Association("AssignedTo").Replace(&contacts)
}

// LinkSubtask links an existing subtask row to the task
func (r *GormTaskRepository) LinkSubtask(task *models.Task, subtask *models.Subtask) error {
	return r.db.Model(task).Association("Subtasks").Append(subtask)
}

// LinkedSubtasks lists the subtasks currently linked to a task
func (r *GormTaskRepository) LinkedSubtasks(taskID uint64) ([]models.Subtask, error) {
	var subtasks []models.Subtask
	err := r.db.Model(&models.Task{ID: taskID}).Association("Subtasks").Find(&subtasks)
	if err != nil {
		return nil, err
	}
	return subtasks, nil
}
