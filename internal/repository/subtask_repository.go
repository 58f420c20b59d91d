package repository

import (
	"github.com/joinapp/join-backend/internal/models"
	"gorm.io/gorm"
)

// GormSubtaskRepository is a GORM implementation of SubtaskRepository
type GormSubtaskRepository struct {
	db *gorm.DB
}

// NewSubtaskRepository creates a new SubtaskRepository
func NewSubtaskRepository(db *gorm.DB) SubtaskRepository {
	return &GormSubtaskRepository{db: db}
}

// List lists all subtasks
func (r *GormSubtaskRepository) List() ([]models.Subtask, error) {
	var subtasks []models.Subtask
	if err := r.db.Order("id ASC").Find(&subtasks).Error; err != nil {
		return nil, err
	}
	return subtasks, nil
}

// FindByID finds a subtask by ID
func (r *GormSubtaskRepository) FindByID(id uint64) (*models.Subtask, error) {
	var subtask models.Subtask
	if err := r.db.First(&subtask, id).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

// Create creates a new subtask row
func (r *GormSubtaskRepository) Create(subtask *models.Subtask) error {
	return r.db.Create(subtask).Error
}

// Update saves a subtask
func (r *GormSubtaskRepository) Update(subtask *models.Subtask) error {
	return r.db.Save(subtask).Error
}

// Delete removes a subtask row and its task links
func (r *GormSubtaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		subtask := models.Subtask{ID: id}
		if err := tx.Model(&subtask).Association("Tasks").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Subtask{}, id).Error
	})
}
