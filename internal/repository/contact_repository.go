package repository

import (
	"github.com/joinapp/join-backend/internal/models"
	"gorm.io/gorm"
)

// GormContactRepository is a GORM implementation of ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

// ListByUserID lists the contacts owned by a user
func (r *GormContactRepository) ListByUserID(userID uint64) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.Preload("User").Where("user_id = ?", userID).Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByID finds a contact by ID with the owner preloaded
func (r *GormContactRepository) FindByID(id uint64) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.Preload("User").First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByIDs finds all contacts whose IDs appear in ids
func (r *GormContactRepository) FindByIDs(ids []uint64) ([]models.Contact, error) {
	if len(ids) == 0 {
		return []models.Contact{}, nil
	}
	var contacts []models.Contact
	if err := r.db.Where("id IN ?", ids).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Create creates a new contact
func (r *GormContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// Update saves a contact
func (r *GormContactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

// Delete removes a contact and its task assignment links
func (r *GormContactRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		contact := models.Contact{ID: id}
		if err := tx.Model(&contact).Association("Tasks").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Contact{}, id).Error
	})
}
