package repository

import (
	"github.com/joinapp/join-backend/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create persists a freshly minted token
func (r *GormTokenRepository) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

// FindByUserID finds the token held by a user
func (r *GormTokenRepository) FindByUserID(userID uint64) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByKey finds a token by its key with the owning user preloaded
func (r *GormTokenRepository) FindByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.Preload("User").Where("key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// GormLoginHistoryRepository is a GORM implementation of LoginHistoryRepository
type GormLoginHistoryRepository struct {
	db *gorm.DB
}

// NewLoginHistoryRepository creates a new LoginHistoryRepository
func NewLoginHistoryRepository(db *gorm.DB) LoginHistoryRepository {
	return &GormLoginHistoryRepository{db: db}
}

// Create appends an audit row
func (r *GormLoginHistoryRepository) Create(entry *models.LoginHistory) error {
	return r.db.Create(entry).Error
}

// ListByUserID lists audit rows for a user, oldest first
func (r *GormLoginHistoryRepository) ListByUserID(userID uint64) ([]models.LoginHistory, error) {
	var entries []models.LoginHistory
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
