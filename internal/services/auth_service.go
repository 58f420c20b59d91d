package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joinapp/join-backend/internal/constants"
	apierrors "github.com/joinapp/join-backend/internal/errors"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
	"github.com/joinapp/join-backend/internal/utils"
	"github.com/joinapp/join-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password so callers cannot probe for account existence.
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, credential checks and token issuance.
type AuthService struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	historyRepo repository.LoginHistoryRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, historyRepo repository.LoginHistoryRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		historyRepo: historyRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a new user. Validation failures come back as
// apierrors.FieldErrors; the confirm password is never persisted.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	errs := apierrors.FieldErrors{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		errs.Add("name", apierrors.MsgFieldRequired)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		errs.Add("email", apierrors.MsgFieldRequired)
	} else if !validation.IsEmail(email) {
		errs.Add("email", apierrors.MsgInvalidEmail)
	}

	if input.Password == "" {
		errs.Add("password", apierrors.MsgFieldRequired)
	} else if len(input.Password) < constants.MinPasswordLength {
		errs.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", constants.MinPasswordLength))
	}
	if input.ConfirmPassword == "" {
		errs.Add("confirmPassword", apierrors.MsgFieldRequired)
	} else if input.Password != input.ConfirmPassword {
		errs.Add("confirmPassword", apierrors.MsgPasswordsMustMatch)
	}

	if !errs.Empty() {
		return nil, errs
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		errs.Add("email", apierrors.MsgEmailTaken)
		return nil, errs
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
}

// Login verifies credentials and returns the user's token, reusing the
// existing one when present and minting a fresh key otherwise. Every
// successful call appends exactly one login history row.
func (s *AuthService) Login(input LoginInput) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenRepo.FindByUserID(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		key, keyErr := utils.GenerateTokenKey()
		if keyErr != nil {
			return "", nil, fmt.Errorf("failed to mint token: %w", keyErr)
		}
		token = &models.AuthToken{Key: key, UserID: user.ID}
		if err := s.tokenRepo.Create(token); err != nil {
			return "", nil, fmt.Errorf("failed to store token: %w", err)
		}
	} else if err != nil {
		return "", nil, fmt.Errorf("failed to look up token: %w", err)
	}

	entry := &models.LoginHistory{
		UserID:    user.ID,
		Token:     token.Key,
		UserAgent: input.UserAgent,
	}
	if err := s.historyRepo.Create(entry); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}

	return token.Key, user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
