package repository

import "github.com/joinapp/join-backend/internal/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by (lowercased) email
	FindByEmail(email string) (*models.User, error)
}

// TokenRepository defines the interface for auth token data access
type TokenRepository interface {
	// Create persists a freshly minted token
	Create(token *models.AuthToken) error

	// FindByUserID finds the token held by a user
	FindByUserID(userID uint64) (*models.AuthToken, error)

	// FindByKey finds a token by its key with the owning user preloaded
	FindByKey(key string) (*models.AuthToken, error)
}

// LoginHistoryRepository defines the interface for the login audit log
type LoginHistoryRepository interface {
	// Create appends an audit row
	Create(entry *models.LoginHistory) error

	// ListByUserID lists audit rows for a user, oldest first
	ListByUserID(userID uint64) ([]models.LoginHistory, error)
}

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	// ListByUserID lists the contacts owned by a user
	ListByUserID(userID uint64) ([]models.Contact, error)

	// FindByID finds a contact by ID with the owner preloaded
	FindByID(id uint64) (*models.Contact, error)

	// FindByIDs finds all contacts whose IDs appear in ids
	FindByIDs(ids []uint64) ([]models.Contact, error)

	// Create creates a new contact
	Create(contact *models.Contact) error

	// Update saves a contact
	Update(contact *models.Contact) error

	// Delete removes a contact and its task assignment links
	Delete(id uint64) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// List lists all categories
	List() ([]models.Category, error)

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// FindByName finds a category by its unique name
	FindByName(name string) (*models.Category, error)

	// Create creates a new category
	Create(category *models.Category) error

	// Update saves a category
	Update(category *models.Category) error

	// Delete removes a category, clearing the reference on any task
	Delete(id uint64) error
}

// SubtaskRepository defines the interface for subtask data access
type SubtaskRepository interface {
	// List lists all subtasks
	List() ([]models.Subtask, error)

	// FindByID finds a subtask by ID
	FindByID(id uint64) (*models.Subtask, error)

	// Create creates a new subtask row
	Create(subtask *models.Subtask) error

	// Update saves a subtask
	Update(subtask *models.Subtask) error

	// Delete removes a subtask row and its task links
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// ListByCreator lists tasks created by a user, fully populated
	ListByCreator(creatorID uint64) ([]models.Task, error)

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Create persists a task row without touching associations
	Create(task *models.Task) error

	// Save persists scalar changes without touching associations
	Save(task *models.Task) error

	// Delete removes a task row and detaches (not deletes) its
	// assigned contacts and subtasks
	Delete(id uint64) error

	// ReplaceAssignees swaps the task's assignee set wholesale
	ReplaceAssignees(task *models.Task, contacts []models.Contact) error

	// LinkSubtask links an existing subtask row to the task
	LinkSubtask(task *models.Task, subtask *models.Subtask) error

	// LinkedSubtasks lists the subtasks currently linked to a task
	LinkedSubtasks(taskID uint64) ([]models.Subtask, error)
}

// TaskPreloads are the associations needed to serialize a task.
var TaskPreloads = []string{"Category", "Creator", "AssignedTo", "Subtasks"}
