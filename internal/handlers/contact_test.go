package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/constants"
	"github.com/joinapp/join-backend/internal/dto"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type contactTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	userID uint64
}

func setupContactTestEnv(t *testing.T) *contactTestEnv {
	t.Helper()

	db := newTestDB(t)
	handler := NewContactHandler(repository.NewContactRepository(db))

	env := &contactTestEnv{db: db}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if env.userID != 0 {
			c.Set(constants.ContextKeyUserID, env.userID)
		}
	})
	r.GET("/addcontact/", handler.ListContacts)
	r.POST("/addcontact/", handler.CreateContact)
	r.GET("/contact/:id/", handler.GetContact)
	r.PUT("/contact/:id/", handler.UpdateContact)
	r.DELETE("/contact/:id/", handler.DeleteContact)
	env.router = r

	return env
}

func (env *contactTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Owner", Email: email, PasswordHash: "hashed", IsActive: true}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *contactTestEnv) createContact(t *testing.T, ownerID uint64, name string) *models.Contact {
	t.Helper()
	contact := &models.Contact{
		UserID: &ownerID,
		Name:   name,
		Email:  name + "@example.com",
		Phone:  "123456789",
		Color:  "#29ABE2",
	}
	require.NoError(t, env.db.Create(contact).Error)
	return contact
}

func (env *contactTestEnv) request(t *testing.T, method, url string, payload interface{}, userID uint64) *httptest.ResponseRecorder {
	t.Helper()
	env.userID = userID

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestContactHandler_ListScopedToOwner(t *testing.T) {
	env := setupContactTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	env.createContact(t, owner.ID, "mine")
	env.createContact(t, other.ID, "theirs")

	w := env.request(t, http.MethodGet, "/addcontact/", nil, owner.ID)

	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.ContactDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	require.Equal(t, "mine", response[0].Name)
}

func TestContactHandler_CreateOwnerFromSession(t *testing.T) {
	env := setupContactTestEnv(t)
	owner := env.createUser(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/addcontact/", map[string]string{
		"name":  "Anna Schmidt",
		"email": "anna@example.com",
		"phone": "017612345678",
		"color": "#6E52FF",
	}, owner.ID)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ContactDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Anna Schmidt", response.Name)
	require.NotNil(t, response.User)
	require.Equal(t, owner.ID, response.User.ID)
}

func TestContactHandler_CreateMissingFields(t *testing.T) {
	env := setupContactTestEnv(t)
	owner := env.createUser(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/addcontact/", map[string]string{
		"name": "No Contact Details",
	}, owner.ID)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, []string{"This field is required."}, response["email"])
	require.Equal(t, []string{"This field is required."}, response["phone"])
}

func TestContactHandler_CreateInvalidEmail(t *testing.T) {
	env := setupContactTestEnv(t)
	owner := env.createUser(t, "owner@example.com")

	w := env.request(t, http.MethodPost, "/addcontact/", map[string]string{
		"name":  "Anna",
		"email": "not-an-email",
		"phone": "123",
	}, owner.ID)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, []string{"Enter a valid email address."}, response["email"])
}

// Omitting the color on an update resets it to the default instead of
// keeping the stored value. Every update is a full replacement.
func TestContactHandler_UpdateResetsOmittedColor(t *testing.T) {
	env := setupContactTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	contact := env.createContact(t, owner.ID, "anna")

	w := env.request(t, http.MethodPut, fmt.Sprintf("/contact/%d/", contact.ID), map[string]string{
		"name":  "Anna Renamed",
		"email": "anna@example.com",
		"phone": "987654321",
	}, owner.ID)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ContactDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Anna Renamed", response.Name)
	require.Equal(t, constants.DefaultContactColor, response.Color)
}

func TestContactHandler_NotFound(t *testing.T) {
	env := setupContactTestEnv(t)
	owner := env.createUser(t, "owner@example.com")

	for _, url := range []string{"/contact/9999/", "/contact/not-a-number/"} {
		w := env.request(t, http.MethodGet, url, nil, owner.ID)

		require.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, "Contact not found", response["error"])
	}
}

// Deleting a contact drops it from every task's assignee set; the
// tasks themselves survive.
func TestContactHandler_DeleteDetachesFromTasks(t *testing.T) {
	env := setupContactTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	contact := env.createContact(t, owner.ID, "anna")

	ownerID := owner.ID
	task := &models.Task{
		Title:     "Task",
		Priority:  models.TaskPriorityLow,
		Status:    models.TaskStatusTodo,
		CreatorID: &ownerID,
	}
	require.NoError(t, env.db.Create(task).Error)
	require.NoError(t, env.db.Model(task).Association("AssignedTo").Append(contact))

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/contact/%d/", contact.ID), nil, owner.ID)

	require.Equal(t, http.StatusNoContent, w.Code)

	err := env.db.First(&models.Contact{}, contact.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var reloaded models.Task
	require.NoError(t, env.db.Preload("AssignedTo").First(&reloaded, task.ID).Error)
	require.Empty(t, reloaded.AssignedTo)
}
