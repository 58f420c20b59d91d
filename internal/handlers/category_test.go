package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/dto"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type categoryTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupCategoryTestEnv(t *testing.T) categoryTestEnv {
	t.Helper()

	db := newTestDB(t)
	handler := NewCategoryHandler(repository.NewCategoryRepository(db))

	r := gin.New()
	r.GET("/categories/", handler.ListCategories)
	r.POST("/categories/", handler.CreateCategory)
	r.GET("/categories/:pk/", handler.GetCategory)
	r.PUT("/categories/:pk/", handler.UpdateCategory)
	r.DELETE("/categories/:pk/", handler.DeleteCategory)

	return categoryTestEnv{db: db, router: r}
}

func (env categoryTestEnv) request(t *testing.T, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

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

func (env categoryTestEnv) createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Color: "#0038FF"}
	require.NoError(t, env.db.Create(category).Error)
	return category
}

func TestCategoryHandler_Create(t *testing.T) {
	env := setupCategoryTestEnv(t)

	w := env.request(t, http.MethodPost, "/categories/", map[string]string{
		"name":  "Development",
		"color": "#FF7A00",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.CategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Development", response.Name)
	require.Equal(t, "#FF7A00", response.Color)
}

func TestCategoryHandler_CreateDuplicateName(t *testing.T) {
	env := setupCategoryTestEnv(t)
	env.createCategory(t, "Development")

	w := env.request(t, http.MethodPost, "/categories/", map[string]string{
		"name":  "Development",
		"color": "#FF0000",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, []string{"A category with this name already exists."}, response["name"])

	// The original keeps its color
	var stored models.Category
	require.NoError(t, env.db.Where("name = ?", "Development").First(&stored).Error)
	require.Equal(t, "#0038FF", stored.Color)
}

// Updating a category under its own name must not trip the uniqueness
// check against itself.
func TestCategoryHandler_UpdateKeepsOwnName(t *testing.T) {
	env := setupCategoryTestEnv(t)
	category := env.createCategory(t, "Design")

	w := env.request(t, http.MethodPut, fmt.Sprintf("/categories/%d/", category.ID), map[string]string{
		"name":  "Design",
		"color": "#FC71FF",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.CategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "#FC71FF", response.Color)
}

func TestCategoryHandler_UpdateToTakenName(t *testing.T) {
	env := setupCategoryTestEnv(t)
	env.createCategory(t, "Design")
	category := env.createCategory(t, "Marketing")

	w := env.request(t, http.MethodPut, fmt.Sprintf("/categories/%d/", category.ID), map[string]string{
		"name":  "Design",
		"color": "#FC71FF",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_NotFound(t *testing.T) {
	env := setupCategoryTestEnv(t)

	w := env.request(t, http.MethodGet, "/categories/9999/", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Empty(t, w.Body.Bytes())
}

// Deleting a category clears the reference on tasks that used it; the
// tasks keep their rows.
func TestCategoryHandler_DeleteClearsTaskReference(t *testing.T) {
	env := setupCategoryTestEnv(t)
	category := env.createCategory(t, "Design")

	task := &models.Task{
		Title:      "Task",
		Priority:   models.TaskPriorityLow,
		Status:     models.TaskStatusTodo,
		CategoryID: &category.ID,
	}
	require.NoError(t, env.db.Create(task).Error)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/categories/%d/", category.ID), nil)

	require.Equal(t, http.StatusNoContent, w.Code)

	err := env.db.First(&models.Category{}, category.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var reloaded models.Task
	require.NoError(t, env.db.First(&reloaded, task.ID).Error)
	require.Nil(t, reloaded.CategoryID)
}
