package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/dto"
	apierrors "github.com/joinapp/join-backend/internal/errors"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
	"gorm.io/gorm"
)

// CategoryHandler serves the category endpoints. Categories are
// global; no ownership scoping applies.
type CategoryHandler struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryRepo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{
		categoryRepo: categoryRepo,
	}
}

// ListCategories returns all categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}

// CreateCategory validates and inserts a category. The name is unique
// system-wide; a duplicate fails validation and leaves the original
// untouched.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var payload dto.CategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	errs := h.validateCategoryPayload(payload, 0)
	if !errs.Empty() {
		apierrors.ValidationFailed(c, errs)
		return
	}

	category := models.Category{
		Name:  *payload.Name,
		Color: *payload.Color,
	}

	if err := h.categoryRepo.Create(&category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(category))
}

// GetCategory returns a category by id.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, ok := h.resolveCategory(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// UpdateCategory applies full-replacement semantics: name and color
// are both required on every update.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	category, ok := h.resolveCategory(c)
	if !ok {
		return
	}

	var payload dto.CategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	errs := h.validateCategoryPayload(payload, category.ID)
	if !errs.Empty() {
		apierrors.ValidationFailed(c, errs)
		return
	}

	category.Name = *payload.Name
	category.Color = *payload.Color

	if err := h.categoryRepo.Update(category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// DeleteCategory removes a category; tasks referencing it keep their
// rows with the category cleared.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, ok := h.resolveCategory(c)
	if !ok {
		return
	}

	if err := h.categoryRepo.Delete(category.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) resolveCategory(c *gin.Context) (*models.Category, bool) {
	id, err := strconv.ParseUint(c.Param("pk"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return nil, false
	}

	category, err := h.categoryRepo.FindByID(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return nil, false
	}

	return category, true
}

// validateCategoryPayload checks required fields and name uniqueness.
// selfID excludes the category under update from the uniqueness check.
func (h *CategoryHandler) validateCategoryPayload(payload dto.CategoryPayload, selfID uint64) apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}

	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		errs.Add("name", apierrors.MsgFieldRequired)
	} else {
		existing, err := h.categoryRepo.FindByName(*payload.Name)
		if err == nil && existing.ID != selfID {
			errs.Add("name", apierrors.MsgCategoryNameTaken)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			errs.Add("name", "Unable to verify name uniqueness.")
		}
	}

	if payload.Color == nil || strings.TrimSpace(*payload.Color) == "" {
		errs.Add("color", apierrors.MsgFieldRequired)
	}

	return errs
}
