package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/constants"
	"github.com/joinapp/join-backend/internal/dto"
	apierrors "github.com/joinapp/join-backend/internal/errors"
	"github.com/joinapp/join-backend/internal/middleware"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
	"github.com/joinapp/join-backend/internal/validation"
)

// ContactHandler serves the contact endpoints.
type ContactHandler struct {
	contactRepo repository.ContactRepository
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactRepo repository.ContactRepository) *ContactHandler {
	return &ContactHandler{
		contactRepo: contactRepo,
	}
}

// ListContacts returns the contacts owned by the requester.
func (h *ContactHandler) ListContacts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	contacts, err := h.contactRepo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTOs(contacts))
}

// CreateContact creates a contact owned by the requester. The payload
// carries no owner field; ownership always comes from the session.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var payload dto.ContactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	errs := validateContactPayload(payload)
	if !errs.Empty() {
		apierrors.ValidationFailed(c, errs)
		return
	}

	contact := models.Contact{
		UserID: &userID,
		Name:   *payload.Name,
		Email:  *payload.Email,
		Phone:  *payload.Phone,
		Color:  contactColor(payload),
	}

	if err := h.contactRepo.Create(&contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}

	created, err := h.contactRepo.FindByID(contact.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload contact"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactDTO(*created))
}

// GetContact returns any contact by id, regardless of owner.
func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, ok := h.resolveContact(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*contact))
}

// UpdateContact applies full-replacement semantics: name, email and
// phone are required every time, and an omitted color falls back to
// the default rather than keeping the stored value.
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	contact, ok := h.resolveContact(c)
	if !ok {
		return
	}

	var payload dto.ContactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	errs := validateContactPayload(payload)
	if !errs.Empty() {
		apierrors.ValidationFailed(c, errs)
		return
	}

	contact.Name = *payload.Name
	contact.Email = *payload.Email
	contact.Phone = *payload.Phone
	contact.Color = contactColor(payload)

	if err := h.contactRepo.Update(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContactDTO(*contact))
}

// DeleteContact removes a contact and drops it from any task's
// assignee set.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	contact, ok := h.resolveContact(c)
	if !ok {
		return
	}

	if err := h.contactRepo.Delete(contact.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContactHandler) resolveContact(c *gin.Context) (*models.Contact, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return nil, false
	}

	contact, err := h.contactRepo.FindByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return nil, false
	}

	return contact, true
}

func validateContactPayload(payload dto.ContactPayload) apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}

	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		errs.Add("name", apierrors.MsgFieldRequired)
	}
	if payload.Email == nil || strings.TrimSpace(*payload.Email) == "" {
		errs.Add("email", apierrors.MsgFieldRequired)
	} else if !validation.IsEmail(*payload.Email) {
		errs.Add("email", apierrors.MsgInvalidEmail)
	}
	if payload.Phone == nil || strings.TrimSpace(*payload.Phone) == "" {
		errs.Add("phone", apierrors.MsgFieldRequired)
	}

	return errs
}

func contactColor(payload dto.ContactPayload) string {
	if payload.Color == nil || *payload.Color == "" {
		return constants.DefaultContactColor
	}
	return *payload.Color
}
