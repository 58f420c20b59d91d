package dto

import "github.com/joinapp/join-backend/internal/models"

// ContactDTO represents a contact in API responses. The owner is
// embedded as minimal user details, or null for orphaned rows.
type ContactDTO struct {
	ID    uint64   `json:"id"`
	User  *UserDTO `json:"user"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Color string   `json:"color"`
}

// ContactPayload is the request body for contact create and update.
type ContactPayload struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Color *string `json:"color"`
}

// ToContactDTO converts a Contact model to ContactDTO
func ToContactDTO(contact models.Contact) ContactDTO {
	dto := ContactDTO{
		ID:    contact.ID,
		Name:  contact.Name,
		Email: contact.Email,
		Phone: contact.Phone,
		Color: contact.Color,
	}

	if contact.User != nil {
		user := ToUserDTO(*contact.User)
		dto.User = &user
	}

	return dto
}

// ToContactDTOs converts a slice of contacts
func ToContactDTOs(contacts []models.Contact) []ContactDTO {
	dtos := make([]ContactDTO, len(contacts))
	for i, contact := range contacts {
		dtos[i] = ToContactDTO(contact)
	}
	return dtos
}
