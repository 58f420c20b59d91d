package errors

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// Canonical field-level validation messages.
const (
	MsgFieldRequired      = "This field is required."
	MsgInvalidEmail       = "Enter a valid email address."
	MsgPasswordsMustMatch = "Passwords must match."
	MsgEmailTaken         = "A user with this email already exists."
	MsgCategoryNameTaken  = "A category with this name already exists."
)

// FieldErrors maps a field name to its validation messages and is
// rendered verbatim as the 400 response body.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Error implements the error interface so services can return field
// errors through a plain error value.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// ValidationFailed sends a 400 with the field-error mapping as body.
func ValidationFailed(c *gin.Context, errs FieldErrors) {
	c.JSON(http.StatusBadRequest, errs)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication credentials were not provided."
	}
	c.JSON(http.StatusUnauthorized, gin.H{"detail": message})
}
