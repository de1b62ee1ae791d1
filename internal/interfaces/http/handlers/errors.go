// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// statusFor maps the domain error taxonomy onto HTTP statuses
func statusFor(err error) (int, string) {
	switch {
	case inventory.IsValidationError(err),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrEmptySerialList),
		errors.Is(err, inventory.ErrEmptyParts),
		errors.Is(err, inventory.ErrMissingTechnician),
		errors.Is(err, inventory.ErrEmptyItems):
		return http.StatusBadRequest, "Invalid request data"
	case errors.Is(err, inventory.ErrDuplicateKey):
		return http.StatusConflict, "Key already exists"
	case errors.Is(err, inventory.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, inventory.ErrLockBusy):
		return http.StatusLocked, "Resource is being edited, try again"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Inventory store timed out"
	default:
		return http.StatusBadGateway, "Inventory store unavailable"
	}
}

// respondError writes the error response and records err for the access log
func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	_ = c.Error(err)

	body := gin.H{
		"error":   message,
		"details": err.Error(),
	}

	var ve *inventory.ValidationError
	if errors.As(err, &ve) {
		body["fields"] = ve.Fields
	}

	c.JSON(status, body)
}

// respondBindError reports a malformed request body
func respondBindError(c *gin.Context, err error) {
	body := gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	}

	if fields := validationFields(err); len(fields) > 0 {
		body["fields"] = fields
	}

	c.JSON(http.StatusBadRequest, body)
}

// validationFields maps each failing field to the tag it failed
func validationFields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		fields[ve.Field()] = ve.Tag()
	}
	return fields
}
