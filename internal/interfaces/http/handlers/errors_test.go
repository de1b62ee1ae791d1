package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{inventory.NewValidationError(inventory.CategorySpare, "description"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", inventory.ErrInvalidQuantity), http.StatusBadRequest},
		{inventory.ErrEmptyParts, http.StatusBadRequest},
		{inventory.ErrEmptyItems, http.StatusBadRequest},
		{inventory.ErrDuplicateKey, http.StatusConflict},
		{inventory.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("lock bill:b-1: %w", inventory.ErrLockBusy), http.StatusLocked},
		{errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		code, _ := statusFor(tt.err)
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
