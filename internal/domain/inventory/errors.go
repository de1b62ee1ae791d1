// internal/domain/inventory/errors.go
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQuantity is returned for qty <= 0 or a negative price
	ErrInvalidQuantity = errors.New("invalid quantity or price")
	// ErrEmptySerialList is returned by bulk intake without serials
	ErrEmptySerialList = errors.New("at least one serial number is required")
	// ErrEmptyParts is returned by asset intake without part lines
	ErrEmptyParts = errors.New("an asset must be received with at least one part")
	// ErrDuplicateKey is returned when a catalog key already exists in the dataset
	ErrDuplicateKey = errors.New("catalog key already exists")
	// ErrNotFound is returned when a catalog key or dataset does not exist
	ErrNotFound = errors.New("not found")
	// ErrMissingTechnician is returned by damage records without a technician
	ErrMissingTechnician = errors.New("technician is required")
	// ErrEmptyItems is returned by damage records without items
	ErrEmptyItems = errors.New("at least one item is required")
	// ErrStockUnavailable is returned by stores when a decrement is rejected,
	// either because the record does not exist or because it would go negative
	ErrStockUnavailable = errors.New("stock record missing or insufficient quantity")
	// ErrLockBusy is returned by lockers when the lock is still held after all retries
	ErrLockBusy = errors.New("resource is being edited, try again")
)

// ValidationError names the missing or invalid required attributes
type ValidationError struct {
	Category Category
	Fields   []string
}

func (e *ValidationError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("validation failed: missing %s", strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("validation failed for %s: missing %s", e.Category, strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given fields
func NewValidationError(category Category, fields ...string) *ValidationError {
	return &ValidationError{Category: category, Fields: fields}
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ReconciliationWarning is the non-fatal notice produced when both the
// decrement and the recreate failed. It is reported, never returned.
type ReconciliationWarning struct {
	StockID      string
	DecrementErr error
	RecreateErr  error
}

func (w *ReconciliationWarning) Error() string {
	return "stock not restored on server; item still removed from bill"
}

// Detail includes the underlying failures for logs
func (w *ReconciliationWarning) Detail() string {
	return fmt.Sprintf("stock %s: decrement: %v; recreate: %v", w.StockID, w.DecrementErr, w.RecreateErr)
}

// MarshalJSON renders the user-facing message and the stock id only
func (w *ReconciliationWarning) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Message string `json:"message"`
		StockID string `json:"stockId,omitempty"`
	}{w.Error(), w.StockID})
}
