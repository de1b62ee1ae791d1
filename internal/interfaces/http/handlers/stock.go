// internal/interfaces/http/handlers/stock.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// StockHandler handles stock listing
type StockHandler struct {
	store       inventory.StockStore
	callTimeout time.Duration
}

// NewStockHandler creates a new stock handler
func NewStockHandler(store inventory.StockStore, callTimeout time.Duration) *StockHandler {
	return &StockHandler{
		store:       store,
		callTimeout: callTimeout,
	}
}

// ListStock handles GET /stock
func (h *StockHandler) ListStock(c *gin.Context) {
	category := inventory.Category(c.Query("category"))
	if category != "" && !category.Valid() && category != inventory.CategoryUnknown {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.callTimeout)
	defer cancel()

	items, err := h.store.ListStock(ctx, category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock retrieved successfully",
		"data":    items,
	})
}
