// internal/interfaces/http/handlers/reconcile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
)

// ReconcileHandler exposes the stateless consumption engine
type ReconcileHandler struct {
	engine *reconcile.Engine
}

// NewReconcileHandler creates a new reconcile handler
func NewReconcileHandler(engine *reconcile.Engine) *ReconcileHandler {
	return &ReconcileHandler{engine: engine}
}

// ConsumeRequest carries the caller's transaction and the line to consume
type ConsumeRequest struct {
	Transaction reconcile.Transaction `json:"transaction"`
	Item        inventory.CachedItem  `json:"item"`
}

// Consume handles POST /reconcile/consume. Store failures never fail the
// request; they are reported in the outcome.
func (h *ReconcileHandler) Consume(c *gin.Context) {
	var req ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, outcome := h.engine.Consume(c.Request.Context(), req.Transaction, req.Item)
	respondConsumed(c, &txn, &outcome)
}

func respondConsumed(c *gin.Context, txn *reconcile.Transaction, outcome *reconcile.Outcome) {
	body := gin.H{
		"message": "Item removed",
		"data": gin.H{
			"transaction": txn,
			"outcome":     outcome,
		},
	}
	if outcome.Warning != nil {
		body["warning"] = outcome.Warning
	}
	c.JSON(http.StatusOK, body)
}
