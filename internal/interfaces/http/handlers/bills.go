// internal/interfaces/http/handlers/bills.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/domain/bill"
	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
)

// BillHandler handles server-held bill and damage-list sessions
type BillHandler struct {
	billService *bill.Service
}

// NewBillHandler creates a new bill handler
func NewBillHandler(svc *bill.Service) *BillHandler {
	return &BillHandler{billService: svc}
}

// OpenBillRequest represents session creation data
type OpenBillRequest struct {
	Kind  reconcile.Kind         `json:"kind"`
	Items []inventory.CachedItem `json:"items"`
}

// OpenBill handles POST /bills
func (h *BillHandler) OpenBill(c *gin.Context) {
	var req OpenBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.billService.Open(c.Request.Context(), req.Kind, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bill opened",
		"data":    txn,
	})
}

// GetBill handles GET /bills/:id
func (h *BillHandler) GetBill(c *gin.Context) {
	txn, err := h.billService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bill retrieved successfully",
		"data":    txn,
	})
}

// AddItem handles POST /bills/:id/items
func (h *BillHandler) AddItem(c *gin.Context) {
	var item inventory.CachedItem
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.billService.AddItem(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added",
		"data":    txn,
	})
}

// ConsumeItem handles POST /bills/:id/consume
func (h *BillHandler) ConsumeItem(c *gin.Context) {
	var item inventory.CachedItem
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBindError(c, err)
		return
	}

	txn, outcome, err := h.billService.Consume(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		respondError(c, err)
		return
	}

	respondConsumed(c, txn, outcome)
}

// CloseBill handles DELETE /bills/:id
func (h *BillHandler) CloseBill(c *gin.Context) {
	if err := h.billService.Close(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bill closed",
	})
}
