// internal/interfaces/http/handlers/intake.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/domain/intake"
)

// IntakeHandler handles goods-receipt endpoints
type IntakeHandler struct {
	intakeService *intake.Service
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(svc *intake.Service) *IntakeHandler {
	return &IntakeHandler{intakeService: svc}
}

// ReceiveManual handles POST /intake/manual
func (h *IntakeHandler) ReceiveManual(c *gin.Context) {
	var req intake.ManualEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.intakeService.SubmitManual(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Goods received successfully",
		"data":    result,
	})
}

// ReceiveBulk handles POST /intake/bulk?mode=batch|individual
func (h *IntakeHandler) ReceiveBulk(c *gin.Context) {
	mode, err := intake.ParseSubmitMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid submit mode",
			"details": err.Error(),
		})
		return
	}

	var req intake.BulkEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.intakeService.SubmitBulk(c.Request.Context(), req, mode)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Goods received successfully"
	if len(result.Failed) > 0 {
		message = "Goods partially received"
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"data":    result,
	})
}

// ReceiveAsset handles POST /intake/asset
func (h *IntakeHandler) ReceiveAsset(c *gin.Context) {
	var req intake.AssetEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	receipt, err := h.intakeService.SubmitAsset(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Asset received successfully",
		"data":    receipt,
	})
}
