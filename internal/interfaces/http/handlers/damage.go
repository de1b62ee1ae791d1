// internal/interfaces/http/handlers/damage.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/domain/damage"
)

// DamageHandler handles damage/consumption records
type DamageHandler struct {
	damageService *damage.Service
}

// NewDamageHandler creates a new damage handler
func NewDamageHandler(svc *damage.Service) *DamageHandler {
	return &DamageHandler{damageService: svc}
}

// CreateDamageRecord handles POST /damage-records
func (h *DamageHandler) CreateDamageRecord(c *gin.Context) {
	var req damage.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.damageService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Damage record created successfully",
		"data":    record,
	})
}
