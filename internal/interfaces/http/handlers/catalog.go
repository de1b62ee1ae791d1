// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/domain/catalog"
	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// CatalogHandler handles catalog pick-list endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: svc}
}

func categoryParam(c *gin.Context) (inventory.Category, bool) {
	category := inventory.Category(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid category",
		})
		return "", false
	}
	return category, true
}

// ListEntries handles GET /catalog/:category. A store failure still
// answers 200 with an empty list and a warning.
func (h *CatalogHandler) ListEntries(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	entries, err := h.catalogService.ListEntries(c.Request.Context(), category)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusOK, gin.H{
			"message": "Catalog unavailable",
			"data":    entries,
			"warning": "Failed to load catalog",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog retrieved successfully",
		"data":    entries,
	})
}

// ListDatasets handles GET /catalog/:category/datasets
func (h *CatalogHandler) ListDatasets(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	datasets, err := h.catalogService.ListDatasets(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog datasets retrieved successfully",
		"data":    datasets,
	})
}

// AddEntry handles POST /catalog/datasets/:datasetId/entries
func (h *CatalogHandler) AddEntry(c *gin.Context) {
	var req inventory.CatalogEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.catalogService.AddEntry(c.Request.Context(), c.Param("datasetId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Catalog entry added",
		"data":    entries,
	})
}

// RemoveEntry handles DELETE /catalog/datasets/:datasetId/entries/:key
func (h *CatalogHandler) RemoveEntry(c *gin.Context) {
	entries, err := h.catalogService.RemoveEntry(c.Request.Context(), c.Param("datasetId"), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog entry removed",
		"data":    entries,
	})
}
