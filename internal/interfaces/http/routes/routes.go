// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/repairshop-backend/internal/interfaces/http/handlers"
)

// Handlers groups every API handler mounted under /api/v1
type Handlers struct {
	Stock     *handlers.StockHandler
	Intake    *handlers.IntakeHandler
	Reconcile *handlers.ReconcileHandler
	Bill      *handlers.BillHandler
	Damage    *handlers.DamageHandler
	Catalog   *handlers.CatalogHandler
}

// SetupStockRoutes sets up stock listing routes
func SetupStockRoutes(rg *gin.RouterGroup, h *handlers.StockHandler) {
	rg.GET("/stock", h.ListStock)
}

// SetupIntakeRoutes sets up goods-receipt routes
func SetupIntakeRoutes(rg *gin.RouterGroup, h *handlers.IntakeHandler) {
	intake := rg.Group("/intake")
	{
		intake.POST("/manual", h.ReceiveManual)
		intake.POST("/bulk", h.ReceiveBulk)
		intake.POST("/asset", h.ReceiveAsset)
	}
}

// SetupReconcileRoutes sets up the stateless consumption route
func SetupReconcileRoutes(rg *gin.RouterGroup, h *handlers.ReconcileHandler) {
	rg.POST("/reconcile/consume", h.Consume)
}

// SetupBillRoutes sets up bill session routes
func SetupBillRoutes(rg *gin.RouterGroup, h *handlers.BillHandler) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.OpenBill)
		bills.GET("/:id", h.GetBill)
		bills.DELETE("/:id", h.CloseBill)
		bills.POST("/:id/items", h.AddItem)
		bills.POST("/:id/consume", h.ConsumeItem)
	}
}

// SetupDamageRoutes sets up damage record routes
func SetupDamageRoutes(rg *gin.RouterGroup, h *handlers.DamageHandler) {
	rg.POST("/damage-records", h.CreateDamageRecord)
}

// SetupCatalogRoutes sets up catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, h *handlers.CatalogHandler) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/:category", h.ListEntries)
		catalog.GET("/:category/datasets", h.ListDatasets)
		catalog.POST("/datasets/:datasetId/entries", h.AddEntry)
		catalog.DELETE("/datasets/:datasetId/entries/:key", h.RemoveEntry)
	}
}

// SetupRoutes mounts every route group. Extra middleware, such as bearer
// verification, applies to all of them.
func SetupRoutes(rg *gin.RouterGroup, h Handlers, mw ...gin.HandlerFunc) {
	handlers.RegisterValidation()

	api := rg.Group("", mw...)

	SetupStockRoutes(api, h.Stock)
	SetupIntakeRoutes(api, h.Intake)
	SetupReconcileRoutes(api, h.Reconcile)
	SetupBillRoutes(api, h.Bill)
	SetupDamageRoutes(api, h.Damage)
	SetupCatalogRoutes(api, h.Catalog)
}
