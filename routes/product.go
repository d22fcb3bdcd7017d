package routes

import (
	productcontroller "github.com/chinnasitaramudu/ShopMart/controllers/product"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/api/products/*" endpoints.
// Browsing is public; catalog CRUD and export are admin only.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	productGroup := api.Group("/products")
	{
		productGroup.GET("", productcontroller.GetProducts(db))

		protect := middleware.ValidateToken(db)
		adminOnly := middleware.RequireRoles(models.RoleAdmin)
		productGroup.GET("/export-excel", protect, adminOnly, productcontroller.ExportProductsToExcel(db))

		productGroup.GET("/:id", productcontroller.GetProductByID(db))
		productGroup.POST("", protect, adminOnly, productcontroller.CreateProduct(db))
		productGroup.PUT("/:id", protect, adminOnly, productcontroller.UpdateProduct(db))
		productGroup.DELETE("/:id", protect, adminOnly, productcontroller.DeleteProduct(db))
	}
}
