package routes

import (
	categoryControllers "github.com/chinnasitaramudu/ShopMart/controllers/category"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCategoryRoutes registers all "/api/categories/*" endpoints.
// Browsing is public; mutations are admin only.
func SetupCategoryRoutes(api *gin.RouterGroup, db *gorm.DB) {
	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", categoryControllers.GetCategories(db))
		categoryGroup.GET("/:id", categoryControllers.GetCategoryByID(db))

		protect := middleware.ValidateToken(db)
		adminOnly := middleware.RequireRoles(models.RoleAdmin)
		categoryGroup.POST("", protect, adminOnly, categoryControllers.CreateCategory(db))
		categoryGroup.PUT("/:id", protect, adminOnly, categoryControllers.UpdateCategory(db))
		categoryGroup.DELETE("/:id", protect, adminOnly, categoryControllers.DeleteCategory(db))
	}
}
