package routes

import (
	adminControllers "github.com/chinnasitaramudu/ShopMart/controllers/admin"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(db), middleware.RequireRoles(models.RoleAdmin))
	{
		adminGroup.GET("/dashboard", adminControllers.GetDashboardAnalytics(db))
	}
}
