package routes

import (
	userControllers "github.com/chinnasitaramudu/ShopMart/controllers/user"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/api/users/*" endpoints. Admin only.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	userGroup := api.Group("/users")
	userGroup.Use(middleware.ValidateToken(db), middleware.RequireRoles(models.RoleAdmin))
	{
		userGroup.GET("", userControllers.GetUsers(db))
		userGroup.GET("/:id", userControllers.GetUserByID(db))
		userGroup.PUT("/:id", userControllers.UpdateUserByID(db))
		userGroup.DELETE("/:id", userControllers.DeleteUserByID(db))
	}
}
