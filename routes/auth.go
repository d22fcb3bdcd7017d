package routes

import (
	authControllers "github.com/chinnasitaramudu/ShopMart/controllers/auth"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(db))
		authGroup.POST("/login", authControllers.Login(db))

		authGroup.GET("/me", middleware.ValidateToken(db), authControllers.GetMyProfile())
		authGroup.PUT("/me", middleware.ValidateToken(db), authControllers.UpdateMyProfile(db))
	}
}
