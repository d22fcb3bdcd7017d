package routes

import (
	cartControllers "github.com/chinnasitaramudu/ShopMart/controllers/cart"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. All require a
// valid token.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cartGroup := api.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(db))
	{
		cartGroup.GET("", cartControllers.GetMyCart(db))
		cartGroup.POST("/items", cartControllers.AddItemToCart(db))
		cartGroup.PUT("/items/:productId", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/items/:productId", cartControllers.RemoveCartItem(db))
		cartGroup.DELETE("/clear", cartControllers.ClearMyCart(db))
	}
}
