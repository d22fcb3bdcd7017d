package routes

import (
	orderControllers "github.com/chinnasitaramudu/ShopMart/controllers/order"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orderGroup := api.Group("/orders")
	orderGroup.Use(middleware.ValidateToken(db))
	{
		// User-facing
		orderGroup.POST("", orderControllers.PlaceOrderHandler(db))
		orderGroup.GET("/my-orders", orderControllers.GetMyOrdersHandler(db))
		orderGroup.GET("/:id", orderControllers.GetOrderByIDHandler(db))
		orderGroup.PUT("/:id/pay", orderControllers.UpdateOrderToPaidHandler(db))

		// Admin
		adminOnly := middleware.RequireRoles(models.RoleAdmin)
		orderGroup.GET("", adminOnly, orderControllers.GetAllOrdersHandler(db))
		orderGroup.PUT("/:id/status", adminOnly, orderControllers.UpdateOrderStatusHandler(db))
	}
}
