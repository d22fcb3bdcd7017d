package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every "/api/*"
// route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ShopSmart API is running"})
	})

	SetupAuthRoutes(api, db)
	SetupUserRoutes(api, db)
	SetupCategoryRoutes(api, db)
	SetupProductRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db)
	SetupAdminRoutes(api, db)
}
