package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id."})
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve product."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}
