package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PUT /api/products/:id (admin)
// Partial update; absent fields are left untouched. Legacy aliases are
// honored the same way as on create.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id."})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve product."})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
			return
		}

		if input.Category != nil {
			var category models.Category
			if err := db.First(&category, *input.Category).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category not found."})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to validate category."})
				return
			}
			product.CategoryID = category.ID
			product.Category = nil
		}

		if input.Title != nil {
			product.Title = *input.Title
		}
		if input.Name != nil {
			product.Title = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if *input.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price must not be negative."})
				return
			}
			product.Price = *input.Price
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "stock must not be negative."})
				return
			}
			product.Stock = *input.Stock
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if len(input.Images) > 0 && input.Images[0] != "" {
			product.Image = input.Images[0]
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully.", "data": product})
	}
}
