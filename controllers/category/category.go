package categoryControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// POST /api/categories (admin)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
			return
		}

		if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name is required."})
			return
		}
		name := strings.TrimSpace(*input.Name)

		var existing models.Category
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Category with this name already exists."})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check existing category."})
			return
		}

		category := models.Category{Name: name}
		if input.Description != nil {
			category.Description = *input.Description
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create category."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Category created successfully.", "data": category})
	}
}

// GET /api/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("created_at DESC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch categories."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
	}
}

// GET /api/categories/:id
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id."})
			return
		}

		var category models.Category
		if err := db.First(&category, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch category."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
	}
}

// PUT /api/categories/:id (admin)
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id."})
			return
		}

		var category models.Category
		if err := db.First(&category, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch category."})
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
			return
		}

		if input.Name != nil {
			category.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			category.Description = *input.Description
		}

		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update category."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully.", "data": category})
	}
}

// DELETE /api/categories/:id (admin)
// Refused while any product still references the category.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id."})
			return
		}

		var category models.Category
		if err := db.First(&category, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch category."})
			return
		}

		var linkedProducts int64
		if err := db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&linkedProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check linked products."})
			return
		}
		if linkedProducts > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete category that is linked to products."})
			return
		}

		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully."})
	}
}
