package productcontroller

import (
	"errors"
	"net/http"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProductInput accepts both the current field names and the legacy
// aliases (name for title, images array for image).
type ProductInput struct {
	Title       *string  `json:"title"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *uint    `json:"category"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Image       *string  `json:"image"`
	Images      []string `json:"images"`
}

func (in ProductInput) title() string {
	if in.Title != nil && *in.Title != "" {
		return *in.Title
	}
	if in.Name != nil {
		return *in.Name
	}
	return ""
}

func (in ProductInput) image() string {
	if in.Image != nil && *in.Image != "" {
		return *in.Image
	}
	if len(in.Images) > 0 {
		return in.Images[0]
	}
	return ""
}

// POST /api/products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
			return
		}

		title := input.title()
		image := input.image()
		if title == "" || input.Description == nil || *input.Description == "" ||
			input.Category == nil || input.Price == nil || input.Stock == nil || image == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "title, description, category, price, stock, and image are required."})
			return
		}
		if *input.Price < 0 || *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price and stock must not be negative."})
			return
		}

		var category models.Category
		if err := db.First(&category, *input.Category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to validate category."})
			return
		}

		product := models.Product{
			Title:       title,
			Description: *input.Description,
			CategoryID:  category.ID,
			Price:       *input.Price,
			Stock:       *input.Stock,
			Image:       image,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully.", "data": product})
	}
}
