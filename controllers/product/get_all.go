package productcontroller

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var slugSeparators = strings.NewReplacer("-", " ", "_", " ")

// buildSort maps the named sort orders onto ORDER BY clauses.
func buildSort(sort string) string {
	switch sort {
	case "priceAsc":
		return "price ASC"
	case "priceDesc":
		return "price DESC"
	case "titleAsc", "nameAsc":
		return "title ASC"
	case "oldest":
		return "created_at ASC"
	default: // newest
		return "created_at DESC"
	}
}

// GET /api/products
// Filters: keyword (title/description substring), category (numeric id
// or name slug), minPrice/maxPrice; named sorts; page/limit pagination.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := c.Query("keyword")
		category := c.Query("category")
		minPriceStr := c.Query("minPrice")
		maxPriceStr := c.Query("maxPrice")
		sort := c.DefaultQuery("sort", "newest")

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "12"))
		if err != nil || limit < 1 {
			limit = 12
		}

		query := db.Model(&models.Product{}).Preload("Category")

		if keyword != "" {
			likePattern := "%" + strings.ToLower(keyword) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", likePattern, likePattern)
		}

		if category != "" {
			if categoryID, convErr := strconv.ParseUint(category, 10, 64); convErr == nil {
				query = query.Where("category_id = ?", uint(categoryID))
			} else {
				// Frontend sends category slugs like "fresh-vegetables";
				// match them against category names case-insensitively.
				normalized := strings.TrimSpace(slugSeparators.Replace(category))
				var categoryDoc models.Category
				if err := db.Where("LOWER(name) = LOWER(?)", normalized).First(&categoryDoc).Error; err != nil {
					// Unknown category text yields an empty page instead
					// of mixed/unfiltered results.
					c.JSON(http.StatusOK, gin.H{
						"success": true,
						"data":    []models.Product{},
						"pagination": gin.H{
							"total": 0,
							"page":  page,
							"pages": 1,
							"limit": limit,
						},
					})
					return
				}
				query = query.Where("category_id = ?", categoryDoc.ID)
			}
		}

		if minPriceStr != "" {
			minPrice, convErr := strconv.ParseFloat(minPriceStr, 64)
			if convErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid minPrice."})
				return
			}
			query = query.Where("price >= ?", minPrice)
		}
		if maxPriceStr != "" {
			maxPrice, convErr := strconv.ParseFloat(maxPriceStr, 64)
			if convErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid maxPrice."})
				return
			}
			query = query.Where("price <= ?", maxPrice)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count products."})
			return
		}

		var products []models.Product
		if err := query.
			Order(buildSort(sort)).
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products."})
			return
		}

		pages := int(math.Ceil(float64(total) / float64(limit)))
		if pages < 1 {
			pages = 1
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    products,
			"pagination": gin.H{
				"total": total,
				"page":  page,
				"pages": pages,
				"limit": limit,
			},
		})
	}
}
