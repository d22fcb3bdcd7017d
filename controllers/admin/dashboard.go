package adminControllers

import (
	"net/http"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type monthlySales struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// GET /api/admin/dashboard (admin)
// Entity counts, revenue over completed payments with per-month
// buckets, the five most recent orders, and low-stock products.
func GetDashboardAnalytics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalUsers, totalProducts, totalOrders, totalCategories int64
		counts := []struct {
			model interface{}
			dest  *int64
		}{
			{&models.User{}, &totalUsers},
			{&models.Product{}, &totalProducts},
			{&models.Order{}, &totalOrders},
			{&models.Category{}, &totalCategories},
		}
		for _, count := range counts {
			if err := db.Model(count.model).Count(count.dest).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load dashboard counts."})
				return
			}
		}

		// Paid orders are bucketed by calendar month of paidAt in Go to
		// keep the query portable across drivers.
		var paidOrders []models.Order
		if err := db.Where("payment_status = ?", "COMPLETED").Find(&paidOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load sales summary."})
			return
		}

		var totalRevenue float64
		buckets := make(map[int]*monthlySales)
		for _, order := range paidOrders {
			totalRevenue += order.Total
			if order.PaymentInfo.PaidAt == nil {
				continue
			}
			month := int(order.PaymentInfo.PaidAt.Month())
			if buckets[month] == nil {
				buckets[month] = &monthlySales{Month: month}
			}
			buckets[month].Revenue += order.Total
			buckets[month].Orders++
		}
		monthly := make([]monthlySales, 0, len(buckets))
		for month := 1; month <= 12; month++ {
			if b, ok := buckets[month]; ok {
				monthly = append(monthly, *b)
			}
		}

		var recentOrders []models.Order
		if err := db.Preload("User").Preload("Items").
			Order("created_at DESC").Limit(5).Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load recent orders."})
			return
		}

		var lowStockProducts []models.Product
		if err := db.Where("stock < ?", 10).Order("stock ASC").Limit(10).Find(&lowStockProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load low stock products."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"counts": gin.H{
					"users":      totalUsers,
					"products":   totalProducts,
					"orders":     totalOrders,
					"categories": totalCategories,
				},
				"revenue": gin.H{
					"total":        totalRevenue,
					"monthlySales": monthly,
				},
				"recentOrders":     recentOrders,
				"lowStockProducts": lowStockProducts,
			},
		})
	}
}
