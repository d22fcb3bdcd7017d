package orderControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	cartControllers "github.com/chinnasitaramudu/ShopMart/controllers/cart"
	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	freeShippingThreshold = 600.0
	flatShippingFee       = 40.0
	taxRate               = 0.05
)

var (
	ErrIncompleteAddress = errors.New("complete shipping address is required")
	ErrCartEmpty         = errors.New("cart is empty, add items before placing order")
	ErrInvalidProductRef = errors.New("cart has invalid product references, please refresh cart")
)

// InsufficientStockError names the product that cannot cover the
// requested quantity.
type InsufficientStockError struct {
	Title string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Title)
}

// -------- Request Structs --------

type PlaceOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type MarkPaidRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Totals --------

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateOrderTotal computes the order amount from line-item
// snapshots: free shipping over the threshold, flat fee otherwise, and
// a flat percentage tax on the subtotal. Only total is persisted on
// the order; the other components are transient.
func CalculateOrderTotal(items []models.OrderItem) (subtotal, shippingFee, tax, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	shippingFee = flatShippingFee
	if subtotal > freeShippingThreshold {
		shippingFee = 0
	}
	tax = round2(subtotal * taxRate)
	total = round2(subtotal + shippingFee + tax)
	return subtotal, shippingFee, tax, total
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into a persisted order. The whole
// sequence runs in one transaction: stock is taken with a conditional
// decrement (stock = stock - n only where stock >= n), and a decrement
// that affects zero rows aborts the transaction, rolling back the order
// row and the cart clear with it. Stock can never go negative under
// concurrent checkouts.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	if !req.ShippingAddress.Complete() {
		return nil, ErrIncompleteAddress
	}

	cart, err := cartControllers.LoadPopulatedCart(db, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}
	paymentStatus := "INITIATED"
	if paymentMethod == "cod" {
		paymentStatus = "PENDING"
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var orderItems []models.OrderItem
		for _, item := range cart.Items {
			product := item.Product
			if product == nil {
				return ErrInvalidProductRef
			}
			if product.Stock < item.Quantity {
				return &InsufficientStockError{Title: product.Title}
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Title:     product.Title,
				Quantity:  item.Quantity,
				Price:     product.Price,
				Image:     product.Image,
			})
		}

		_, _, _, total := CalculateOrderTotal(orderItems)

		order = models.Order{
			UserID: userID,
			Items:  orderItems,
			Total:  total,
			Status: models.OrderStatusPending,
			PaymentInfo: models.PaymentInfo{
				Method: paymentMethod,
				Status: paymentStatus,
			},
			ShippingAddress: req.ShippingAddress,
			CreatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range orderItems {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Lost a race with a concurrent checkout.
				return &InsufficientStockError{Title: item.Title}
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
			return
		}

		order, err := PlaceOrder(db, user.ID, req)
		if err != nil {
			var stockErr *InsufficientStockError
			switch {
			case errors.Is(err, ErrIncompleteAddress):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Complete shipping address is required."})
			case errors.Is(err, ErrCartEmpty):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty. Add items before placing order."})
			case errors.Is(err, ErrInvalidProductRef):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart has invalid product references. Please refresh cart."})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Insufficient stock for %s.", stockErr.Title)})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to place order."})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order placed successfully.", "data": order})
	}
}

// GET /api/orders/my-orders
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("Items").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GET /api/orders/:id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id."})
			return
		}

		var order models.Order
		if err := db.Preload("User").Preload("Items").First(&order, uint(orderID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order."})
			return
		}

		if order.UserID != user.ID && !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to view this order."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// PUT /api/orders/:id/pay
// Mock payment confirmation: sets the payment sub-record and advances a
// pending order to processing.
func UpdateOrderToPaidHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id."})
			return
		}

		// Body is optional; every field has a default.
		var req MarkPaidRequest
		_ = c.ShouldBindJSON(&req)

		var order models.Order
		if err := db.Preload("Items").First(&order, uint(orderID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order."})
			return
		}

		if order.UserID != user.ID && !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized to update payment for this order."})
			return
		}

		method := order.PaymentInfo.Method
		if method == "" {
			method = "mock"
		}
		transactionID := req.ID
		if transactionID == "" {
			transactionID = "mock_" + uuid.NewString()
		}
		status := req.Status
		if status == "" {
			status = "COMPLETED"
		}

		now := time.Now()
		order.PaymentInfo = models.PaymentInfo{
			Method:        method,
			TransactionID: transactionID,
			Status:        status,
			PaidAt:        &now,
		}
		if order.Status == models.OrderStatusPending {
			order.Status = models.OrderStatusProcessing
		}

		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order marked as paid.", "data": order})
	}
}

// GET /api/orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// PUT /api/orders/:id/status (admin)
// Any of the enumerated statuses is accepted in any order; only
// membership in the enumeration is validated.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id."})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status is required."})
			return
		}

		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order status."})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, uint(orderID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order."})
			return
		}

		order.Status = newStatus
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully.", "data": order})
	}
}
