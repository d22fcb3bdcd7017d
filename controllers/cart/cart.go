package cartControllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/chinnasitaramudu/ShopMart/middleware"
	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartItemInput accepts both the current and the legacy field names
// used by older clients.
type CartItemInput struct {
	ProductID uint `json:"productId"`
	Product   uint `json:"product"`
	Quantity  int  `json:"quantity"`
	Qty       int  `json:"qty"`
}

func (in CartItemInput) productID() uint {
	if in.ProductID != 0 {
		return in.ProductID
	}
	return in.Product
}

func (in CartItemInput) quantity() int {
	q := in.Quantity
	if q == 0 {
		q = in.Qty
	}
	if q < 1 {
		return 1
	}
	return q
}

// cartPayload is the wire shape of every cart response: the cart merged
// with its computed totals.
type cartPayload struct {
	models.Cart
	ItemsCount int     `json:"itemsCount"`
	Subtotal   float64 `json:"subtotal"`
}

// ClampQuantity bounds a requested quantity to [1, stock]. A line item
// never exceeds current stock and never drops below one unit.
func ClampQuantity(quantity, stock int) int {
	if quantity > stock {
		quantity = stock
	}
	if quantity < 1 {
		quantity = 1
	}
	return quantity
}

// CalculateCartTotals sums quantities and line prices. Pure function;
// items whose product no longer resolves count as price zero.
func CalculateCartTotals(cart models.Cart) (itemsCount int, subtotal float64) {
	for _, item := range cart.Items {
		itemsCount += item.Quantity
		if item.Product != nil {
			subtotal += item.Product.Price * float64(item.Quantity)
		}
	}
	subtotal = math.Round(subtotal*100) / 100
	return itemsCount, subtotal
}

// EnsureCart returns the user's cart, creating an empty one on first
// access. The upsert keyed on the unique user_id column makes
// concurrent calls for the same user converge on a single cart.
func EnsureCart(db *gorm.DB, userID uint) (models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		return models.Cart{}, err
	}

	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// LoadPopulatedCart returns the user's cart with product details
// resolved on every line item.
func LoadPopulatedCart(db *gorm.DB, userID uint) (models.Cart, error) {
	if _, err := EnsureCart(db, userID); err != nil {
		return models.Cart{}, err
	}

	var cart models.Cart
	if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func respondWithCart(c *gin.Context, db *gorm.DB, userID uint, message string) {
	cart, err := LoadPopulatedCart(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
		return
	}

	itemsCount, subtotal := CalculateCartTotals(cart)
	resp := gin.H{
		"success": true,
		"data":    cartPayload{Cart: cart, ItemsCount: itemsCount, Subtotal: subtotal},
	}
	if message != "" {
		resp["message"] = message
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/cart
func GetMyCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}
		respondWithCart(c, db, user.ID, "")
	}
}

// POST /api/cart/items
func AddItemToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
			return
		}

		productID := input.productID()
		if productID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id."})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to validate product."})
			return
		}

		cart, err := EnsureCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  ClampQuantity(input.quantity(), product.Stock),
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add item to cart."})
				return
			}
		case err == nil:
			// Adding an already-present product increases its quantity.
			item.Quantity = ClampQuantity(item.Quantity+input.quantity(), product.Stock)
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart item."})
				return
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart item."})
			return
		}

		respondWithCart(c, db, user.ID, "Item added to cart.")
	}
}

// PUT /api/cart/items/:productId
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id."})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload."})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(productID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to validate product."})
			return
		}

		cart, err := EnsureCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not present in cart."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart item."})
			return
		}

		item.Quantity = ClampQuantity(input.quantity(), product.Stock)
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart item."})
			return
		}

		respondWithCart(c, db, user.ID, "Cart item updated.")
	}
}

// DELETE /api/cart/items/:productId
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id."})
			return
		}

		cart, err := EnsureCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		// Removal is idempotent; deleting an absent line is not an error.
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, uint(productID)).
			Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove item."})
			return
		}

		respondWithCart(c, db, user.ID, "Item removed from cart.")
	}
}

// DELETE /api/cart/clear
func ClearMyCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied."})
			return
		}

		cart, err := EnsureCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart."})
			return
		}

		respondWithCart(c, db, user.ID, "Cart cleared.")
	}
}
