package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/chinnasitaramudu/ShopMart/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pgregory.net/rapid"
)

func newCartRouter(db *gorm.DB, user models.User) *gin.Engine {
	r := testutil.NewRouter()
	r.Use(testutil.AsUser(user))
	r.GET("/cart", GetMyCart(db))
	r.POST("/cart/items", AddItemToCart(db))
	r.PUT("/cart/items/:productId", UpdateCartItem(db))
	r.DELETE("/cart/items/:productId", RemoveCartItem(db))
	r.DELETE("/cart/clear", ClearMyCart(db))
	return r
}

type cartResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID         uint    `json:"id"`
		ItemsCount int     `json:"itemsCount"`
		Subtotal   float64 `json:"subtotal"`
		Items      []struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		} `json:"items"`
	} `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, body interface{}) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp cartResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 3, ClampQuantity(3, 5))
	assert.Equal(t, 5, ClampQuantity(9, 5))
	assert.Equal(t, 1, ClampQuantity(0, 5))
	assert.Equal(t, 1, ClampQuantity(-2, 5))
	assert.Equal(t, 1, ClampQuantity(4, 0), "zero stock still floors at one unit")
}

func TestClampQuantityProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		quantity := rapid.IntRange(-10, 100).Draw(t, "quantity")
		stock := rapid.IntRange(0, 50).Draw(t, "stock")

		got := ClampQuantity(quantity, stock)

		assert.GreaterOrEqual(t, got, 1)
		if stock >= 1 {
			assert.LessOrEqual(t, got, stock)
		}
	})
}

func TestCalculateCartTotals(t *testing.T) {
	cart := models.Cart{Items: []models.CartItem{
		{Quantity: 2, Product: &models.Product{Price: 10.5}},
		{Quantity: 3, Product: &models.Product{Price: 0.1}},
		{Quantity: 4, Product: nil}, // dangling reference counts as zero
	}}

	itemsCount, subtotal := CalculateCartTotals(cart)
	assert.Equal(t, 9, itemsCount)
	assert.Equal(t, 21.3, subtotal)
}

func TestEnsureCartSingleCartPerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "shopper", models.RoleUser)

	first, err := EnsureCart(db, user.ID)
	require.NoError(t, err)
	second, err := EnsureCart(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddItemToCart(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "shopper", models.RoleUser)
	category := testutil.SeedCategory(t, db, "Groceries")
	product := testutil.SeedProduct(t, db, category.ID, "Apples", 3.5, 5)
	r := newCartRouter(db, user)

	t.Run("first add creates the line", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": product.ID, "quantity": 2})
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Data.Items, 1)
		assert.Equal(t, 2, resp.Data.Items[0].Quantity)
		assert.Equal(t, 2, resp.Data.ItemsCount)
		assert.Equal(t, 7.0, resp.Data.Subtotal)
	})

	t.Run("adding again increments instead of duplicating", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": product.ID, "quantity": 2})
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Data.Items, 1)
		assert.Equal(t, 4, resp.Data.Items[0].Quantity)
	})

	t.Run("quantity is clamped to stock", func(t *testing.T) {
		w, resp := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": product.ID, "quantity": 10})
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Data.Items, 1)
		assert.Equal(t, 5, resp.Data.Items[0].Quantity)
	})

	t.Run("legacy field names accepted", func(t *testing.T) {
		other := testutil.SeedProduct(t, db, category.ID, "Bananas", 1.2, 8)
		w, resp := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product": other.ID, "qty": 3})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, resp.Data.Items, 2)
	})

	t.Run("unknown product yields not found", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": 99999, "quantity": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAddItemClampProperty(t *testing.T) {
	// After add-item, stored quantity = min(existing+requested, stock),
	// and never below one.
	rapid.Check(t, func(t *rapid.T) {
		existing := rapid.IntRange(1, 10).Draw(t, "existing")
		requested := rapid.IntRange(1, 10).Draw(t, "requested")
		stock := rapid.IntRange(1, 12).Draw(t, "stock")

		got := ClampQuantity(existing+requested, stock)

		expected := existing + requested
		if expected > stock {
			expected = stock
		}
		assert.Equal(t, expected, got)
		assert.GreaterOrEqual(t, got, 1)
	})
}

func TestUpdateCartItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "shopper", models.RoleUser)
	category := testutil.SeedCategory(t, db, "Groceries")
	product := testutil.SeedProduct(t, db, category.ID, "Milk", 2.5, 6)
	r := newCartRouter(db, user)

	t.Run("absent line yields not found", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/cart/items/%d", product.ID), gin.H{"quantity": 2})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("quantity overwritten and clamped", func(t *testing.T) {
		_, _ = doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": product.ID, "quantity": 1})
		w, resp := doJSON(t, r, http.MethodPut, fmt.Sprintf("/cart/items/%d", product.ID), gin.H{"quantity": 40})
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Data.Items, 1)
		assert.Equal(t, 6, resp.Data.Items[0].Quantity)
	})
}

func TestRemoveCartItemIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "shopper", models.RoleUser)
	category := testutil.SeedCategory(t, db, "Groceries")
	product := testutil.SeedProduct(t, db, category.ID, "Eggs", 4, 12)
	r := newCartRouter(db, user)

	_, _ = doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": product.ID, "quantity": 2})

	url := fmt.Sprintf("/cart/items/%d", product.ID)
	w, resp := doJSON(t, r, http.MethodDelete, url, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data.Items)

	// Removing an already-removed line is still a success.
	w, resp = doJSON(t, r, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data.Items)
}

func TestClearCartIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "shopper", models.RoleUser)
	category := testutil.SeedCategory(t, db, "Groceries")
	product := testutil.SeedProduct(t, db, category.ID, "Bread", 2, 9)
	r := newCartRouter(db, user)

	_, _ = doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": product.ID, "quantity": 2})

	for i := 0; i < 2; i++ {
		w, resp := doJSON(t, r, http.MethodDelete, "/cart/clear", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, resp.Data.Items)
		assert.Zero(t, resp.Data.ItemsCount)
		assert.Zero(t, resp.Data.Subtotal)
	}
}

func TestGetMyCartCreatesLazily(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "shopper", models.RoleUser)
	r := newCartRouter(db, user)

	w, resp := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.Data.ID)
	assert.Empty(t, resp.Data.Items)
}
