package categoryControllers

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
)

func newCategoryRouter(db *gorm.DB) *gin.Engine {
	r := testutil.NewRouter()
	r.POST("/categories", CreateCategory(db))
	r.DELETE("/categories/:id", DeleteCategory(db))
	return r
}

func TestCreateCategory(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newCategoryRouter(db)

	create := func(body gin.H) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("missing name rejected", func(t *testing.T) {
		w := create(gin.H{"description": "no name"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		w := create(gin.H{"name": "  Dairy ", "description": "Milk and friends"})
		require.Equal(t, http.StatusCreated, w.Code)

		var category models.Category
		require.NoError(t, db.Where("name = ?", "Dairy").First(&category).Error)
		assert.Equal(t, "Milk and friends", category.Description)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := create(gin.H{"name": "Dairy"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDeleteCategoryGuard(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := newCategoryRouter(db)

	category := testutil.SeedCategory(t, db, "Snacks")
	product := testutil.SeedProduct(t, db, category.ID, "Banana Chips", 3.5, 20)

	del := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Refused while a product still points at it.
	w := del()
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "linked to products")

	require.NoError(t, db.Delete(&product).Error)

	w = del()
	require.Equal(t, http.StatusOK, w.Code)
	assert.ErrorIs(t, db.First(&models.Category{}, category.ID).Error, gorm.ErrRecordNotFound)
}
