package productcontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/chinnasitaramudu/ShopMart/models"
	"github.com/chinnasitaramudu/ShopMart/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type listResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		ID    uint    `json:"id"`
		Title string  `json:"title"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	} `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Pages int   `json:"pages"`
		Limit int   `json:"limit"`
	} `json:"pagination"`
}

func listProducts(t *testing.T, r *gin.Engine, query string) listResponse {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products"+query, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Category) {
	t.Helper()
	vegetables := testutil.SeedCategory(t, db, "Fresh Vegetables")
	rice := testutil.SeedCategory(t, db, "Rice")

	testutil.SeedProduct(t, db, vegetables.ID, "Tomato", 2, 50)
	testutil.SeedProduct(t, db, vegetables.ID, "Spinach Bunch", 3, 40)
	testutil.SeedProduct(t, db, rice.ID, "Basmati Rice", 12, 30)
	testutil.SeedProduct(t, db, rice.ID, "Brown Rice", 9, 20)
	testutil.SeedProduct(t, db, rice.ID, "Rice Flour", 4, 25)
	return vegetables, rice
}

func TestGetProductsFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, rice := seedCatalog(t, db)

	r := testutil.NewRouter()
	r.GET("/products", GetProducts(db))

	t.Run("no filters returns everything", func(t *testing.T) {
		resp := listProducts(t, r, "")
		assert.Equal(t, int64(5), resp.Pagination.Total)
		assert.Len(t, resp.Data, 5)
	})

	t.Run("keyword matches title case-insensitively", func(t *testing.T) {
		resp := listProducts(t, r, "?keyword=rice")
		assert.Equal(t, int64(3), resp.Pagination.Total)
	})

	t.Run("category by numeric id", func(t *testing.T) {
		resp := listProducts(t, r, "?category="+strconv.FormatUint(uint64(rice.ID), 10))
		assert.Equal(t, int64(3), resp.Pagination.Total)
	})

	t.Run("category by slug", func(t *testing.T) {
		resp := listProducts(t, r, "?category=fresh-vegetables")
		assert.Equal(t, int64(2), resp.Pagination.Total)
	})

	t.Run("unknown category slug yields empty page", func(t *testing.T) {
		resp := listProducts(t, r, "?category=spaceships")
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Data)
		assert.Equal(t, int64(0), resp.Pagination.Total)
		assert.Equal(t, 1, resp.Pagination.Pages)
	})

	t.Run("price range", func(t *testing.T) {
		resp := listProducts(t, r, "?minPrice=4&maxPrice=10")
		assert.Equal(t, int64(2), resp.Pagination.Total) // Brown Rice, Rice Flour
	})

	t.Run("price ascending sort", func(t *testing.T) {
		resp := listProducts(t, r, "?sort=priceAsc")
		require.NotEmpty(t, resp.Data)
		for i := 1; i < len(resp.Data); i++ {
			assert.LessOrEqual(t, resp.Data[i-1].Price, resp.Data[i].Price)
		}
	})

	t.Run("legacy name alias present in payload", func(t *testing.T) {
		resp := listProducts(t, r, "?keyword=tomato")
		require.Len(t, resp.Data, 1)
		assert.Equal(t, resp.Data[0].Title, resp.Data[0].Name)
	})
}

func TestGetProductsPagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)

	r := testutil.NewRouter()
	r.GET("/products", GetProducts(db))

	resp := listProducts(t, r, "?limit=2&page=1")
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Pages)

	resp = listProducts(t, r, "?limit=2&page=3")
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 3, resp.Pagination.Page)

	// Out-of-range values are clamped.
	resp = listProducts(t, r, "?limit=0&page=-4")
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 12, resp.Pagination.Limit)
}
