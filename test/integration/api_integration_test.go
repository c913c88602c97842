package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"menu-catalog/internal/handler"
	"menu-catalog/internal/model"
	"menu-catalog/internal/repository"
	"menu-catalog/internal/router"
	"menu-catalog/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	menuItemRepo := repository.NewMenuItemRepository(testDB.Pool, logger)
	menuItemService := service.NewMenuItemService(menuItemRepo, logger)
	menuItemHandler := handler.NewMenuItemHandler(menuItemService, logger)

	return router.New(menuItemHandler, logger)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestMenuItemAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	srv := setupTestServer(t, testDB)

	t.Run("Full lifecycle scenario", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		// Create
		createBody := map[string]interface{}{
			"name":        "Veggie Wrap",
			"description": "A wrap",
			"price":       7.50,
			"category":    "Appetizers",
			"dietaryTags": []string{"Vegetarian"},
		}
		w := doJSON(t, srv, http.MethodPost, "/api/menuitems", createBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created model.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.True(t, created.Success)

		data, err := json.Marshal(created.Data)
		require.NoError(t, err)
		var item model.MenuItem
		require.NoError(t, json.Unmarshal(data, &item))
		assert.Positive(t, item.ID)
		assert.Equal(t, "Veggie Wrap", item.Name)
		assert.Equal(t, []string{"Vegetarian"}, item.DietaryTags)

		// Duplicate create
		w = doJSON(t, srv, http.MethodPost, "/api/menuitems", createBody)
		require.Equal(t, http.StatusConflict, w.Code)

		var dup model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dup))
		assert.Equal(t, model.ErrCodeDuplicateItem, dup.Error.Code)
		assert.NotEmpty(t, dup.Error.Timestamp)

		// Fetch
		w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/menuitems/%d", item.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		// Partial update
		w = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/api/menuitems/%d", item.ID), map[string]interface{}{"price": 8.25})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated model.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		data, err = json.Marshal(updated.Data)
		require.NoError(t, err)
		var merged model.MenuItem
		require.NoError(t, json.Unmarshal(data, &merged))
		assert.InDelta(t, 8.25, merged.Price, 0.001)
		assert.Equal(t, "Veggie Wrap", merged.Name, "untouched fields survive a partial update")

		// Delete
		w = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/menuitems/%d", item.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		// Gone afterwards
		w = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/menuitems/%d", item.ID), nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		// Second delete reports not found
		w = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/menuitems/%d", item.ID), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Validation errors are collected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := doJSON(t, srv, http.MethodPost, "/api/menuitems", map[string]interface{}{
			"name":        "",
			"description": "Too expensive",
			"price":       1000.00,
			"category":    "Sides",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "name")
		assert.Contains(t, resp.Error.Details, "price must not exceed 999.99")
		assert.Contains(t, resp.Error.Details, "category")
	})

	t.Run("Listing with filters and pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		seed := []map[string]interface{}{
			{"name": "Garlic Bread", "description": "Toasted baguette", "price": 4.50, "category": "Appetizers", "dietaryTags": []string{"Vegetarian"}},
			{"name": "Spring Rolls", "description": "Crispy rolls", "price": 5.25, "category": "Appetizers", "dietaryTags": []string{"Vegan", "Dairy-Free"}},
			{"name": "Quinoa Bowl", "description": "Quinoa and avocado", "price": 9.95, "category": "Salads", "dietaryTags": []string{"Vegan", "Gluten-Free"}},
			{"name": "Tomato Soup", "description": "Roasted tomato soup", "price": 5.95, "category": "Soups", "dietaryTags": []string{"Vegetarian", "Gluten-Free"}},
		}
		for _, body := range seed {
			w := doJSON(t, srv, http.MethodPost, "/api/menuitems", body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		// Unfiltered list with small pages
		w := doJSON(t, srv, http.MethodGet, "/api/menuitems?page=1&limit=3", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var page1 model.ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page1))
		assert.Equal(t, 4, page1.Pagination.Total)
		assert.Equal(t, 2, page1.Pagination.TotalPages)

		// Limit clamping
		w = doJSON(t, srv, http.MethodGet, "/api/menuitems?page=0&limit=1000", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var clamped model.ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clamped))
		assert.Equal(t, 1, clamped.Pagination.Page)
		assert.Equal(t, 100, clamped.Pagination.Limit)

		// Tag AND-filter
		w = doJSON(t, srv, http.MethodGet, "/api/menuitems?dietaryTags=Vegan,Gluten-Free", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var tagged model.ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tagged))
		assert.Equal(t, 1, tagged.Pagination.Total)

		// Search
		w = doJSON(t, srv, http.MethodGet, "/api/menuitems?search=tomato", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var searched model.ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &searched))
		assert.Equal(t, 1, searched.Pagination.Total)

		// Out-of-range page returns empty data with correct metadata
		w = doJSON(t, srv, http.MethodGet, "/api/menuitems?page=50", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var empty model.ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
		assert.Equal(t, 4, empty.Pagination.Total)
		items, ok := empty.Data.([]interface{})
		require.True(t, ok, "data must be a JSON array, got %T", empty.Data)
		assert.Empty(t, items)
	})

	t.Run("Health endpoint", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "healthy")
	})
}
