package integration

import (
	"context"
	"testing"

	"menu-catalog/internal/model"
	"menu-catalog/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(name, category string, price float64, tags ...string) *model.MenuItem {
	return &model.MenuItem{
		Name:        name,
		Description: "A " + name,
		Price:       price,
		Category:    category,
		DietaryTags: tags,
	}
}

func TestMenuItemRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewMenuItemRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create assigns id and timestamps", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Veggie Wrap", "Appetizers", 7.50, "Vegetarian")
		require.NoError(t, repo.Create(ctx, item))

		assert.Positive(t, item.ID)
		assert.False(t, item.CreatedAt.IsZero())
		assert.True(t, item.CreatedAt.Equal(item.UpdatedAt))
	})

	t.Run("Partial unique index rejects duplicate active pair", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Create(ctx, newItem("Veggie Wrap", "Appetizers", 7.50)))

		err := repo.Create(ctx, newItem("Veggie Wrap", "Appetizers", 8.00))
		assert.ErrorIs(t, err, model.ErrDuplicateMenuItem)

		// Same name under a different category is allowed.
		assert.NoError(t, repo.Create(ctx, newItem("Veggie Wrap", "Main Course", 9.00)))
	})

	t.Run("Soft delete frees the pair for re-creation", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Tomato Soup", "Soups", 5.95)
		require.NoError(t, repo.Create(ctx, item))

		deleted, err := repo.SoftDelete(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		// The deleted row no longer blocks the unique index.
		assert.NoError(t, repo.Create(ctx, newItem("Tomato Soup", "Soups", 6.25)))
	})

	t.Run("GetByID excludes soft-deleted rows", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Garlic Bread", "Appetizers", 4.50, "Vegetarian")
		require.NoError(t, repo.Create(ctx, item))

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Garlic Bread", got.Name)
		assert.Equal(t, []string{"Vegetarian"}, got.DietaryTags)

		deleted, err := repo.SoftDelete(ctx, item.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		got, err = repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SoftDelete is not idempotent-true", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Spring Rolls", "Appetizers", 5.25)
		require.NoError(t, repo.Create(ctx, item))

		deleted, err := repo.SoftDelete(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.SoftDelete(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.SoftDelete(ctx, 99999)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("List filters and orders deterministically", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Create(ctx, newItem("Quinoa Bowl", "Salads", 9.95, "Vegan", "Gluten-Free")))
		require.NoError(t, repo.Create(ctx, newItem("Caesar Salad", "Salads", 8.75)))
		require.NoError(t, repo.Create(ctx, newItem("Garlic Bread", "Appetizers", 4.50, "Vegetarian")))
		require.NoError(t, repo.Create(ctx, newItem("Spring Rolls", "Appetizers", 5.25, "Vegan", "Dairy-Free")))
		require.NoError(t, repo.Create(ctx, newItem("Tomato Soup", "Soups", 5.95, "Vegetarian", "Gluten-Free")))

		all, err := repo.List(ctx, repository.ListFilter{Limit: 100})
		require.NoError(t, err)

		var names []string
		for _, item := range all {
			names = append(names, item.Name)
		}
		assert.Equal(t, []string{
			"Garlic Bread", "Spring Rolls", // Appetizers
			"Caesar Salad", "Quinoa Bowl", // Salads
			"Tomato Soup", // Soups
		}, names, "ordered by category then name")

		byCategory, err := repo.List(ctx, repository.ListFilter{Category: "Salads", Limit: 100})
		require.NoError(t, err)
		assert.Len(t, byCategory, 2)

		// Tag filter is AND across tags.
		byTags, err := repo.List(ctx, repository.ListFilter{Tags: []string{"Vegan", "Gluten-Free"}, Limit: 100})
		require.NoError(t, err)
		require.Len(t, byTags, 1)
		assert.Equal(t, "Quinoa Bowl", byTags[0].Name)

		// A tag that is a substring of another tag must not over-match.
		byCarb, err := repo.List(ctx, repository.ListFilter{Tags: []string{"Carb"}, Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, byCarb)

		bySearch, err := repo.List(ctx, repository.ListFilter{Search: "Soup", Limit: 100})
		require.NoError(t, err)
		require.Len(t, bySearch, 1)
		assert.Equal(t, "Tomato Soup", bySearch[0].Name)

		count, err := repo.Count(ctx, repository.ListFilter{Category: "Appetizers"})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Pagination concatenates without gaps or duplicates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		names := []string{"Bruschetta", "Calamari", "Dumplings", "Edamame", "Flatbread"}
		for _, name := range names {
			require.NoError(t, repo.Create(ctx, newItem(name, "Appetizers", 6.00)))
		}

		var collected []string
		for offset := 0; offset < len(names); offset += 2 {
			page, err := repo.List(ctx, repository.ListFilter{Limit: 2, Offset: offset})
			require.NoError(t, err)
			for _, item := range page {
				collected = append(collected, item.Name)
			}
		}

		assert.Equal(t, names, collected)
	})

	t.Run("ExistsActive honours exclusion and soft delete", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Mango Lassi", "Beverages", 3.95)
		require.NoError(t, repo.Create(ctx, item))

		exists, err := repo.ExistsActive(ctx, "Mango Lassi", "Beverages", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsActive(ctx, "Mango Lassi", "Beverages", item.ID)
		require.NoError(t, err)
		assert.False(t, exists, "the item itself is excluded")

		_, err = repo.SoftDelete(ctx, item.ID)
		require.NoError(t, err)

		exists, err = repo.ExistsActive(ctx, "Mango Lassi", "Beverages", 0)
		require.NoError(t, err)
		assert.False(t, exists, "soft-deleted rows do not count")
	})

	t.Run("Update persists fields and refreshes updated_at", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Butter Chicken", "Main Course", 14.50, "Halal")
		require.NoError(t, repo.Create(ctx, item))
		created := item.UpdatedAt

		item.Price = 15.25
		item.DietaryTags = []string{"Halal", "Spicy"}
		require.NoError(t, repo.Update(ctx, item))

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.InDelta(t, 15.25, got.Price, 0.001)
		assert.Equal(t, []string{"Halal", "Spicy"}, got.DietaryTags)
		assert.True(t, got.UpdatedAt.After(created) || got.UpdatedAt.Equal(created))
	})

	t.Run("Malformed tag column reads as no tags", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item := newItem("Flat White", "Beverages", 3.50)
		require.NoError(t, repo.Create(ctx, item))

		_, err := testDB.Pool.Exec(ctx, "UPDATE menu_items SET dietary_tags = 'not-json' WHERE id = $1", item.ID)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.DietaryTags)
	})
}
