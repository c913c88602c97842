package main

import (
	"context"
	"fmt"
	"log"

	"menu-catalog/internal/config"
	"menu-catalog/internal/database"
	"menu-catalog/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Seeds the menu_items table with a sample menu for local development.
// Re-running it is safe: rows that already exist are skipped.
//
// Usage: go run scripts/seed_menu_items.go
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	items := []model.MenuItem{
		{Name: "Garlic Bread", Description: "Toasted baguette with garlic butter and herbs", Price: 4.50, Category: "Appetizers", DietaryTags: []string{"Vegetarian"}},
		{Name: "Spring Rolls", Description: "Crispy vegetable rolls with sweet chilli dip", Price: 5.25, Category: "Appetizers", DietaryTags: []string{"Vegan", "Dairy-Free"}},
		{Name: "Caesar Salad", Description: "Romaine lettuce, parmesan, croutons and Caesar dressing", Price: 8.75, Category: "Salads", DietaryTags: nil},
		{Name: "Quinoa Bowl", Description: "Quinoa, avocado, roasted vegetables and lemon dressing", Price: 9.95, Category: "Salads", DietaryTags: []string{"Vegan", "Gluten-Free"}},
		{Name: "Tomato Soup", Description: "Slow-roasted tomato soup with basil oil", Price: 5.95, Category: "Soups", DietaryTags: []string{"Vegetarian", "Gluten-Free"}},
		{Name: "Butter Chicken", Description: "Chicken simmered in a spiced tomato and butter sauce", Price: 14.50, Category: "Main Course", DietaryTags: []string{"Halal", "Spicy"}},
		{Name: "Veggie Wrap", Description: "Grilled vegetables and hummus in a warm tortilla", Price: 7.50, Category: "Main Course", DietaryTags: []string{"Vegetarian"}},
		{Name: "Chocolate Brownie", Description: "Warm brownie with vanilla ice cream", Price: 6.25, Category: "Desserts", DietaryTags: []string{"Vegetarian", "Nut-Free"}},
		{Name: "Mango Lassi", Description: "Chilled yoghurt drink blended with mango", Price: 3.95, Category: "Beverages", DietaryTags: []string{"Vegetarian", "Gluten-Free"}},
	}

	inserted := 0
	for _, item := range items {
		n, err := seedItem(ctx, pool, item)
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", item.Name, err)
		}
		inserted += n
	}

	fmt.Printf("Seeded %d of %d menu items\n", inserted, len(items))
}

func seedItem(ctx context.Context, pool *pgxpool.Pool, item model.MenuItem) (int, error) {
	tag, err := pool.Exec(ctx, `
		INSERT INTO menu_items (name, description, price, category, dietary_tags)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name, category) WHERE deleted_at IS NULL DO NOTHING
	`, item.Name, item.Description, item.Price, item.Category, model.EncodeTags(item.DietaryTags))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
