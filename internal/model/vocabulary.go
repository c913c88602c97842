package model

import "menu-catalog/internal/vocab"

// Categories is the closed vocabulary of menu categories. A categories
// reference table exists in the database for display ordering, but catalog
// operations validate against this set only.
var Categories = vocab.New(
	"Appetizers",
	"Salads",
	"Soups",
	"Main Course",
	"Desserts",
	"Beverages",
)

// DietaryTags is the closed vocabulary of dietary tags accepted on writes.
var DietaryTags = vocab.New(
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
	"Dairy-Free",
	"Nut-Free",
	"Spicy",
	"Low-Carb",
	"Halal",
	"Kosher",
	"Jhatka",
	"Non-Vegetarian",
)
