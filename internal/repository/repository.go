package repository

import (
	"context"

	"menu-catalog/internal/model"
)

// ListFilter describes the predicate applied to a menu item listing.
// Zero-valued fields impose no restriction. Tags are ANDed together: an item
// matches only if it carries every listed tag. Limit and Offset are applied
// after filtering.
type ListFilter struct {
	Category string
	Tags     []string
	Search   string
	Limit    int
	Offset   int
}

// MenuItemRepository defines the interface for menu item data access
// operations. Every read excludes soft-deleted rows.
type MenuItemRepository interface {
	// List retrieves the page of active items matching the filter, ordered
	// by category then name.
	List(ctx context.Context, filter ListFilter) ([]model.MenuItem, error)

	// Count returns the number of active items matching the filter,
	// ignoring Limit and Offset.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// GetByID retrieves a single active item, or nil if the id is unknown
	// or soft-deleted.
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)

	// ExistsActive reports whether an active item other than excludeID
	// already uses the given (name, category) pair.
	ExistsActive(ctx context.Context, name, category string, excludeID int64) (bool, error)

	// Create inserts a new item and fills in its ID and timestamps.
	Create(ctx context.Context, item *model.MenuItem) error

	// Update persists the item's current field values and refreshes its
	// UpdatedAt timestamp.
	Update(ctx context.Context, item *model.MenuItem) error

	// SoftDelete marks an active item as deleted. It returns false when the
	// id is unknown or the item was already deleted.
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
