package service

import (
	"context"

	"menu-catalog/internal/model"
)

// ListParams carries the raw listing inputs from the HTTP layer. Page and
// Limit are clamped by the service; DietaryTags is the unparsed
// comma-separated value from the query string.
type ListParams struct {
	Page        int
	Limit       int
	Category    string
	DietaryTags string
	Search      string
}

// MenuItemService defines operations for menu item management.
type MenuItemService interface {
	// List retrieves a filtered, paginated page of active menu items
	// together with pagination metadata.
	List(ctx context.Context, params ListParams) ([]model.MenuItem, model.Pagination, error)

	// GetByID retrieves a single active menu item by ID.
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)

	// Create validates the request and inserts a new menu item.
	Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error)

	// Update applies the supplied fields of a partial update to an active
	// menu item and returns the merged result.
	Update(ctx context.Context, id int64, req *model.UpdateMenuItemRequest) (*model.MenuItem, error)

	// Delete soft-deletes an active menu item. It returns false, not an
	// error, when the id is unknown or already deleted.
	Delete(ctx context.Context, id int64) (bool, error)
}
