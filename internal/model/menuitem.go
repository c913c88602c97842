package model

import "time"

// MenuItem represents a dish or drink on the restaurant menu.
// A non-nil DeletedAt marks the item as soft-deleted; such items are
// invisible to every read operation.
type MenuItem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	DietaryTags []string   `json:"dietaryTags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// CreateMenuItemRequest is the payload for creating a menu item.
type CreateMenuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	DietaryTags []string `json:"dietaryTags"`
}

// UpdateMenuItemRequest is the payload for partially updating a menu item.
// Every field is optional; a nil pointer means "leave unchanged". DietaryTags
// is a pointer to a slice so that an explicitly supplied empty list clears
// the tags rather than being mistaken for an absent field.
type UpdateMenuItemRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	DietaryTags *[]string `json:"dietaryTags"`
}

// IsEmpty reports whether the request supplies no fields at all.
func (r *UpdateMenuItemRequest) IsEmpty() bool {
	return r.Name == nil &&
		r.Description == nil &&
		r.Price == nil &&
		r.Category == nil &&
		r.DietaryTags == nil
}

// Pagination describes the page of results returned by a listing.
// Total counts every item matching the filter, not just the current page.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
