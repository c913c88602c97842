package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"menu-catalog/internal/model"
	"menu-catalog/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	maxNameLength        = 100
	maxDescriptionLength = 500
	maxPrice             = 999.99
	maxDietaryTags       = 10
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9 '-]+$`)

// menuItemService implements MenuItemService.
type menuItemService struct {
	repo   repository.MenuItemRepository
	logger zerolog.Logger
}

// NewMenuItemService creates a new menu item service.
func NewMenuItemService(repo repository.MenuItemRepository, logger zerolog.Logger) MenuItemService {
	return &menuItemService{
		repo:   repo,
		logger: logger.With().Str("service", "menuitem").Logger(),
	}
}

// List retrieves a filtered, paginated page of active menu items.
func (s *menuItemService) List(ctx context.Context, params ListParams) ([]model.MenuItem, model.Pagination, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := repository.ListFilter{
		Category: params.Category,
		Tags:     splitTags(params.DietaryTags),
		Search:   params.Search,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count menu items")
		return nil, model.Pagination{}, fmt.Errorf("failed to list menu items: %w", err)
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu items")
		return nil, model.Pagination{}, fmt.Errorf("failed to list menu items: %w", err)
	}
	if items == nil {
		items = []model.MenuItem{}
	}

	pagination := model.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	s.logger.Debug().
		Int("count", len(items)).
		Int("total", total).
		Int("page", page).
		Int("limit", limit).
		Msg("retrieved menu items")

	return items, pagination, nil
}

// GetByID retrieves a single active menu item by ID.
func (s *menuItemService) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to get menu item")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Int64("menu_item_id", id).Msg("menu item not found")
		return nil, model.ErrMenuItemNotFound
	}

	return item, nil
}

// Create validates the request and inserts a new menu item.
func (s *menuItemService) Create(ctx context.Context, req *model.CreateMenuItemRequest) (*model.MenuItem, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	// Fast-path duplicate check; the partial unique index remains the
	// authoritative guard against concurrent writers.
	exists, err := s.repo.ExistsActive(ctx, req.Name, req.Category, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	if exists {
		s.logger.Debug().
			Str("name", req.Name).
			Str("category", req.Category).
			Msg("duplicate menu item rejected")
		return nil, model.ErrDuplicateMenuItem
	}

	item := &model.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		DietaryTags: req.DietaryTags,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, model.ErrDuplicateMenuItem) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create menu item")
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().
		Int64("menu_item_id", item.ID).
		Str("name", item.Name).
		Str("category", item.Category).
		Msg("menu item created")

	return item, nil
}

// Update applies the supplied fields of a partial update to an active menu
// item.
func (s *menuItemService) Update(ctx context.Context, id int64, req *model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to load menu item for update")
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	if item == nil {
		return nil, model.ErrMenuItemNotFound
	}

	// When name or category changes, the effective pair must be re-checked
	// against every other active item.
	if req.Name != nil || req.Category != nil {
		name := item.Name
		if req.Name != nil {
			name = *req.Name
		}
		category := item.Category
		if req.Category != nil {
			category = *req.Category
		}

		exists, err := s.repo.ExistsActive(ctx, name, category, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update menu item: %w", err)
		}
		if exists {
			s.logger.Debug().
				Int64("menu_item_id", id).
				Str("name", name).
				Str("category", category).
				Msg("duplicate menu item rejected on update")
			return nil, model.ErrDuplicateMenuItem
		}
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.DietaryTags != nil {
		item.DietaryTags = *req.DietaryTags
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, model.ErrMenuItemNotFound) || errors.Is(err, model.ErrDuplicateMenuItem) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to update menu item")
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	s.logger.Info().Int64("menu_item_id", id).Msg("menu item updated")

	return item, nil
}

// Delete soft-deletes an active menu item.
func (s *menuItemService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to delete menu item")
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}

	if deleted {
		s.logger.Info().Int64("menu_item_id", id).Msg("menu item soft deleted")
	} else {
		s.logger.Debug().Int64("menu_item_id", id).Msg("delete of unknown or already deleted menu item")
	}

	return deleted, nil
}

// splitTags parses the comma-separated dietary tag filter, trimming each
// token and dropping empties.
func splitTags(csv string) []string {
	if csv == "" {
		return nil
	}
	var tags []string
	for _, token := range strings.Split(csv, ",") {
		if tag := strings.TrimSpace(token); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// validateCreate checks every field of a create request, collecting all
// violations instead of failing on the first.
func validateCreate(req *model.CreateMenuItemRequest) error {
	ve := &model.ValidationError{}

	if req.Name == "" {
		ve.Add("name", "name is required")
	} else {
		validateName(ve, req.Name)
	}

	if req.Description == "" {
		ve.Add("description", "description is required")
	} else {
		validateDescription(ve, req.Description)
	}

	if req.Price == 0 {
		ve.Add("price", "price is required")
	} else {
		validatePrice(ve, req.Price)
	}

	if req.Category == "" {
		ve.Add("category", "category is required")
	} else {
		validateCategory(ve, req.Category)
	}

	validateTags(ve, req.DietaryTags)

	if ve.HasViolations() {
		return ve
	}
	return nil
}

// validateUpdate checks only the supplied fields of a partial update and
// rejects an empty patch.
func validateUpdate(req *model.UpdateMenuItemRequest) error {
	ve := &model.ValidationError{}

	if req.IsEmpty() {
		ve.Add("request", "at least one field must be supplied")
		return ve
	}

	if req.Name != nil {
		validateName(ve, *req.Name)
	}
	if req.Description != nil {
		validateDescription(ve, *req.Description)
	}
	if req.Price != nil {
		validatePrice(ve, *req.Price)
	}
	if req.Category != nil {
		validateCategory(ve, *req.Category)
	}
	if req.DietaryTags != nil {
		validateTags(ve, *req.DietaryTags)
	}

	if ve.HasViolations() {
		return ve
	}
	return nil
}

func validateName(ve *model.ValidationError, name string) {
	if len(name) < 1 || len(name) > maxNameLength {
		ve.Add("name", fmt.Sprintf("name must be between 1 and %d characters", maxNameLength))
		return
	}
	if !namePattern.MatchString(name) {
		ve.Add("name", "name may only contain letters, digits, spaces, apostrophes and hyphens")
	}
}

func validateDescription(ve *model.ValidationError, description string) {
	if len(description) < 1 || len(description) > maxDescriptionLength {
		ve.Add("description", fmt.Sprintf("description must be between 1 and %d characters", maxDescriptionLength))
	}
}

func validatePrice(ve *model.ValidationError, price float64) {
	if price <= 0 {
		ve.Add("price", "price must be greater than 0")
		return
	}
	if price > maxPrice {
		ve.Add("price", fmt.Sprintf("price must not exceed %.2f", maxPrice))
		return
	}
	// No fractional cents. The tolerance absorbs float64 representation
	// error on values like 9.99.
	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		ve.Add("price", "price must have at most 2 decimal places")
	}
}

func validateCategory(ve *model.ValidationError, category string) {
	if !model.Categories.Contains(category) {
		ve.Add("category", fmt.Sprintf("category must be one of: %s", strings.Join(model.Categories.Values(), ", ")))
	}
}

func validateTags(ve *model.ValidationError, tags []string) {
	if len(tags) > maxDietaryTags {
		ve.Add("dietaryTags", fmt.Sprintf("at most %d dietary tags are allowed", maxDietaryTags))
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if !model.DietaryTags.Contains(tag) {
			ve.Add("dietaryTags", fmt.Sprintf("invalid dietary tag: %s", tag))
		}
		if _, dup := seen[tag]; dup {
			ve.Add("dietaryTags", fmt.Sprintf("duplicate dietary tag: %s", tag))
		}
		seen[tag] = struct{}{}
	}
}
