package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"menu-catalog/internal/model"
	"menu-catalog/internal/service"

	"github.com/rs/zerolog"
)

const menuItemsPathPrefix = "/api/menuitems/"

// MenuItemHandler handles menu item HTTP requests.
type MenuItemHandler struct {
	service service.MenuItemService
	logger  zerolog.Logger
}

// NewMenuItemHandler creates a new menu item handler.
func NewMenuItemHandler(service service.MenuItemService, logger zerolog.Logger) *MenuItemHandler {
	return &MenuItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "menuitem").Logger(),
	}
}

// List handles GET /api/menuitems requests.
func (h *MenuItemHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 0
	if pageStr := query.Get("page"); pageStr != "" {
		var err error
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Validation failed", "page: page must be an integer", h.logger)
			return
		}
	}

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Validation failed", "limit: limit must be an integer", h.logger)
			return
		}
	}

	params := service.ListParams{
		Page:        page,
		Limit:       limit,
		Category:    query.Get("category"),
		DietaryTags: query.Get("dietaryTags"),
		Search:      query.Get("search"),
	}

	items, pagination, err := h.service.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeList(w, items, pagination)
}

// GetByID handles GET /api/menuitems/{id} requests.
func (h *MenuItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "", item)
}

// Create handles POST /api/menuitems requests.
func (h *MenuItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Validation failed", "body: invalid JSON request body", h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, "Menu item created successfully", item)
}

// Update handles PUT /api/menuitems/{id} requests with partial-update
// semantics.
func (h *MenuItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var req model.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Validation failed", "body: invalid JSON request body", h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Menu item updated successfully", item)
}

// Delete handles DELETE /api/menuitems/{id} requests.
func (h *MenuItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if !deleted {
		writeError(w, http.StatusNotFound, model.ErrCodeNotFound, model.ErrMenuItemNotFound.Message, "", h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "Menu item deleted successfully", nil)
}

// itemID extracts the {id} path segment. A missing or non-numeric id is
// indistinguishable from an unknown item, so both map to NOT_FOUND.
func (h *MenuItemHandler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, menuItemsPathPrefix)
	idStr = strings.TrimSuffix(idStr, "/")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusNotFound, model.ErrCodeNotFound, model.ErrMenuItemNotFound.Message, "", h.logger)
		return 0, false
	}

	return id, true
}
