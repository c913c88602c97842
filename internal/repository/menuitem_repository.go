package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menu-catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const menuItemColumns = "id, name, description, price, category, dietary_tags, created_at, updated_at"

// menuItemRepository implements the MenuItemRepository interface using PostgreSQL.
type menuItemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuItemRepository creates a new PostgreSQL-backed menu item repository.
func NewMenuItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuItemRepository {
	return &menuItemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menuitem").Logger(),
	}
}

// buildWhere renders the filter as a WHERE clause shared by List and Count.
// The deleted_at IS NULL predicate is always the first clause so soft-deleted
// rows can never leak into a read.
func buildWhere(filter ListFilter) (string, []interface{}) {
	clauses := []string{"deleted_at IS NULL"}
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(name LIKE $%d OR description LIKE $%d)", n, n))
	}

	for _, tag := range filter.Tags {
		// Match the JSON-quoted token so one tag name cannot match inside
		// another (e.g. "Carb" inside "Low-Carb").
		args = append(args, `%"`+tag+`"%`)
		clauses = append(clauses, fmt.Sprintf("dietary_tags LIKE $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// List retrieves the page of active items matching the filter.
func (r *menuItemRepository) List(ctx context.Context, filter ListFilter) ([]model.MenuItem, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items
		WHERE %s
		ORDER BY category, name
		LIMIT $%d OFFSET $%d
	`, menuItemColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Str("category", filter.Category).
			Str("search", filter.Search).
			Strs("tags", filter.Tags).
			Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// Count returns the number of active items matching the filter.
func (r *menuItemRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM menu_items WHERE %s", where)

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count menu items")
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	return count, nil
}

// GetByID retrieves a single active item by its ID.
func (r *menuItemRepository) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM menu_items
		WHERE id = $1 AND deleted_at IS NULL
	`, menuItemColumns)

	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("menu_item_id", id).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return item, nil
}

// ExistsActive reports whether an active item other than excludeID already
// uses the given (name, category) pair.
func (r *menuItemRepository) ExistsActive(ctx context.Context, name, category string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM menu_items
			WHERE name = $1 AND category = $2 AND deleted_at IS NULL AND id <> $3
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name, category, excludeID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).
			Str("name", name).
			Str("category", category).
			Msg("failed to check menu item uniqueness")
		return false, fmt.Errorf("failed to check menu item uniqueness: %w", err)
	}

	return exists, nil
}

// Create inserts a new item and fills in its ID and timestamps.
func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, description, price, category, dietary_tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		model.EncodeTags(item.DietaryTags),
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().
				Str("name", item.Name).
				Str("category", item.Category).
				Msg("unique index rejected duplicate menu item")
			return model.ErrDuplicateMenuItem
		}
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to insert menu item")
		return fmt.Errorf("failed to insert menu item: %w", err)
	}

	return nil
}

// Update persists the item's current field values. Soft-deleted rows are
// never updated.
func (r *menuItemRepository) Update(ctx context.Context, item *model.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, dietary_tags = $5, updated_at = now()
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.Category,
		model.EncodeTags(item.DietaryTags),
		item.ID,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrMenuItemNotFound
		}
		if isUniqueViolation(err) {
			r.logger.Debug().
				Str("name", item.Name).
				Str("category", item.Category).
				Msg("unique index rejected duplicate menu item")
			return model.ErrDuplicateMenuItem
		}
		r.logger.Error().Err(err).Int64("menu_item_id", item.ID).Msg("failed to update menu item")
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	return nil
}

// SoftDelete marks an active item as deleted.
func (r *menuItemRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE menu_items
		SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to soft delete menu item")
		return false, fmt.Errorf("failed to soft delete menu item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// scanMenuItem reads one row into a MenuItem, decoding the serialized tag
// column.
func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var item model.MenuItem
	var rawTags string
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&rawTags,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.DietaryTags = model.DecodeTags(rawTags)
	return &item, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. The partial unique index on (name, category) over active rows is
// the authoritative duplicate guard; the service-level pre-check only exists
// to produce a friendlier error without a round trip to the write path.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
