package menu

import (
	"context"

	"github.com/siva9346/formating-app/internal/llm"
)

// Repository persists extracted items in the menu_items table.
type Repository interface {
	// EnsureSchema creates menu_items if missing. Safe to call per request.
	EnsureSchema(ctx context.Context) error

	// InsertMenuItems upserts each item by exact dish_name, one statement per
	// item. A failure stops the loop and leaves earlier items written.
	InsertMenuItems(ctx context.Context, items []llm.MenuItem) error

	// ListMenuItems returns all rows, newest created_at first, ties by id desc.
	ListMenuItems(ctx context.Context) ([]Record, error)
}
