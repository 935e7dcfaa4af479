package menu

import (
	"context"
	"fmt"

	"github.com/siva9346/formating-app/internal/llm"
	"github.com/siva9346/formating-app/pkg/metrics"
	"github.com/siva9346/formating-app/pkg/tracer"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// SCHEMA
// --------------------------------------------------
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			dish_name TEXT NOT NULL,
			category TEXT,
			ingredients TEXT[],
			price TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT unique_dish UNIQUE (dish_name)
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure menu_items schema: %w", err)
	}
	return nil
}

// --------------------------------------------------
// UPSERT (ONE STATEMENT PER ITEM, NO BATCH TX)
// --------------------------------------------------
func (r *PostgresRepository) InsertMenuItems(
	ctx context.Context,
	items []llm.MenuItem,
) error {

	if len(items) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "menu.InsertMenuItems")
	defer span.End()
	span.SetAttributes(attribute.Int("menu.items", len(items)))

	for _, item := range items {
		_, err := r.db.Exec(ctx, `
			INSERT INTO menu_items (dish_name, category, ingredients, price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (dish_name) DO UPDATE SET
				category = EXCLUDED.category,
				ingredients = EXCLUDED.ingredients,
				price = EXCLUDED.price
		`, item.DishName, item.Category, item.Ingredients, item.Price)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("upsert %q: %w", item.DishName, err)
		}
		metrics.ItemsUpserted.Inc()
	}

	return nil
}

// --------------------------------------------------
// LIST (MOST RECENT FIRST)
// --------------------------------------------------
func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, dish_name, category, ingredients, price, created_at
		FROM menu_items
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}

	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.DishName,
			&rec.Category,
			&rec.Ingredients,
			&rec.Price,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
