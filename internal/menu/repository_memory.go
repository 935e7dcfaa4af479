package menu

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/siva9346/formating-app/internal/llm"
)

// InMemoryRepository mirrors the Postgres upsert and ordering rules without
// a database. Uniqueness is on the exact dish name, like the unique_dish
// constraint.
type InMemoryRepository struct {
	mu      sync.Mutex
	rows    map[string]*Record
	nextID  int64
	now     func() time.Time
	failOn  string
	schemas int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		rows:   make(map[string]*Record),
		nextID: 1,
		now:    time.Now,
	}
}

// SetClock replaces the time source used for created_at.
func (r *InMemoryRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// FailOn makes InsertMenuItems return an error when it reaches dishName.
func (r *InMemoryRepository) FailOn(dishName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failOn = dishName
}

func (r *InMemoryRepository) EnsureSchema(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas++
	return nil
}

// SchemaCalls reports how many times EnsureSchema ran.
func (r *InMemoryRepository) SchemaCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.schemas
}

func (r *InMemoryRepository) InsertMenuItems(ctx context.Context, items []llm.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if r.failOn != "" && item.DishName == r.failOn {
			return &UpsertError{DishName: item.DishName}
		}

		if existing, ok := r.rows[item.DishName]; ok {
			existing.Category = item.Category
			existing.Ingredients = item.Ingredients
			existing.Price = item.Price
			continue
		}

		rec := recordFromItem(r.nextID, item, r.now())
		r.nextID++
		r.rows[item.DishName] = &rec
	}
	return nil
}

func (r *InMemoryRepository) ListMenuItems(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Record, 0, len(r.rows))
	for _, rec := range r.rows {
		out = append(out, *rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpsertError is returned by InMemoryRepository.FailOn.
type UpsertError struct {
	DishName string
}

func (e *UpsertError) Error() string {
	return "upsert " + e.DishName + ": simulated failure"
}
