package menu

import (
	"time"

	"github.com/siva9346/formating-app/internal/llm"
)

// Record is a persisted menu_items row.
type Record struct {
	ID          int64     `json:"id"`
	DishName    string    `json:"dish_name"`
	Category    *string   `json:"category"`
	Ingredients []string  `json:"ingredients"`
	Price       *string   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProcessResult is the body of a successful upload.
type ProcessResult struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

func recordFromItem(id int64, item llm.MenuItem, createdAt time.Time) Record {
	return Record{
		ID:          id,
		DishName:    item.DishName,
		Category:    item.Category,
		Ingredients: item.Ingredients,
		Price:       item.Price,
		CreatedAt:   createdAt,
	}
}
