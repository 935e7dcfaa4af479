package llm

// MenuItem is one dish extracted from a chat export.
// Nil pointers and a nil Ingredients slice mean the model returned null or
// omitted the field.
type MenuItem struct {
	DishName    string   `json:"dish_name"`
	Category    *string  `json:"category"`
	Ingredients []string `json:"ingredients"`
	Price       *string  `json:"price"`
}

// Extraction is the document the model is asked to produce.
type Extraction struct {
	MenuItems []MenuItem `json:"menu_items"`
}
