package llm

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture %q: %v", s, err)
	}
	return v
}

func TestValidateExtraction_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty list", `{"menu_items":[]}`, 0},
		{"all fields", `{"menu_items":[{"dish_name":"Butter Chicken","category":"Main","ingredients":["chicken","butter"],"price":"₹250"}]}`, 1},
		{"nulls", `{"menu_items":[{"dish_name":"Naan","category":null,"ingredients":null,"price":null}]}`, 1},
		{"absent optionals", `{"menu_items":[{"dish_name":"Naan"},{"dish_name":"Roti"}]}`, 2},
		{"unknown keys ignored", `{"menu_items":[{"dish_name":"Naan","spicy":true}],"note":"x"}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateExtraction(decode(t, tt.input))
			if !res.OK {
				t.Fatalf("expected valid, got issues: %s", res.Summary())
			}
			if len(res.Extraction.MenuItems) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(res.Extraction.MenuItems))
			}
		})
	}
}

func TestValidateExtraction_NullsBecomeNil(t *testing.T) {
	res := ValidateExtraction(decode(t, `{"menu_items":[{"dish_name":"Naan","category":null}]}`))
	if !res.OK {
		t.Fatalf("unexpected issues: %s", res.Summary())
	}

	item := res.Extraction.MenuItems[0]
	if item.Category != nil || item.Price != nil || item.Ingredients != nil {
		t.Fatalf("expected nil optionals, got %+v", item)
	}
}

func TestValidateExtraction_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"array root", `[]`, "$"},
		{"missing menu_items", `{}`, "menu_items"},
		{"menu_items not array", `{"menu_items":{}}`, "menu_items"},
		{"item not object", `{"menu_items":["Naan"]}`, "menu_items.0"},
		{"missing dish_name", `{"menu_items":[{"price":"10"}]}`, "menu_items.0.dish_name"},
		{"empty dish_name", `{"menu_items":[{"dish_name":""}]}`, "menu_items.0.dish_name"},
		{"numeric dish_name", `{"menu_items":[{"dish_name":42}]}`, "menu_items.0.dish_name"},
		{"numeric price", `{"menu_items":[{"dish_name":"Naan","price":40}]}`, "menu_items.0.price"},
		{"empty category", `{"menu_items":[{"dish_name":"Naan","category":""}]}`, "menu_items.0.category"},
		{"ingredients string", `{"menu_items":[{"dish_name":"Naan","ingredients":"flour"}]}`, "menu_items.0.ingredients"},
		{"empty ingredient", `{"menu_items":[{"dish_name":"Naan","ingredients":["flour",""]}]}`, "menu_items.0.ingredients.1"},
		{"second item bad", `{"menu_items":[{"dish_name":"Naan"},{"dish_name":null}]}`, "menu_items.1.dish_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateExtraction(decode(t, tt.input))
			if res.OK {
				t.Fatal("expected validation failure")
			}
			if len(res.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			if res.Issues[0].Path != tt.wantPath {
				t.Errorf("expected issue at %q, got %q (%s)", tt.wantPath, res.Issues[0].Path, res.Summary())
			}
			if len(res.Extraction.MenuItems) != 0 {
				t.Errorf("failed validation must not carry items")
			}
		})
	}
}
