package llm

import (
	"fmt"
	"strings"
)

// Issue is a single schema violation, Path is a dotted JSON path.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// ValidationResult is the outcome of ValidateExtraction. Exactly one of
// Extraction (OK true) or Issues (OK false) is meaningful.
type ValidationResult struct {
	OK         bool
	Extraction Extraction
	Issues     []Issue
}

// Summary joins all issues into one line for logging.
func (r ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

// ValidateExtraction checks an untyped JSON value (as produced by
// json.Unmarshal into any) against { menu_items: MenuItem[] }.
// Unknown keys are ignored. Absent optional fields become nil.
func ValidateExtraction(v any) ValidationResult {
	var issues []Issue

	root, ok := v.(map[string]any)
	if !ok {
		return invalid(Issue{Path: "$", Message: "expected object, got " + typeName(v)})
	}

	rawItems, ok := root["menu_items"].([]any)
	if !ok {
		return invalid(Issue{Path: "menu_items", Message: "expected array, got " + typeName(root["menu_items"])})
	}

	items := make([]MenuItem, 0, len(rawItems))
	for i, raw := range rawItems {
		path := fmt.Sprintf("menu_items.%d", i)

		obj, ok := raw.(map[string]any)
		if !ok {
			issues = append(issues, Issue{Path: path, Message: "expected object, got " + typeName(raw)})
			continue
		}

		var item MenuItem
		var itemIssues []Issue

		name, ok := obj["dish_name"].(string)
		switch {
		case !ok:
			itemIssues = append(itemIssues, Issue{Path: path + ".dish_name", Message: "expected string, got " + typeName(obj["dish_name"])})
		case name == "":
			itemIssues = append(itemIssues, Issue{Path: path + ".dish_name", Message: "must not be empty"})
		default:
			item.DishName = name
		}

		var issue *Issue
		if item.Category, issue = optionalText(obj, "category", path); issue != nil {
			itemIssues = append(itemIssues, *issue)
		}
		if item.Price, issue = optionalText(obj, "price", path); issue != nil {
			itemIssues = append(itemIssues, *issue)
		}
		if item.Ingredients, issue = optionalTextList(obj, "ingredients", path); issue != nil {
			itemIssues = append(itemIssues, *issue)
		}

		if len(itemIssues) > 0 {
			issues = append(issues, itemIssues...)
			continue
		}
		items = append(items, item)
	}

	if len(issues) > 0 {
		return ValidationResult{Issues: issues}
	}

	return ValidationResult{OK: true, Extraction: Extraction{MenuItems: items}}
}

func invalid(issue Issue) ValidationResult {
	return ValidationResult{Issues: []Issue{issue}}
}

// optionalText accepts an absent key, null, or a non-empty string.
func optionalText(obj map[string]any, key, path string) (*string, *Issue) {
	raw, present := obj[key]
	if !present || raw == nil {
		return nil, nil
	}

	s, ok := raw.(string)
	if !ok {
		return nil, &Issue{Path: path + "." + key, Message: "expected string or null, got " + typeName(raw)}
	}
	if s == "" {
		return nil, &Issue{Path: path + "." + key, Message: "must not be empty"}
	}
	return &s, nil
}

// optionalTextList accepts an absent key, null, or an array of non-empty strings.
func optionalTextList(obj map[string]any, key, path string) ([]string, *Issue) {
	raw, present := obj[key]
	if !present || raw == nil {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &Issue{Path: path + "." + key, Message: "expected array or null, got " + typeName(raw)}
	}

	out := make([]string, 0, len(list))
	for i, entry := range list {
		s, ok := entry.(string)
		if !ok {
			return nil, &Issue{Path: fmt.Sprintf("%s.%s.%d", path, key, i), Message: "expected string, got " + typeName(entry)}
		}
		if s == "" {
			return nil, &Issue{Path: fmt.Sprintf("%s.%s.%d", path, key, i), Message: "must not be empty"}
		}
		out = append(out, s)
	}
	return out, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
