package llm

import (
	"context"
)

// Extractor turns raw chat text into deduplicated menu items.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]MenuItem, error)
}
