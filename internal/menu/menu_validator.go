package menu

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrMissingFile = errors.New("missing file")
	ErrFileType    = errors.New("only .txt files are allowed")
)

var allowedExt = map[string]bool{
	".txt": true,
}

// ValidateFileExtension accepts plain-text chat exports only.
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if !allowedExt[ext] {
		return ErrFileType
	}

	return nil
}
