package util

import (
	"path/filepath"

	"github.com/google/uuid"
)

// GenerateStorageKey returns a unique blob key, keeping the original file
// extension so downloads get a usable filename.
func GenerateStorageKey(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}
