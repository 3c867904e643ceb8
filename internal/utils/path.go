package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// CatalogPathCandidates lists the locations tried for a relative catalog
// file path, in order: as given, relative to the executable, relative to
// the working directory.
func CatalogPathCandidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}

	candidates := []string{path}
	if execDir, err := GetExecutableDir(); err == nil {
		candidates = append(candidates, filepath.Join(execDir, path))
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	return candidates
}

// FindCatalogFile resolves a user-supplied catalog path against the
// candidate locations. Returns the path unchanged when nothing exists, so
// the caller's open error names what the user typed.
func FindCatalogFile(path string) string {
	for _, candidate := range CatalogPathCandidates(path) {
		if FileExists(candidate) {
			log.Debugf("Resolved catalog file: %s", candidate)
			return candidate
		}
		log.Debugf("Catalog path candidate not found: %s", candidate)
	}
	return path
}
