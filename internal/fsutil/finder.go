// Package fsutil provides file system helpers for locating schema documents.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindSchemaFile resolves the schema document behind path. A regular file is
// returned as-is; a directory is searched recursively and must contain
// exactly one file with the given extension.
func FindSchemaFile(path string, extension string) (string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}

	var matches []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s file found under %s", extension, path)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("found %d %s files under %s, expected exactly one", len(matches), extension, path)
	}
}
