package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/bizlens/internal/dataset"
)

// DefaultExtensions are the upload types accepted when none are configured.
var DefaultExtensions = []string{".csv", ".xlsx", ".json"}

// Accepts reports whether name looks like an upload. Hidden files and
// editor or download temporaries are ignored. Extensions compare
// case-insensitively.
func Accepts(name string, extensions []string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// BuildUpload describes the file at path. Only its metadata is read.
func BuildUpload(path, source string) (dataset.Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return dataset.Upload{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return dataset.Upload{}, fmt.Errorf("%s is a directory", path)
	}
	return dataset.Upload{
		Name:   info.Name(),
		Size:   info.Size(),
		Source: source,
	}, nil
}
