// Package registry locates GGUF model files on disk.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"auracore/internal/common/fsutil"
	"auracore/pkg/types"
)

// ErrNoModel is returned when a directory holds no *.gguf file.
var ErrNoModel = errors.New("no .gguf model found")

// LoadDir scans a directory for *.gguf files (case-insensitive) and returns
// them sorted by ID. ID is the filename; Path is absolute.
func LoadDir(dir string) ([]types.Model, error) {
	abs, err := fsutil.AbsPath(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() || !isGGUF(e.Name()) {
			continue
		}
		mdl := types.Model{ID: e.Name(), Path: filepath.Join(abs, e.Name())}
		if info, err := e.Info(); err == nil {
			mdl.SizeBytes = info.Size()
		}
		models = append(models, mdl)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// Resolve turns a configured model path into a file path. A file is
// returned as-is (made absolute); a directory resolves to its first model
// by name.
func Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("model path is empty")
	}
	abs, err := fsutil.AbsPath(path)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat model: %w", err)
	}
	if !fi.IsDir() {
		return abs, nil
	}
	models, err := LoadDir(abs)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoModel, abs)
	}
	return models[0].Path, nil
}

func isGGUF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".gguf")
}
