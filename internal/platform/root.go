package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/inspekt/pkg/config"
)

// ErrRootNotFound is returned when no project config exists above a directory.
var ErrRootNotFound = errors.New("root not found")

// FindRoot looks upwards from startDir for a directory holding inspekt.yaml
// and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, config.FileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

// FindConfig returns the path of the nearest inspekt.yaml above startDir.
func FindConfig(startDir string) (string, error) {
	root, err := FindRoot(startDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, config.FileName), nil
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
