package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteArtifact writes a into dir and returns the written path. The file
// is left untouched when its content already matches.
func WriteArtifact(a Artifact, dir string) (string, error) {
	err := os.MkdirAll(dir, dirPerm)
	if err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, a.FileName())

	if old, err := os.ReadFile(path); err == nil && string(old) == a.Text {
		return path, nil
	}

	if err := os.WriteFile(path, []byte(a.Text), filePerm); err != nil {
		return "", fmt.Errorf("writing file %s: %w", a.FileName(), err)
	}

	return path, nil
}

// RemoveArtifact deletes the file of a retired artifact from dir, along
// with its debug sidecar. Missing files are not an error; removed reports
// whether the artifact file itself existed.
func RemoveArtifact(a Artifact, dir string) (removed bool, err error) {
	for i, name := range []string{a.FileName(), debugName(a.FileName())} {
		err := os.Remove(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return removed, fmt.Errorf("removing %s: %w", name, err)
		}

		if i == 0 {
			removed = true
		}
	}

	return removed, nil
}
