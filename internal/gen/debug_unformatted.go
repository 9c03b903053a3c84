package gen

import (
	"os"
	"path/filepath"
)

// WriteDebugUnformatted writes the unformatted text of a to a sidecar file
// next to the intended output. This is best-effort and should never make
// generation fail harder.
func WriteDebugUnformatted(dir string, a Artifact) error {
	if dir == "" || a.Text == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, debugName(a.FileName())), []byte(a.Text), filePerm)
}

// debugName must not end in .go: the sidecar sits in the model's package
// and would otherwise break its build.
func debugName(filename string) string {
	return filename + ".unformatted"
}
