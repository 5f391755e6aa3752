package testing_util

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func MkdirTemp(t *testing.T, prefix string) (path string, cleanup func()) {
	out, err := os.MkdirTemp(os.TempDir(), prefix)
	if err != nil {
		t.Fatalf("failed to create temporary directory: %v", err)
	}

	if err := os.Chmod(out, 0o777); err != nil {
		t.Fatalf("failed to make temporary directory accessible: %s", err)
	}

	return out, func() {
		os.RemoveAll(out)
	}
}

// WriteTempFiles writes each of contents to its own file in a fresh
// temporary directory.
func WriteTempFiles(t *testing.T, prefix string, contents ...string) (paths []string, cleanup func()) {
	dir, cleanup := MkdirTemp(t, prefix)

	for i, content := range contents {
		path := filepath.Join(dir, fmt.Sprintf("input_%d.txt", i))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			cleanup()
			t.Fatalf("failed to write %q: %v", path, err)
		}
		paths = append(paths, path)
	}

	return paths, cleanup
}
