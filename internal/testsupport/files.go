package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteRawFile writes data to dir/name verbatim, creating dir when needed,
// and returns the full path. Tests use it for malformed project documents
// that the serializer would never produce.
func WriteRawFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
