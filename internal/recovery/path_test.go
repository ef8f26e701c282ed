package recovery

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDerivePath(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 30, 5, 0, time.UTC)
	dir := filepath.FromSlash("/work")
	original := filepath.Join(dir, "film.ove")
	first := filepath.Join(dir, "film (recovered 2026-10-15 093005).ove")
	second := filepath.Join(dir, "film (recovered 2026-10-15 093005) 2.ove")

	tests := []struct {
		name     string
		original string
		taken    map[string]bool
		want     string
	}{
		{"unsaved project", "", nil, ""},
		{"free name", original, nil, first},
		{"collision", original, map[string]bool{first: true}, second},
		{"double collision", original, map[string]bool{first: true, second: true},
			filepath.Join(dir, "film (recovered 2026-10-15 093005) 3.ove")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePath(tc.original, now, func(p string) bool { return tc.taken[p] })
			if got != tc.want {
				t.Fatalf("DerivePath = %q, want %q", got, tc.want)
			}
			if tc.original != "" && got == tc.original {
				t.Fatal("derived path must differ from the original")
			}
		})
	}
}

func TestDerivePathKeepsDirectoryAndExtension(t *testing.T) {
	got := DerivePath("/a/b/My Cut.v2.ove", time.Unix(0, 0).UTC(), nil)
	if filepath.Dir(got) != "/a/b" {
		t.Fatalf("expected sibling of original, got %q", got)
	}
	if filepath.Ext(got) != ".ove" {
		t.Fatalf("expected extension preserved, got %q", got)
	}
}
