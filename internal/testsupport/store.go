package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"splice/internal/config"
	"splice/internal/project"
	"splice/internal/recent"
)

// MustOpenRecent opens a recent.Store for tests and registers cleanup.
func MustOpenRecent(t testing.TB, cfg *config.Config) *recent.Store {
	t.Helper()

	store, err := recent.Open(cfg)
	if err != nil {
		t.Fatalf("recent.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// WriteProject serializes p to name inside dir and returns the full path.
func WriteProject(t testing.TB, dir, name string, p *project.Project) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := (project.FileSerializer{}).Serialize(context.Background(), p, path); err != nil {
		t.Fatalf("serialize %s: %v", path, err)
	}
	return path
}

// SampleProject returns a small project with one sequence and one media item.
func SampleProject(sequence string) *project.Project {
	p := project.New()
	p.Media = append(p.Media, project.Media{ID: "m1", Path: "/footage/a.mov", Kind: "video"})
	p.Sequences = append(p.Sequences, project.Sequence{
		Name:      sequence,
		Width:     1920,
		Height:    1080,
		FrameRate: 25,
		OutPoint:  100,
		Clips:     []project.Clip{{MediaID: "m1", In: 0, Out: 100}},
	})
	p.ActiveSequence = sequence
	return p
}
