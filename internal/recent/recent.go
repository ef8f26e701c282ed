package recent

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one recent project.
type Entry struct {
	Path     string
	OpenedAt time.Time
}

// Add records path as the most recently used project and trims the list.
// Timestamps are kept strictly increasing so ordering survives clock skew.
func (s *Store) Add(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("recent: path cannot be empty")
	}
	path = filepath.Clean(path)
	stamp := s.now().UnixNano()

	if err := s.exec(ctx,
		`INSERT INTO recent_projects (path, opened_at)
		 VALUES (?, MAX(?, COALESCE((SELECT MAX(opened_at) FROM recent_projects), 0) + 1))
		 ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at`,
		path, stamp); err != nil {
		return fmt.Errorf("record recent project: %w", err)
	}
	if err := s.exec(ctx,
		`DELETE FROM recent_projects WHERE path NOT IN (
		   SELECT path FROM recent_projects ORDER BY opened_at DESC LIMIT ?)`,
		s.maxEntries); err != nil {
		return fmt.Errorf("trim recent projects: %w", err)
	}
	return nil
}

// Entries returns the recent projects, newest first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, opened_at FROM recent_projects ORDER BY opened_at DESC LIMIT ?", s.maxEntries)
	if err != nil {
		return nil, fmt.Errorf("list recent projects: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			path  string
			stamp int64
		)
		if err := rows.Scan(&path, &stamp); err != nil {
			return nil, fmt.Errorf("scan recent project: %w", err)
		}
		entries = append(entries, Entry{Path: path, OpenedAt: time.Unix(0, stamp)})
	}
	return entries, rows.Err()
}

// List returns the recent project paths, newest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}

// Remove deletes path from the list.
func (s *Store) Remove(ctx context.Context, path string) error {
	if err := s.exec(ctx, "DELETE FROM recent_projects WHERE path = ?", filepath.Clean(path)); err != nil {
		return fmt.Errorf("remove recent project: %w", err)
	}
	return nil
}

// Clear empties the list.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.exec(ctx, "DELETE FROM recent_projects"); err != nil {
		return fmt.Errorf("clear recent projects: %w", err)
	}
	return nil
}
