package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"splice/internal/failure"
	"splice/internal/fileutil"
)

// Serializer reads and writes project documents.
type Serializer interface {
	Serialize(ctx context.Context, p *Project, path string) error
	Deserialize(ctx context.Context, path string) (*Project, error)
}

// FileSerializer stores projects as indented JSON files.
type FileSerializer struct{}

// NewFileSerializer returns the default on-disk serializer.
func NewFileSerializer() FileSerializer {
	return FileSerializer{}
}

// Serialize writes p to path atomically.
func (FileSerializer) Serialize(ctx context.Context, p *Project, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return errors.New("serialize: nil project")
	}
	doc := p.Clone()
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return failure.Wrap(failure.ErrIO, "project", "serialize", path, err)
	}
	return nil
}

// Deserialize reads the project stored at path.
func (FileSerializer) Deserialize(ctx context.Context, path string) (*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrIO, "project", "deserialize", path, err)
	}
	var doc Project
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, failure.Wrap(failure.ErrDeserialize, "project", "deserialize", path, err)
	}
	switch {
	case doc.Version <= 0:
		return nil, failure.Wrap(failure.ErrDeserialize, "project", "deserialize", fmt.Sprintf("%s: missing document version", path), nil)
	case doc.Version > CurrentVersion:
		return nil, failure.Wrap(failure.ErrDeserialize, "project", "deserialize",
			fmt.Sprintf("%s: document version %d is newer than supported version %d", path, doc.Version, CurrentVersion), nil)
	}
	doc.normalize()
	return &doc, nil
}
