package batchexport

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"splice/internal/fileutil"
	"splice/internal/project"
	"splice/internal/textutil"
)

// Manifest is the render plan an export consumer writes for one batch job.
type Manifest struct {
	Sequence   string         `json:"sequence"`
	Format     string         `json:"format"`
	OutputName string         `json:"output_name"`
	StartFrame int64          `json:"start_frame"`
	EndFrame   int64          `json:"end_frame"`
	FrameRate  float64        `json:"frame_rate"`
	Clips      []project.Clip `json:"clips"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ErrNoActiveSequence is returned when the project has nothing to render.
var ErrNoActiveSequence = errors.New("project has no active sequence")

// BuildManifest resolves job against the active sequence of p. Unset bounds
// fall back to the sequence in/out points; clips entirely outside the range
// are dropped.
func BuildManifest(job Job, p *project.Project, now time.Time) (Manifest, error) {
	if p == nil {
		return Manifest{}, ErrNoActiveSequence
	}
	seq, ok := p.Sequence(p.ActiveSequence)
	if !ok {
		return Manifest{}, fmt.Errorf("%w: %q", ErrNoActiveSequence, p.ActiveSequence)
	}
	name := strings.TrimSpace(job.OutputName)
	if name == "" {
		return Manifest{}, errors.New("batch export output name is empty")
	}
	start, end := job.Range(seq.InPoint, seq.OutPoint)
	if end < start {
		return Manifest{}, fmt.Errorf("batch export range %d-%d is inverted", start, end)
	}

	clips := make([]project.Clip, 0, len(seq.Clips))
	for _, clip := range seq.Clips {
		if clip.Out < start || clip.In > end {
			continue
		}
		clips = append(clips, clip)
	}
	return Manifest{
		Sequence:   seq.Name,
		Format:     job.Format.String(),
		OutputName: name,
		StartFrame: start,
		EndFrame:   end,
		FrameRate:  seq.FrameRate,
		Clips:      clips,
		CreatedAt:  now.UTC(),
	}, nil
}

// Path returns where the manifest for m is written inside dir.
func (m Manifest) Path(dir string) string {
	return filepath.Join(dir, textutil.SanitizeFileName(m.OutputName, "export")+"."+m.Format+".json")
}

// Write stores m inside dir and returns the file path.
func (m Manifest) Write(dir string) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export manifest: %w", err)
	}
	path := m.Path(dir)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export manifest: %w", err)
	}
	return path, nil
}
