package batchexport

import (
	"fmt"
	"strings"
	"sync"
)

// Unset marks a frame bound that should fall back to the sequence in/out point.
const Unset int64 = -1

// Format selects the container or image sequence a batch export produces.
type Format int

const (
	FormatAVI Format = iota
	FormatMPEG4
	FormatPNG
	FormatTIFF
	FormatMP3
)

var formatNames = map[Format]string{
	FormatAVI:   "avi",
	FormatMPEG4: "mpeg4",
	FormatPNG:   "png",
	FormatTIFF:  "tiff",
	FormatMP3:   "mp3",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat resolves a format name such as "mpeg4" or "png".
func ParseFormat(value string) (Format, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for f, name := range formatNames {
		if name == value {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unsupported batch export format %q", value)
}

// Job is a copy of the batch export parameters.
type Job struct {
	StartFrame  int64
	EndFrame    int64
	OutputName  string
	IsBatchMode bool
	Format      Format
}

// Range resolves Unset bounds against the sequence in/out points.
func (j Job) Range(in, out int64) (int64, int64) {
	start, end := j.StartFrame, j.EndFrame
	if start == Unset {
		start = in
	}
	if end == Unset {
		end = out
	}
	return start, end
}

// State is the mutable batch export parameter set. It is safe for concurrent
// use so the export collaborator can read while the front end writes.
type State struct {
	mu  sync.RWMutex
	job Job
}

// NewState returns a state with both frame bounds Unset.
func NewState() *State {
	return &State{job: defaultJob()}
}

func defaultJob() Job {
	return Job{StartFrame: Unset, EndFrame: Unset, Format: FormatMPEG4}
}

func (s *State) StartFrame() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job.StartFrame
}

func (s *State) SetStartFrame(n int64) {
	s.mu.Lock()
	s.job.StartFrame = n
	s.mu.Unlock()
}

func (s *State) EndFrame() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job.EndFrame
}

func (s *State) SetEndFrame(n int64) {
	s.mu.Lock()
	s.job.EndFrame = n
	s.mu.Unlock()
}

func (s *State) OutputName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job.OutputName
}

func (s *State) SetOutputName(name string) {
	s.mu.Lock()
	s.job.OutputName = name
	s.mu.Unlock()
}

func (s *State) IsBatchMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job.IsBatchMode
}

func (s *State) SetBatchMode(enabled bool) {
	s.mu.Lock()
	s.job.IsBatchMode = enabled
	s.mu.Unlock()
}

func (s *State) Format() Format {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job.Format
}

func (s *State) SetFormat(f Format) {
	s.mu.Lock()
	s.job.Format = f
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of all parameters.
func (s *State) Snapshot() Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.job
}

// Reset restores the defaults.
func (s *State) Reset() {
	s.mu.Lock()
	s.job = defaultJob()
	s.mu.Unlock()
}
