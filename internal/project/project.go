package project

import (
	"maps"
	"slices"
	"strconv"

	"github.com/google/uuid"
)

// CurrentVersion is the document version written by this build.
const CurrentVersion = 1

// Media references a source file used by the project.
type Media struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Clip places media on a sequence.
type Clip struct {
	MediaID    string            `json:"media_id"`
	Track      int               `json:"track"`
	In         int64             `json:"in"`
	Out        int64             `json:"out"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Sequence is a timeline.
type Sequence struct {
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FrameRate float64 `json:"frame_rate"`
	InPoint   int64   `json:"in_point"`
	OutPoint  int64   `json:"out_point"`
	Clips     []Clip  `json:"clips,omitempty"`
}

// Project is the document content. It carries no file path: where the
// project lives is tracked separately.
type Project struct {
	Version        int        `json:"version"`
	Sequences      []Sequence `json:"sequences"`
	Media          []Media    `json:"media"`
	ActiveSequence string     `json:"active_sequence,omitempty"`
}

// New returns an empty project at the current version.
func New() *Project {
	return &Project{Version: CurrentVersion, Sequences: []Sequence{}, Media: []Media{}}
}

// Clone returns a deep copy.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := &Project{
		Version:        p.Version,
		ActiveSequence: p.ActiveSequence,
		Media:          slices.Clone(p.Media),
		Sequences:      make([]Sequence, len(p.Sequences)),
	}
	for i, seq := range p.Sequences {
		seq.Clips = slices.Clone(seq.Clips)
		for j := range seq.Clips {
			seq.Clips[j].Attributes = maps.Clone(seq.Clips[j].Attributes)
		}
		out.Sequences[i] = seq
	}
	out.normalize()
	return out
}

// normalize gives collections the shape they have after a round trip through
// the file format: top-level lists are non-nil, empty clip lists and
// attribute maps are nil.
func (p *Project) normalize() {
	if p.Sequences == nil {
		p.Sequences = []Sequence{}
	}
	if p.Media == nil {
		p.Media = []Media{}
	}
	for i := range p.Sequences {
		seq := &p.Sequences[i]
		if len(seq.Clips) == 0 {
			seq.Clips = nil
		}
		for j := range seq.Clips {
			if len(seq.Clips[j].Attributes) == 0 {
				seq.Clips[j].Attributes = nil
			}
		}
	}
}

// Sequence returns the named sequence.
func (p *Project) Sequence(name string) (*Sequence, bool) {
	for i := range p.Sequences {
		if p.Sequences[i].Name == name {
			return &p.Sequences[i], true
		}
	}
	return nil, false
}

// Merge appends the content of other into p. Media IDs that collide with
// existing media are re-keyed and the imported clips follow them; sequence
// names that collide get a numeric suffix. other is not modified.
func (p *Project) Merge(other *Project) {
	if other == nil {
		return
	}
	incoming := other.Clone()

	existingMedia := make(map[string]struct{}, len(p.Media))
	for _, m := range p.Media {
		existingMedia[m.ID] = struct{}{}
	}
	rekey := make(map[string]string)
	for _, m := range incoming.Media {
		if _, taken := existingMedia[m.ID]; taken || m.ID == "" {
			fresh := uuid.NewString()
			rekey[m.ID] = fresh
			m.ID = fresh
		}
		existingMedia[m.ID] = struct{}{}
		p.Media = append(p.Media, m)
	}

	names := make(map[string]struct{}, len(p.Sequences))
	for _, seq := range p.Sequences {
		names[seq.Name] = struct{}{}
	}
	for _, seq := range incoming.Sequences {
		seq.Name = uniqueName(seq.Name, names)
		names[seq.Name] = struct{}{}
		for i := range seq.Clips {
			if fresh, ok := rekey[seq.Clips[i].MediaID]; ok {
				seq.Clips[i].MediaID = fresh
			}
		}
		p.Sequences = append(p.Sequences, seq)
	}
	if p.ActiveSequence == "" && len(p.Sequences) > 0 {
		p.ActiveSequence = p.Sequences[0].Name
	}
}

func uniqueName(name string, taken map[string]struct{}) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for n := 2; ; n++ {
		candidate := name + " " + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
