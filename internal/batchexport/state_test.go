package batchexport

import "testing"

func TestNewStateDefaultsToSentinels(t *testing.T) {
	s := NewState()
	job := s.Snapshot()
	if job.StartFrame != Unset || job.EndFrame != Unset {
		t.Fatalf("expected sentinel bounds, got %+v", job)
	}
	if job.IsBatchMode {
		t.Fatal("expected batch mode off by default")
	}
	if job.OutputName != "" {
		t.Fatalf("expected empty output name, got %q", job.OutputName)
	}
}

func TestSettersStoreRawValues(t *testing.T) {
	s := NewState()
	s.SetStartFrame(500)
	s.SetEndFrame(10) // inverted ranges are the consumer's problem
	s.SetOutputName("render")
	s.SetBatchMode(true)
	s.SetFormat(FormatPNG)

	if s.StartFrame() != 500 || s.EndFrame() != 10 {
		t.Fatalf("unexpected bounds %d..%d", s.StartFrame(), s.EndFrame())
	}
	if s.OutputName() != "render" || !s.IsBatchMode() || s.Format() != FormatPNG {
		t.Fatalf("unexpected job %+v", s.Snapshot())
	}

	s.Reset()
	if s.Snapshot() != defaultJob() {
		t.Fatalf("expected defaults after reset, got %+v", s.Snapshot())
	}
}

func TestJobRangeResolvesSentinels(t *testing.T) {
	tests := []struct {
		name       string
		job        Job
		in, out    int64
		start, end int64
	}{
		{"both unset", Job{StartFrame: Unset, EndFrame: Unset}, 10, 90, 10, 90},
		{"start explicit", Job{StartFrame: 20, EndFrame: Unset}, 10, 90, 20, 90},
		{"end explicit", Job{StartFrame: Unset, EndFrame: 40}, 10, 90, 10, 40},
		{"both explicit", Job{StartFrame: 0, EndFrame: 5}, 10, 90, 0, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.job.Range(tc.in, tc.out)
			if start != tc.start || end != tc.end {
				t.Fatalf("Range = %d..%d, want %d..%d", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for f, name := range formatNames {
		got, err := ParseFormat(" " + name + " ")
		if err != nil || got != f {
			t.Fatalf("ParseFormat(%q) = %v, %v", name, got, err)
		}
		if f.String() != name {
			t.Fatalf("String() = %q, want %q", f.String(), name)
		}
	}
	if _, err := ParseFormat("mkv"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
