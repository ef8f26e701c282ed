package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"splice/internal/batchexport"
	"splice/internal/fileutil"
	"splice/internal/project"
	"splice/internal/recovery"
	"splice/internal/testsupport"
)

func TestExportWritesManifest(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteProject(t, env.baseDir, "film.ove", testsupport.SampleProject("Main"))

	out, stderr, err := runCLI(t, env, "", "export", "--project", path, "--name", "final", "--format", "png", "--end", "80")
	if err != nil {
		t.Fatalf("export: %v (stderr %s)", err, stderr)
	}
	requireContains(t, out, "Wrote png manifest")

	data, err := os.ReadFile(filepath.Join(env.cfg.Export.ManifestDir, "final.png.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest batchexport.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if manifest.StartFrame != 0 || manifest.EndFrame != 80 || manifest.Sequence != "Main" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}

	out, _, err = runCLI(t, env, "", "recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	requireContains(t, out, path)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteProject(t, env.baseDir, "film.ove", testsupport.SampleProject("Main"))

	if _, _, err := runCLI(t, env, "", "export", "--project", path, "--name", "final", "--format", "gif"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExportFailsForMissingProject(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env, "", "export", "--project", filepath.Join(env.baseDir, "nope.ove"), "--name", "final")
	if err == nil {
		t.Fatal("expected load error")
	}
	requireContains(t, err.Error(), "load project")
}

func TestRecentClear(t *testing.T) {
	env := setupCLITestEnv(t)
	store := testsupport.MustOpenRecent(t, env.cfg)
	if err := store.Add(context.Background(), "/projects/a.ove"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	out, _, err := runCLI(t, env, "", "recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	requireContains(t, out, "/projects/a.ove")

	out, _, err = runCLI(t, env, "", "recent", "--clear")
	if err != nil {
		t.Fatalf("recent --clear: %v", err)
	}
	requireContains(t, out, "Recent projects cleared")

	out, _, err = runCLI(t, env, "", "recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	requireContains(t, out, "No recent projects")
}

func TestRecoveryStatusExportDiscard(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "recovery", "status")
	if err != nil {
		t.Fatalf("recovery status: %v", err)
	}
	requireContains(t, out, "Snapshot present")
	requireContains(t, out, "Preflight:")

	slot := recovery.NewSlot(env.cfg.RecoverySlotPath(), nil)
	if ok, err := slot.Acquire(); err != nil || !ok {
		t.Fatalf("Acquire = %v, %v", ok, err)
	}
	meta := recovery.Meta{OriginalPath: "/projects/film.ove", SavedAt: time.Now(), Revision: 4}
	if err := slot.Write(context.Background(), project.NewFileSerializer(), testsupport.SampleProject("Main"), meta); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, _, err := runCLI(t, env, "", "recovery", "discard"); !errors.Is(err, errSlotInUse) {
		t.Fatalf("discard while a session holds the slot = %v, want errSlotInUse", err)
	}
	busyDest := filepath.Join(env.baseDir, "busy")
	if _, _, err := runCLI(t, env, "", "recovery", "export", busyDest); !errors.Is(err, errSlotInUse) {
		t.Fatalf("export while a session holds the slot = %v, want errSlotInUse", err)
	}
	if fileutil.Exists(busyDest + ".ove") {
		t.Fatal("export must not copy a snapshot owned by a running session")
	}
	if err := slot.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	out, _, err = runCLI(t, env, "", "recovery", "status")
	if err != nil {
		t.Fatalf("recovery status: %v", err)
	}
	requireContains(t, out, "/projects/film.ove")

	dest := filepath.Join(env.baseDir, "copy")
	out, _, err = runCLI(t, env, "", "recovery", "export", dest)
	if err != nil {
		t.Fatalf("recovery export: %v", err)
	}
	requireContains(t, out, "Copied autorecovery snapshot")
	if !fileutil.Exists(dest + ".ove") {
		t.Fatal("expected exported project")
	}

	out, _, err = runCLI(t, env, "", "recovery", "discard")
	if err != nil {
		t.Fatalf("recovery discard: %v", err)
	}
	requireContains(t, out, "discarded")
	if slot.Exists() {
		t.Fatal("snapshot must be gone after discard")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, env, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, env, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, 1)
	requireContains(t, out, "only")
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
