package main

import (
	"context"
	"path/filepath"
	"testing"

	"splice/internal/fileutil"
	"splice/internal/project"
	"splice/internal/testsupport"
)

func loadProject(t *testing.T, path string) *project.Project {
	t.Helper()
	p, err := project.NewFileSerializer().Deserialize(context.Background(), path)
	if err != nil {
		t.Fatalf("deserialize %s: %v", path, err)
	}
	return p
}

func TestSessionEditAndSaveAs(t *testing.T) {
	env := setupCLITestEnv(t)
	dest := filepath.Join(env.baseDir, "cut.ove")

	out, stderr, err := runCLI(t, env, script(
		"edit Main /footage/a.mov 0 50",
		"save-as",
		dest,
		"status",
		"quit",
	), "session")
	if err != nil {
		t.Fatalf("session: %v (stderr %s)", err, stderr)
	}
	requireContains(t, out, "Save project as:")
	requireContains(t, out, "[cut.ove - Splice]")
	requireContains(t, out, "Goodbye")

	p := loadProject(t, dest)
	if len(p.Sequences) != 1 || p.Sequences[0].Name != "Main" || len(p.Sequences[0].Clips) != 1 {
		t.Fatalf("unexpected saved project %+v", p)
	}
	if fileutil.Exists(env.cfg.RecoverySlotPath()) {
		t.Fatal("clean quit must not leave a recovery snapshot")
	}

	out, _, err = runCLI(t, env, "", "recent")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	requireContains(t, out, dest)
}

func TestSessionUndoBeforeSave(t *testing.T) {
	env := setupCLITestEnv(t)
	dest := filepath.Join(env.baseDir, "undo.ove")

	_, stderr, err := runCLI(t, env, script(
		"edit Main /footage/a.mov",
		"edit Main /footage/b.mov",
		"undo",
		"save-as",
		dest,
		"quit",
	), "session")
	if err != nil {
		t.Fatalf("session: %v (stderr %s)", err, stderr)
	}
	if got := len(loadProject(t, dest).Media); got != 1 {
		t.Fatalf("media after undo = %d, want 1", got)
	}
}

func TestSessionCancelledNewKeepsWorkForRecovery(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, env, script(
		"edit Main /footage/a.mov",
		"new",
		"c",
	), "session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	requireContains(t, out, "new cancelled")
	requireContains(t, stderr, "kept for autorecovery")
	if !fileutil.Exists(env.cfg.RecoverySlotPath()) {
		t.Fatal("expected recovery snapshot after input ended with unsaved changes")
	}

	dest := filepath.Join(env.baseDir, "rescued.ove")
	out, stderr, err = runCLI(t, env, script(
		"y",
		"save-as",
		dest,
		"quit",
	), "session")
	if err != nil {
		t.Fatalf("second session: %v (stderr %s)", err, stderr)
	}
	requireContains(t, out, "did not shut down cleanly")
	requireContains(t, out, "Restored autorecovery project")
	if got := len(loadProject(t, dest).Media); got != 1 {
		t.Fatalf("rescued media = %d, want 1", got)
	}
	if fileutil.Exists(env.cfg.RecoverySlotPath()) {
		t.Fatal("clean quit must clear the recovery snapshot")
	}
}

func TestSessionOpensLaunchProject(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteProject(t, env.baseDir, "launch.ove", testsupport.SampleProject("Main"))

	out, stderr, err := runCLI(t, env, script("quit"), "session", path)
	if err != nil {
		t.Fatalf("session: %v (stderr %s)", err, stderr)
	}
	requireContains(t, out, "Opened "+path)
	requireContains(t, out, "[launch.ove - Splice]")
}

func TestSessionReportsLoadFailure(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, env, script(
		"open "+filepath.Join(env.baseDir, "missing.ove"),
		"bogus",
		"quit",
	), "session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	requireContains(t, stderr, "i/o failure")
	requireContains(t, stderr, "unknown action")
	requireContains(t, out, "Goodbye")
}

func TestSessionUndoAfterImportKeepsImportedContent(t *testing.T) {
	env := setupCLITestEnv(t)
	other := testsupport.WriteProject(t, env.baseDir, "other.ove", testsupport.SampleProject("Reel"))
	dest := filepath.Join(env.baseDir, "merged.ove")

	out, stderr, err := runCLI(t, env, script(
		"edit Main /footage/a.mov",
		"import "+other,
		"undo",
		"save-as",
		dest,
		"quit",
	), "session")
	if err != nil {
		t.Fatalf("session: %v (stderr %s)", err, stderr)
	}
	requireContains(t, out, "Imported "+other)

	p := loadProject(t, dest)
	if len(p.Media) != 2 {
		t.Fatalf("media after undo = %d, want 2 (edit plus import)", len(p.Media))
	}
	if _, ok := p.Sequence("Reel"); !ok {
		t.Fatalf("imported sequence lost: %+v", p.Sequences)
	}
}
