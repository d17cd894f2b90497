package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func serviceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.sh")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// An empty procfs keeps host processes out of the picture.
	t.Setenv("DEMONIFY_PROC_ROOT", t.TempDir())
	return path
}

func TestRootRequiresAnAction(t *testing.T) {
	path := serviceFile(t, "#!/bin/bash\n")
	if _, err := execute(t, path); err == nil || !strings.Contains(err.Error(), "at least one of the flags") {
		t.Fatalf("expected action requirement error, got %v", err)
	}
}

func TestRootRejectsConflictingActions(t *testing.T) {
	path := serviceFile(t, "#!/bin/bash\n")
	_, err := execute(t, path, "--add", "--remove", "-n", "x", "-c", "run")
	if err == nil || !strings.Contains(err.Error(), "none of the others can be") {
		t.Fatalf("expected mutual exclusion error, got %v", err)
	}
	_, err = execute(t, path, "--spawn", "--kill", "-n", "x")
	if err == nil || !strings.Contains(err.Error(), "none of the others can be") {
		t.Fatalf("expected mutual exclusion error, got %v", err)
	}
}

func TestRootAddRequiresCommand(t *testing.T) {
	path := serviceFile(t, "#!/bin/bash\n")
	if _, err := execute(t, path, "--add", "-n", "x"); err == nil {
		t.Fatal("expected error for add without command")
	}
}

func TestRootAddAndList(t *testing.T) {
	path := serviceFile(t, "#!/bin/bash\n")

	out, err := execute(t, path, "-a", "-n", "Sync", "-c", "python3 sync.py")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Service entry sync successfully added.") {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "#!/bin/bash\nbash -c \"exec -a sync python3 sync.py &>> sync.log &\" # sync\n"
	if string(data) != want {
		t.Fatalf("unexpected file %q", data)
	}

	out, err = execute(t, path, "--list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Inactive") || !strings.Contains(out, "(1 entries | 0 active)") {
		t.Fatalf("unexpected listing %q", out)
	}
}

func TestRootLongNameIsFatal(t *testing.T) {
	path := serviceFile(t, "#!/bin/bash\n")
	if _, err := execute(t, path, "-a", "-n", "sixteen-chars-xx", "-c", "run"); err == nil {
		t.Fatal("expected name length error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "#!/bin/bash\n" {
		t.Fatalf("file must be untouched, got %q", data)
	}
}

func TestRootMissingFileIsFatal(t *testing.T) {
	t.Setenv("DEMONIFY_PROC_ROOT", t.TempDir())
	if _, err := execute(t, filepath.Join(t.TempDir(), "missing.sh"), "-l"); err == nil {
		t.Fatal("expected error for missing service file")
	}
}

func TestRootRemoveUnknownIsReported(t *testing.T) {
	path := serviceFile(t, "#!/bin/bash\n")
	out, err := execute(t, path, "-r", "-n", "ghost")
	if err != nil {
		t.Fatalf("not found must not be fatal: %v", err)
	}
	if !strings.Contains(out, "No entry was found for the service name ghost.") {
		t.Fatalf("unexpected output %q", out)
	}
}
