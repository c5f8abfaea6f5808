package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{"3"}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"two"}, wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseSteps(tc.args)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseSteps(%v) expected error", tc.args)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parseSteps(%v)=%d,%v want %d", tc.args, got, err, tc.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion(" 1772323320 "); err != nil || v != 1772323320 {
		t.Fatalf("unexpected version: %d %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
	if v, err := parseTarget("1772323260"); err != nil || v != 1772323260 {
		t.Fatalf("unexpected target: %d %v", v, err)
	}
}

func TestNormalizeDBURL(t *testing.T) {
	got := normalizeDBURL("postgres://u:p@localhost:5432/teamhub?sslmode=disable", true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected flag appended, got %q", got)
	}

	in := "host=localhost dbname=teamhub"
	if got := normalizeDBURL(in, true); got != in {
		t.Fatalf("expected key/value dsn unchanged, got %q", got)
	}
	if got := normalizeDBURL("postgres://localhost/teamhub", false); got != "postgres://localhost/teamhub" {
		t.Fatalf("expected url unchanged when disabled, got %q", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MIGRATION_TEST_FLAG", "")
	if !envBool("MIGRATION_TEST_FLAG", true) {
		t.Fatalf("expected fallback for empty value")
	}
	t.Setenv("MIGRATION_TEST_FLAG", "false")
	if envBool("MIGRATION_TEST_FLAG", true) {
		t.Fatalf("expected explicit false")
	}
	t.Setenv("MIGRATION_TEST_FLAG", "nope")
	if envBool("MIGRATION_TEST_FLAG", false) {
		t.Fatalf("expected fallback for invalid value")
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)
	t.Setenv("MIGRATIONS_PATH", "")

	got, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("unexpected dir: %q want %q", got, want)
	}

	file := filepath.Join(dir, "not-a-dir.sql")
	if err := os.WriteFile(file, []byte("--"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("MIGRATIONS_DIR", file)
	t.Setenv("MIGRATIONS_PATH", dir)
	got, err = resolveMigrationsDir()
	if err != nil || got != want {
		t.Fatalf("expected fallback to MIGRATIONS_PATH, got %q %v", got, err)
	}
}

func TestMigrationFilesArePaired(t *testing.T) {
	entries, err := os.ReadDir(filepath.Join("..", "..", "db", "migrations"))
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	if len(ups) == 0 {
		t.Fatalf("expected migrations")
	}
	for name := range ups {
		if !downs[name] {
			t.Fatalf("migration %s has no down file", name)
		}
	}
}
