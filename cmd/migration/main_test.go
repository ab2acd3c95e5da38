package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/stadium-matchmap/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"two"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSteps(%v): %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("parseSteps(%v)=%d want=%d", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseVersion("1760400200"); err != nil || got != 1760400200 {
		t.Fatalf("parseVersion=%d err=%v", got, err)
	}
	if _, err := parseTarget("-5"); err == nil {
		t.Fatalf("expected error for negative target")
	}
	if got, err := parseTarget(" 1760400100 "); err != nil || got != 1760400100 {
		t.Fatalf("parseTarget=%d err=%v", got, err)
	}
}

func TestRun_UnknownCommandIsUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"sideways"}} {
		if err := run(args, logging.NewNop()); !errors.Is(err, errUsage) {
			t.Fatalf("run(%v) err=%v want usage", args, err)
		}
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(func(key string) string {
		if key == "MIGRATIONS_DIR" {
			return dir
		}
		return ""
	})
	if err != nil {
		t.Fatalf("resolveMigrationsDir: %v", err)
	}
	if got != dir {
		t.Fatalf("dir=%q want=%q", got, dir)
	}

	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(t.TempDir())
	if _, err := resolveMigrationsDir(func(string) string { return file }); err == nil {
		t.Fatalf("expected error when no candidate is a directory")
	}
}
