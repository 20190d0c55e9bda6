package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommandFindsEditionVariant(t *testing.T) {
	out, err := executeCommand(t,
		"match", "Cyberpunk 2077",
		"Cyberpunk 2077 Ultimate Edition", "The Witcher 3", "FIFA 24",
	)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Best match: index 0") {
		t.Fatalf("output = %s", out)
	}
	if !strings.Contains(out, "tfidf strategy") {
		t.Fatalf("output should name the strategy: %s", out)
	}
}

func TestMatchCommandReportsNoMatch(t *testing.T) {
	out, err := executeCommand(t,
		"match", "FIFA 23", "FIFA 24",
	)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No match") {
		t.Fatalf("output = %s", out)
	}
}

func TestMatchCommandRequiresCandidates(t *testing.T) {
	if _, err := executeCommand(t, "match", "only a title"); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := executeCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[catalog]") {
		t.Fatalf("sample missing catalog section: %s", data)
	}

	// Second run without --overwrite refuses to clobber.
	if _, err := executeCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config")
	}
	if out, err := executeCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite: %v\n%s", err, out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.size); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
