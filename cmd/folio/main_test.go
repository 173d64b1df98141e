package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	data, err := os.ReadFile(filepath.Join("..", "..", "content", "default.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, data, 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := runCheck(good, &out); err != nil {
		t.Fatalf("runCheck(default) error: %v", err)
	}
	if !strings.Contains(out.String(), "ok") {
		t.Errorf("output = %q", out.String())
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("hero:\n  greeting: hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := runCheck(bad, &out); err == nil {
		t.Fatal("runCheck accepted incomplete content")
	}
	if !strings.Contains(out.String(), "hero.name is required") {
		t.Errorf("problems not listed: %q", out.String())
	}
}

func TestRunRenderToFile(t *testing.T) {
	t.Setenv("FOLIO_SHOWCASE_DIR", t.TempDir())
	out := filepath.Join(t.TempDir(), "index.html")
	if err := runRender([]string{"-o", out}); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Errorf("unexpected output start: %.40q", data)
	}
}

func TestRunNew(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ada-lovelace")
	var out bytes.Buffer
	if err := runNew(dir, &out); err != nil {
		t.Fatalf("runNew() error: %v", err)
	}

	for _, name := range []string{"content.yaml", ".env.example", "showcase/README.md", "public/README.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	// The starter content must pass its own check.
	out.Reset()
	if err := runCheck(filepath.Join(dir, "content.yaml"), &out); err != nil {
		t.Fatalf("generated content.yaml is invalid: %v\n%s", err, out.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "content.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `name: "Ada Lovelace"`) {
		t.Error("site name not substituted into content.yaml")
	}

	if err := runNew(dir, &out); err == nil {
		t.Error("runNew overwrote an existing directory")
	}
}

func TestToTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ada-lovelace", "Ada Lovelace"},
		{"mara", "Mara"},
		{"grace_hopper", "Grace Hopper"},
	}
	for _, tt := range tests {
		if got := toTitle(tt.in); got != tt.want {
			t.Errorf("toTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
