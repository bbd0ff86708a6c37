package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/interp/log"
)

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	cfg := Default()
	if cfg.PrefixChars != "/-" || cfg.DelimiterChars != "=:" {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.CaseSensitive {
		t.Fatal("expected case-insensitive default")
	}
	if cfg.Prompt != "> " {
		t.Fatalf("Prompt = %q", cfg.Prompt)
	}
	if !cfg.DefaultBuiltins {
		t.Fatal("expected default-built-ins enabled by default")
	}
}

func TestLoadWithEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func TestLoadDecodesINIFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "interp.ini")
	contents := "prompt = $\nlog_level = debug\ndefault_builtins = false\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "$" {
		t.Fatalf("Prompt = %q, want \"$\"", cfg.Prompt)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DefaultBuiltins {
		t.Fatal("expected default_builtins = false to be decoded")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/path/interp.ini"); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestLogLevelValueFallsBackToInfo(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = ""
	if cfg.LogLevelValue() != log.Info {
		t.Fatalf("LogLevelValue() = %v, want Info", cfg.LogLevelValue())
	}

	cfg.LogLevel = "error"
	if cfg.LogLevelValue() != log.Error {
		t.Fatalf("LogLevelValue() = %v, want Error", cfg.LogLevelValue())
	}
}
