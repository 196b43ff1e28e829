package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", cfg.PageSize)
	}
	if cfg.LongTextThreshold != 300 {
		t.Errorf("LongTextThreshold = %d, want 300", cfg.LongTextThreshold)
	}
	if want := filepath.Join(home, ".claude", "projects"); cfg.ClaudeProjectsDir != want {
		t.Errorf("ClaudeProjectsDir = %q, want %q", cfg.ClaudeProjectsDir, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "cctranscripts")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "page_size = 10\nlong_text_threshold = 500\nclaude_projects_dir = \"/tmp/claude\"\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PageSize != 10 || cfg.LongTextThreshold != 500 || cfg.ClaudeProjectsDir != "/tmp/claude" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if want := filepath.Join(home, ".codex", "sessions"); cfg.CodexSessionsDir != want {
		t.Errorf("CodexSessionsDir = %q, want default %q", cfg.CodexSessionsDir, want)
	}
}

func TestLoadBrokenConfigFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "cctranscripts")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("not toml ==="), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PageSize != 5 {
		t.Errorf("PageSize = %d, want default after broken config", cfg.PageSize)
	}
}
