package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	PageSize          int
	LongTextThreshold int
	ClaudeProjectsDir string
	CodexSessionsDir  string
}

type tomlConfig struct {
	PageSize          int    `toml:"page_size"`
	LongTextThreshold int    `toml:"long_text_threshold"`
	ClaudeProjectsDir string `toml:"claude_projects_dir"`
	CodexSessionsDir  string `toml:"codex_sessions_dir"`
}

// Load reads config from ~/.config/cctranscripts/config.toml. A
// missing or unreadable file just means defaults; Load never fails
// the caller.
func Load() (*Config, error) {
	cfg := &Config{
		PageSize:          5,
		LongTextThreshold: 300,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	cfg.ClaudeProjectsDir = filepath.Join(home, ".claude", "projects")
	cfg.CodexSessionsDir = filepath.Join(home, ".codex", "sessions")

	tomlPath := filepath.Join(home, ".config", "cctranscripts", "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.PageSize > 0 {
				cfg.PageSize = tc.PageSize
			}
			if tc.LongTextThreshold > 0 {
				cfg.LongTextThreshold = tc.LongTextThreshold
			}
			if tc.ClaudeProjectsDir != "" {
				cfg.ClaudeProjectsDir = tc.ClaudeProjectsDir
			}
			if tc.CodexSessionsDir != "" {
				cfg.CodexSessionsDir = tc.CodexSessionsDir
			}
		}
	}

	return cfg, nil
}
