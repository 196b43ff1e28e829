package config

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveCredentials fills in the API token and organization UUID,
// preferring explicit values and falling back to Claude Code's own
// stores: the macOS keychain for the token and ~/.claude.json for the
// org UUID. Errors carry a remediation hint for the user.
func ResolveCredentials(token, orgUUID string) (string, string, error) {
	if token == "" {
		token = tokenFromKeychain()
		if token == "" {
			if runtime.GOOS == "darwin" {
				return "", "", errors.New("could not retrieve access token from macOS keychain; make sure you are logged into Claude Code, or provide --token")
			}
			return "", "", errors.New("on non-macOS platforms you must provide --token with your access token")
		}
	}

	if orgUUID == "" {
		orgUUID = orgUUIDFromClaudeConfig()
		if orgUUID == "" {
			return "", "", errors.New("could not find organization UUID in ~/.claude.json; provide --org-uuid")
		}
	}

	return token, orgUUID, nil
}

// tokenFromKeychain reads Claude Code's OAuth credentials from the
// macOS keychain. Returns "" on any failure or off macOS.
func tokenFromKeychain() string {
	if runtime.GOOS != "darwin" {
		return ""
	}

	out, err := exec.Command("security", "find-generic-password",
		"-a", os.Getenv("USER"),
		"-s", "Claude Code-credentials",
		"-w").Output()
	if err != nil {
		return ""
	}

	var creds struct {
		ClaudeAiOauth struct {
			AccessToken string `json:"accessToken"`
		} `json:"claudeAiOauth"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(out))), &creds); err != nil {
		return ""
	}
	return creds.ClaudeAiOauth.AccessToken
}

func orgUUIDFromClaudeConfig() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	data, err := os.ReadFile(filepath.Join(home, ".claude.json"))
	if err != nil {
		return ""
	}

	var cfg struct {
		OauthAccount struct {
			OrganizationUUID string `json:"organizationUuid"`
		} `json:"oauthAccount"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return cfg.OauthAccount.OrganizationUUID
}
