// Package anthropic fetches remote sessions from the Anthropic API
// using Claude Code's own OAuth credentials.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.anthropic.com/v1"

	apiVersion = "2023-06-01"

	listTimeout  = 30 * time.Second
	fetchTimeout = 60 * time.Second
)

// SessionInfo is one entry of the remote session list.
type SessionInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// Client talks to the session API. BaseURL is overridable for tests.
type Client struct {
	Token   string
	OrgUUID string
	BaseURL string

	http *http.Client
}

// NewClient builds a client with resolved credentials.
func NewClient(token, orgUUID string) *Client {
	return &Client{
		Token:   token,
		OrgUUID: orgUUID,
		BaseURL: DefaultBaseURL,
		http:    &http.Client{},
	}
}

// ListSessions fetches the remote session list, newest first as
// returned by the API. No retries; a failure surfaces immediately.
func (c *Client) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	body, err := c.get(ctx, c.BaseURL+"/sessions", listTimeout)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []SessionInfo `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse session list: %w", err)
	}
	return payload.Data, nil
}

// FetchSession fetches one session document by ID and returns the raw
// JSON, ready for cclog.ParseSessionData or saving to disk.
func (c *Client) FetchSession(ctx context.Context, sessionID string) ([]byte, error) {
	return c.get(ctx, c.BaseURL+"/session_ingress/session/"+sessionID, fetchTimeout)
}

func (c *Client) get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-organization-uuid", c.OrgUUID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// FormatSession renders one list entry for display, truncating long
// titles.
func FormatSession(s SessionInfo) string {
	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	if runes := []rune(title); len(runes) > 60 {
		title = string(runes[:57]) + "..."
	}
	created := "N/A"
	if s.CreatedAt != "" {
		created = s.CreatedAt
		if len(created) > 19 {
			created = created[:19]
		}
	}
	return fmt.Sprintf("%-19s  %s", created, title)
}
