package render

import (
	"regexp"
	"strings"

	"github.com/neilberkman/cctranscripts/pkg/cclog"
)

// githubRepoPattern detects the repo from git push output
// (github.com/owner/repo/pull/new/branch lines).
var githubRepoPattern = regexp.MustCompile(`github\.com/([a-zA-Z0-9_-]+/[a-zA-Z0-9_-]+)/pull/new/`)

// Context carries per-generation settings through every render call.
// It replaces any notion of process-wide state: the detected GitHub
// repo in particular is threaded explicitly to the call sites that
// build commit links.
type Context struct {
	GitHubRepo        string // owner/name for commit links; empty disables them
	Prefix            string // source label shown in project indexes
	PageSize          int
	LongTextThreshold int
	Quiet             bool
}

func (c Context) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return 5
}

func (c Context) longTextThreshold() int {
	if c.LongTextThreshold > 0 {
		return c.LongTextThreshold
	}
	return 300
}

// DetectGitHubRepo scans string tool-result content for git push
// output and returns the first owner/name it finds, or "".
func DetectGitHubRepo(entries []cclog.LogEntry) string {
	for i := range entries {
		for _, block := range entries[i].Message.Blocks {
			result, ok := block.(cclog.ToolResultBlock)
			if !ok || result.Text == "" {
				continue
			}
			if match := githubRepoPattern.FindStringSubmatch(result.Text); match != nil {
				return match[1]
			}
		}
	}
	return ""
}

// MessageID builds the stable anchor for a message timestamp.
func MessageID(timestamp string) string {
	replacer := strings.NewReplacer(":", "-", ".", "-")
	return "msg-" + replacer.Replace(timestamp)
}
