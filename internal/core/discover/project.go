package discover

import "strings"

// Directory names that contain projects rather than being one.
// The display name is whatever follows the last such marker.
var projectContainers = map[string]bool{
	"projects": true,
	"code":     true,
	"src":      true,
	"repos":    true,
	"work":     true,
	"dev":      true,
}

// ProjectDisplayName derives a readable project name from the
// dash-encoded directory names used under ~/.claude/projects
// (e.g. "-home-user-code-apps-webapp" becomes "apps-webapp").
// Names that are not dash-encoded pass through unchanged.
func ProjectDisplayName(encoded string) string {
	if !strings.HasPrefix(encoded, "-") {
		return encoded
	}

	segments := strings.Split(strings.TrimPrefix(encoded, "-"), "-")

	last := -1
	for i, seg := range segments {
		if projectContainers[strings.ToLower(seg)] && i < len(segments)-1 {
			last = i
		}
	}
	if last >= 0 {
		return strings.Join(segments[last+1:], "-")
	}

	// No recognizable container directory; fall back to the final
	// path segment.
	return segments[len(segments)-1]
}
