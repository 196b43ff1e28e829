package archive

import (
	"sort"

	"github.com/neilberkman/cctranscripts/internal/core/discover"
)

// MergeSessions reconciles freshly discovered projects against the
// sessions still present in an existing archive. Projects merge by
// name and sessions dedupe by filename stem, with the fresh source
// always winning a collision. Sessions and projects present only in
// the archive are preserved as-is, so regenerating into the same
// output directory never loses sessions whose source files are gone.
//
// Pure: the result depends only on the two inputs, and either side
// may be empty.
func MergeSessions(source, existing []discover.Project) []discover.Project {
	byName := make(map[string]int)
	var merged []discover.Project

	for _, project := range source {
		byName[project.Name] = len(merged)
		copied := project
		copied.Sessions = append([]discover.Session(nil), project.Sessions...)
		merged = append(merged, copied)
	}

	for _, project := range existing {
		i, ok := byName[project.Name]
		if !ok {
			byName[project.Name] = len(merged)
			merged = append(merged, project)
			continue
		}

		stems := make(map[string]bool, len(merged[i].Sessions))
		for _, s := range merged[i].Sessions {
			stems[s.Stem()] = true
		}
		for _, s := range project.Sessions {
			if !stems[s.Stem()] {
				merged[i].Sessions = append(merged[i].Sessions, s)
			}
		}
	}

	for i := range merged {
		sessions := merged[i].Sessions
		sort.SliceStable(sessions, func(a, b int) bool {
			return sessions[a].Mtime.After(sessions[b].Mtime)
		})
	}
	return merged
}
