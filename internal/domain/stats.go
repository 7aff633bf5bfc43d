package domain

import (
	"sort"
	"time"
)

// Aggregate reduces per-file results into directory-level stats. It is a
// pure function of its inputs: no counters are shared with the scan
// itself, so result-collection order does not matter.
func Aggregate(results []ValidationResult, elapsed time.Duration, topErrors int) DirectoryStats {
	stats := DirectoryStats{
		TotalFiles: len(results),
		ByType:     make(map[RuleType]int),
		Elapsed:    elapsed,
	}

	counts := make(map[string]int)
	var firstSeen []string

	for _, r := range results {
		if r.IsValid {
			stats.ValidFiles++
		} else {
			stats.InvalidFiles++
		}
		if r.RuleType != "" {
			stats.ByType[r.RuleType]++
		}
		for _, msg := range r.Errors {
			if counts[msg] == 0 {
				firstSeen = append(firstSeen, msg)
			}
			counts[msg]++
		}
	}

	// Descending by count; stable sort keeps first-seen order on ties.
	sort.SliceStable(firstSeen, func(i, j int) bool {
		return counts[firstSeen[i]] > counts[firstSeen[j]]
	})
	if topErrors > 0 && len(firstSeen) > topErrors {
		firstSeen = firstSeen[:topErrors]
	}
	for _, msg := range firstSeen {
		stats.TopErrors = append(stats.TopErrors, ErrorCount{Message: msg, Count: counts[msg]})
	}

	stats.HealthScore = HealthScore(stats.ValidFiles, stats.TotalFiles)
	return stats
}

// HealthScore is the percentage of valid files. An empty directory is
// vacuously healthy.
func HealthScore(valid, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(valid) / float64(total) * 100
}
