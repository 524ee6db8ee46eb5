package paths

import (
	"sleuth/pkg/common"
)

// classify maps a candidate's score and its weak-edge ratio onto a lifecycle
// status. The weak-edge veto is hard: a path with a middling score is still
// forced dead when a majority of its links are individually unreliable.
func classify(score float64, c candidate, cfg Config) common.PathStatus {
	total := len(c.edges)
	if total < 1 {
		total = 1
	}
	weakRatio := float64(countWeakEdges(c.edges, cfg)) / float64(total)

	if score < cfg.DeadScore || weakRatio > cfg.DeadWeakEdgeRatio {
		return common.PathStatusDead
	}
	if score >= cfg.ActiveScore {
		return common.PathStatusActive
	}
	return common.PathStatusWeak
}
