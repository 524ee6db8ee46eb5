package paths

import (
	"time"

	"sleuth/pkg/common"
)

// scoreCandidate computes the bounded confidence score of one candidate from
// five weighted signals minus a contradiction penalty:
//
//   - quantity: longer evidentiary chains are modestly rewarded, saturating
//     to avoid unbounded inflation
//   - credibility: average caller-assigned node confidence
//   - source diversity: mirrors the birth rule, partial credit below the floor
//   - temporal consistency: dated nodes occurring in order
//   - convergence: multi-link corroborated chains over trivial ones
//   - contradiction: the share of individually weak links
//
// The result is clamped to [0, ScoreCeiling]; the ceiling keeps any single
// narrative from presenting as fully certain.
func scoreCandidate(c candidate, byID map[string]common.Node, cfg Config) float64 {
	nodes := resolveNodes(c.nodes, byID)

	quantity := float64(len(nodes)) / float64(cfg.QuantitySaturation)
	if quantity > 1 {
		quantity = 1
	}
	score := quantity * cfg.QuantityWeight

	if len(nodes) > 0 {
		sum := 0
		for _, n := range nodes {
			sum += n.Confidence
		}
		avg := float64(sum) / float64(len(nodes))
		score += avg / 100 * cfg.CredibilityWeight
	}

	distinct := len(distinctSources(nodes))
	if distinct >= cfg.MinDistinctSources {
		score += cfg.DiversityBonus
	} else {
		score += float64(distinct) * cfg.DiversityPartial
	}

	if temporallyConsistent(nodes) {
		score += cfg.TemporalBonus
	} else {
		score += cfg.TemporalPartial
	}

	if len(c.edges) > 0 && len(nodes) >= cfg.MinPathNodes {
		score += cfg.ConvergenceBonus
	}

	if len(c.edges) > 0 {
		weak := countWeakEdges(c.edges, cfg)
		score -= cfg.ContradictionWeight * float64(weak) / float64(len(c.edges))
	}

	if score < 0 {
		return 0
	}
	if score > cfg.ScoreCeiling {
		return cfg.ScoreCeiling
	}
	return score
}

// temporallyConsistent reports whether the dated nodes of the path, taken in
// path order, carry non-decreasing timestamps. Undated nodes are skipped,
// not treated as violations, and fewer than two dated nodes is vacuously
// consistent.
func temporallyConsistent(nodes []common.Node) bool {
	var prev time.Time
	dated := 0
	for _, n := range nodes {
		ts, ok := parseNodeDate(n.Date)
		if !ok {
			continue
		}
		if dated > 0 && ts.Before(prev) {
			return false
		}
		prev = ts
		dated++
	}
	return true
}

// parseNodeDate parses the optional node timestamp. An empty or unparsable
// date marks the node as atemporal.
func parseNodeDate(date string) (time.Time, bool) {
	if date == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		return ts, true
	}
	if ts, err := time.Parse("2006-01-02", date); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func countWeakEdges(edges []common.Edge, cfg Config) int {
	weak := 0
	for _, e := range edges {
		if e.Strength < cfg.WeakEdgeThreshold {
			weak++
		}
	}
	return weak
}
