// Package paths implements the investigation path synthesis engine: given an
// evidence graph it enumerates competing causal narratives, filters them by
// an evidentiary admissibility rule, scores each for credibility, and
// classifies each into a lifecycle state.
//
// The engine is a pure, synchronous function over an in-memory graph: no
// I/O, no shared state across invocations. An Engine is safe for concurrent
// use on independent inputs. Callers wanting to bound latency on pathological
// graphs should impose an external deadline or lower Config.MaxDepth.
package paths

import (
	"fmt"
	"math"
	"sort"

	"sleuth/pkg/common"
)

// Engine synthesizes ranked path hypotheses from evidence graphs.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given policy configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Synthesize recomputes the full path list for the graph: enumerate from
// every root, dedupe, filter by the birth rule, score, classify, and sort by
// confidence descending (stable, so ties keep discovery order). Path ids are
// assigned after sorting as "path-{rank}".
//
// Dead paths are returned alongside active and weak ones; a discredited
// hypothesis is never dropped from the result. For any non-empty graph the
// result holds at least one path: degenerate inputs fall back to a single
// synthetic chronological path instead of an error.
func (e *Engine) Synthesize(g common.Graph) []common.Path {
	if len(g.Nodes) == 0 {
		return []common.Path{}
	}
	if len(g.Edges) == 0 {
		return []common.Path{e.fallbackNoEdges(g)}
	}

	byID := make(map[string]common.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	t := buildTopology(g)

	var pool []candidate
	for _, root := range t.roots {
		pool = append(pool, enumerate(root, t, e.cfg)...)
	}

	admitted := make([]candidate, 0, len(pool))
	for _, c := range dedupeCandidates(pool) {
		if passesBirthRule(c, byID, e.cfg) {
			admitted = append(admitted, c)
		}
	}
	if len(admitted) == 0 {
		return []common.Path{e.fallbackNoCandidates(g)}
	}

	out := make([]common.Path, 0, len(admitted))
	for _, c := range admitted {
		score := scoreCandidate(c, byID, e.cfg)
		out = append(out, common.Path{
			Nodes:      c.nodes,
			Status:     classify(score, c, e.cfg),
			Confidence: int(math.Round(score * 100)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	for i := range out {
		out[i].ID = fmt.Sprintf("path-%d", i)
	}
	return out
}

// fallbackNoEdges covers a graph with nodes but no edges: a single
// unconnected cluster still surfaces as one chronological hypothesis.
func (e *Engine) fallbackNoEdges(g common.Graph) common.Path {
	status := common.PathStatusWeak
	if len(g.Nodes) >= e.cfg.MinPathNodes {
		status = common.PathStatusActive
	}
	return common.Path{
		ID:         "path-0",
		Nodes:      chronologicalIDs(g.Nodes),
		Status:     status,
		Confidence: 50,
	}
}

// fallbackNoCandidates covers a graph whose edges produced no candidate that
// survived the birth rule.
func (e *Engine) fallbackNoCandidates(g common.Graph) common.Path {
	status := common.PathStatusDead
	if len(g.Nodes) >= e.cfg.MinPathNodes {
		status = common.PathStatusWeak
	}
	return common.Path{
		ID:         "path-0",
		Nodes:      chronologicalIDs(g.Nodes),
		Status:     status,
		Confidence: 45,
	}
}

// chronologicalIDs sorts node ids by timestamp. Nodes lacking a date keep
// their relative input order; comparing a dated node against an undated one
// is a tie, so the sort must stay stable.
func chronologicalIDs(nodes []common.Node) []string {
	sorted := make([]common.Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, iok := parseNodeDate(sorted[i].Date)
		tj, jok := parseNodeDate(sorted[j].Date)
		if !iok || !jok {
			return false
		}
		return ti.Before(tj)
	})

	ids := make([]string, len(sorted))
	for i, n := range sorted {
		ids[i] = n.ID
	}
	return ids
}
