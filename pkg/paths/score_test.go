package paths

import (
	"math"
	"testing"

	"sleuth/pkg/common"
)

func nodeMap(nodes []common.Node) map[string]common.Node {
	byID := make(map[string]common.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return byID
}

func TestScoreCandidateStrongChain(t *testing.T) {
	nodes := []common.Node{
		testNode("sanctions", 85, "a.com"),
		testNode("supply_cut", 80, "b.com"),
		testNode("price_spike", 80, "c.com"),
	}
	c := candidate{
		nodes: []string{"sanctions", "supply_cut", "price_spike"},
		edges: []common.Edge{
			testEdge("sanctions", "supply_cut", 0.85),
			testEdge("supply_cut", "price_spike", 0.85),
		},
	}

	got := scoreCandidate(c, nodeMap(nodes), DefaultConfig())

	// quantity 3/8*0.15 + credibility 81.67/100*0.25 + diversity 0.2 +
	// temporal 0.2 + convergence 0.1, no weak edges.
	want := 3.0/8.0*0.15 + (85+80+80)/3.0/100*0.25 + 0.2 + 0.2 + 0.1
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got, want)
	}
}

func TestScoreCandidateContradictionPenalty(t *testing.T) {
	nodes := []common.Node{
		testNode("a", 70, "a.com"),
		testNode("b", 70, "b.com"),
		testNode("c", 70, "c.com"),
		testNode("d", 70, "d.com"),
	}
	c := candidate{
		nodes: []string{"a", "b", "c", "d"},
		edges: []common.Edge{
			testEdge("a", "b", 0.35),
			testEdge("b", "c", 0.35),
			testEdge("c", "d", 0.35),
		},
	}

	got := scoreCandidate(c, nodeMap(nodes), DefaultConfig())

	want := 4.0/8.0*0.15 + 0.7*0.25 + 0.2 + 0.2 + 0.1 - 0.4
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("score = %f, want %f", got, want)
	}
}

func TestScoreCandidateCeiling(t *testing.T) {
	var nodes []common.Node
	var ids []string
	var edges []common.Edge
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for i, id := range names {
		nodes = append(nodes, testNode(id, 100, id+".com"))
		ids = append(ids, id)
		if i > 0 {
			edges = append(edges, testEdge(names[i-1], id, 0.9))
		}
	}
	c := candidate{nodes: ids, edges: edges}

	// All components max out: 0.15 + 0.25 + 0.2 + 0.2 + 0.1 = 0.9 < 0.92,
	// so nothing is clamped yet; with the ceiling lowered the clamp applies.
	got := scoreCandidate(c, nodeMap(nodes), DefaultConfig())
	if math.Abs(got-0.9) > 1e-9 {
		t.Errorf("score = %f, want 0.9", got)
	}

	cfg := DefaultConfig()
	cfg.ScoreCeiling = 0.85
	got = scoreCandidate(c, nodeMap(nodes), cfg)
	if got != 0.85 {
		t.Errorf("clamped score = %f, want 0.85", got)
	}
}

func TestScoreCandidateFloor(t *testing.T) {
	nodes := []common.Node{
		testNode("a", 0),
		testNode("b", 0),
		testNode("c", 0),
	}
	// One shared label-less source, all edges weak: the penalty outweighs the
	// remaining components.
	for i := range nodes {
		nodes[i].Label = "same"
	}
	c := candidate{
		nodes: []string{"a", "b", "c"},
		edges: []common.Edge{testEdge("a", "b", 0.1), testEdge("b", "c", 0.1)},
	}

	cfg := DefaultConfig()
	cfg.ContradictionWeight = 1.0
	got := scoreCandidate(c, nodeMap(nodes), cfg)
	if got != 0 {
		t.Errorf("score = %f, want clamp to 0", got)
	}
}

func TestTemporallyConsistent(t *testing.T) {
	dated := func(id, date string) common.Node {
		n := testNode(id, 80, id+".com")
		n.Date = date
		return n
	}

	tests := []struct {
		name  string
		nodes []common.Node
		want  bool
	}{
		{
			name:  "no dated nodes is vacuously consistent",
			nodes: []common.Node{testNode("a", 80), testNode("b", 80)},
			want:  true,
		},
		{
			name:  "single dated node is vacuously consistent",
			nodes: []common.Node{dated("a", "2024-01-01T00:00:00Z"), testNode("b", 80)},
			want:  true,
		},
		{
			name: "non-decreasing dates",
			nodes: []common.Node{
				dated("a", "2024-01-01T00:00:00Z"),
				dated("b", "2024-01-01T00:00:00Z"),
				dated("c", "2024-02-01T00:00:00Z"),
			},
			want: true,
		},
		{
			name: "decreasing dates",
			nodes: []common.Node{
				dated("a", "2024-02-01T00:00:00Z"),
				dated("b", "2024-01-01T00:00:00Z"),
			},
			want: false,
		},
		{
			name: "undated node between dated ones is skipped",
			nodes: []common.Node{
				dated("a", "2024-01-01T00:00:00Z"),
				testNode("x", 80),
				dated("b", "2024-03-01T00:00:00Z"),
			},
			want: true,
		},
		{
			name: "date-only timestamps are accepted",
			nodes: []common.Node{
				dated("a", "2024-01-01"),
				dated("b", "2024-01-02"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := temporallyConsistent(tt.nodes); got != tt.want {
				t.Errorf("temporallyConsistent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	strong := candidate{edges: []common.Edge{testEdge("a", "b", 0.8), testEdge("b", "c", 0.8)}}
	contradicted := candidate{edges: []common.Edge{testEdge("a", "b", 0.3), testEdge("b", "c", 0.3)}}

	tests := []struct {
		name  string
		score float64
		cand  candidate
		want  common.PathStatus
	}{
		{"high score is active", 0.80, strong, common.PathStatusActive},
		{"active lower bound is inclusive", 0.65, strong, common.PathStatusActive},
		{"mid score is weak", 0.50, strong, common.PathStatusWeak},
		{"weak lower bound is inclusive", 0.40, strong, common.PathStatusWeak},
		{"low score is dead", 0.39, strong, common.PathStatusDead},
		{"weak edge majority vetoes a middling score", 0.60, contradicted, common.PathStatusDead},
		{"no edges cannot trigger the veto", 0.50, candidate{}, common.PathStatusWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.score, tt.cand, DefaultConfig()); got != tt.want {
				t.Errorf("classify(%f) = %s, want %s", tt.score, got, tt.want)
			}
		})
	}
}

func TestPassesBirthRule(t *testing.T) {
	byID := nodeMap([]common.Node{
		testNode("a", 80, "a.com"),
		testNode("b", 80, "b.com"),
		testNode("c", 80, "a.com"),
		{ID: "l1", Label: "unattributed claim", Confidence: 50},
		{ID: "l2", Label: "unattributed claim", Confidence: 50},
		{ID: "l3", Label: "another claim", Confidence: 50},
	})

	tests := []struct {
		name  string
		nodes []string
		want  bool
	}{
		{"two nodes fail regardless of sources", []string{"a", "b"}, false},
		{"three nodes with two sources pass", []string{"a", "b", "c"}, true},
		{"three nodes sharing one source fail", []string{"a", "c", "a"}, false},
		{"labels back sourceless nodes", []string{"l1", "l2", "l3"}, true},
		{"identical labels collapse to one voice", []string{"l1", "l2", "l2"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate{nodes: tt.nodes}
			if got := passesBirthRule(c, byID, DefaultConfig()); got != tt.want {
				t.Errorf("passesBirthRule(%v) = %v, want %v", tt.nodes, got, tt.want)
			}
		})
	}
}

func TestDedupeCandidates(t *testing.T) {
	cands := []candidate{
		{nodes: []string{"a", "b", "c"}},
		{nodes: []string{"a", "b", "c"}},
		{nodes: []string{"a", "c"}},
	}
	got := dedupeCandidates(cands)
	if len(got) != 2 {
		t.Fatalf("dedupe kept %d candidates, want 2", len(got))
	}
	if got[0].nodes[2] != "c" || len(got[1].nodes) != 2 {
		t.Errorf("dedupe did not keep first occurrences: %v", got)
	}
}
