package paths

import (
	"reflect"
	"testing"

	"sleuth/pkg/common"
)

// marketGraph builds a graph with three competing narratives converging on
// the same outcome: a strong sanctions chain, a mid-strength weather chain,
// and a speculative two-node assertion.
func marketGraph() common.Graph {
	dated := func(n common.Node, date string) common.Node {
		n.Date = date
		return n
	}
	return common.Graph{
		Nodes: []common.Node{
			dated(testNode("sanctions", 85, "a.com"), "2024-01-05T00:00:00Z"),
			dated(testNode("supply_cut", 80, "b.com"), "2024-01-12T00:00:00Z"),
			dated(testNode("price_spike", 80, "c.com"), "2024-01-20T00:00:00Z"),
			dated(testNode("weather", 60, "d.com"), "2024-01-08T00:00:00Z"),
			dated(testNode("storage_stress", 55, "e.com"), "2024-01-15T00:00:00Z"),
			testNode("spec", 35, "f.com"),
		},
		Edges: []common.Edge{
			testEdge("sanctions", "supply_cut", 0.85),
			testEdge("supply_cut", "price_spike", 0.85),
			testEdge("weather", "storage_stress", 0.6),
			testEdge("storage_stress", "price_spike", 0.55),
			testEdge("spec", "price_spike", 0.35),
		},
	}
}

func TestSynthesizeEmptyGraph(t *testing.T) {
	got := NewEngine(DefaultConfig()).Synthesize(common.Graph{})
	if len(got) != 0 {
		t.Errorf("Synthesize(empty) = %v, want no paths", got)
	}
}

func TestSynthesizeMarketScenario(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	got := engine.Synthesize(marketGraph())

	if len(got) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(got), got)
	}

	sanctions := got[0]
	weather := got[1]

	wantSanctions := []string{"sanctions", "supply_cut", "price_spike"}
	if !reflect.DeepEqual(sanctions.Nodes, wantSanctions) {
		t.Errorf("top path nodes = %v, want %v", sanctions.Nodes, wantSanctions)
	}
	if sanctions.Status != common.PathStatusActive {
		t.Errorf("top path status = %s, want active", sanctions.Status)
	}
	if sanctions.Confidence != 76 {
		t.Errorf("top path confidence = %d, want 76", sanctions.Confidence)
	}

	wantWeather := []string{"weather", "storage_stress", "price_spike"}
	if !reflect.DeepEqual(weather.Nodes, wantWeather) {
		t.Errorf("second path nodes = %v, want %v", weather.Nodes, wantWeather)
	}
	if weather.Confidence != 72 {
		t.Errorf("second path confidence = %d, want 72", weather.Confidence)
	}

	if sanctions.ID != "path-0" || weather.ID != "path-1" {
		t.Errorf("path ids = %s, %s, want path-0, path-1", sanctions.ID, weather.ID)
	}
}

func TestSynthesizeBranchingCreatesCompetingHypotheses(t *testing.T) {
	g := common.Graph{
		Nodes: []common.Node{
			testNode("root_a", 80, "a.com"),
			testNode("mid_a", 75, "b.com"),
			testNode("root_b", 70, "c.com"),
			testNode("mid_b", 65, "d.com"),
			testNode("outcome", 80, "e.com"),
		},
		Edges: []common.Edge{
			testEdge("root_a", "mid_a", 0.8),
			testEdge("mid_a", "outcome", 0.8),
			testEdge("root_b", "mid_b", 0.7),
			testEdge("mid_b", "outcome", 0.7),
		},
	}

	got := NewEngine(DefaultConfig()).Synthesize(g)
	if len(got) < 2 {
		t.Fatalf("got %d paths, want at least 2", len(got))
	}

	for _, root := range []string{"root_a", "root_b"} {
		found := false
		for _, p := range got {
			for _, id := range p.Nodes {
				if id == root {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("root %s appears in no returned path", root)
		}
	}
}

func TestSynthesizeWeakEvidenceLowersConfidence(t *testing.T) {
	g := common.Graph{
		Nodes: []common.Node{
			testNode("a", 70, "a.com"),
			testNode("b", 70, "b.com"),
			testNode("c", 70, "c.com"),
			testNode("d", 70, "d.com"),
		},
		Edges: []common.Edge{
			testEdge("a", "b", 0.35),
			testEdge("b", "c", 0.35),
			testEdge("c", "d", 0.35),
		},
	}

	got := NewEngine(DefaultConfig()).Synthesize(g)
	if len(got) != 1 {
		t.Fatalf("got %d paths, want 1", len(got))
	}
	p := got[0]
	if p.Confidence >= 65 {
		t.Errorf("confidence = %d, want < 65", p.Confidence)
	}
	if p.Status != common.PathStatusWeak && p.Status != common.PathStatusDead {
		t.Errorf("status = %s, want weak or dead", p.Status)
	}
}

func TestSynthesizeRetainsDeadPaths(t *testing.T) {
	g := common.Graph{
		Nodes: []common.Node{
			testNode("a", 30, "a.com"),
			testNode("b", 30, "b.com"),
			testNode("c", 30, "c.com"),
		},
		Edges: []common.Edge{
			testEdge("a", "b", 0.35),
			testEdge("b", "c", 0.35),
		},
	}

	got := NewEngine(DefaultConfig()).Synthesize(g)
	if len(got) == 0 {
		t.Fatal("discredited hypotheses must still be returned")
	}

	discredited := false
	for _, p := range got {
		if p.Confidence < 0 || p.Confidence > 100 {
			t.Errorf("confidence %d out of range", p.Confidence)
		}
		switch p.Status {
		case common.PathStatusActive, common.PathStatusWeak, common.PathStatusDead:
		default:
			t.Errorf("unknown status %q", p.Status)
		}
		if p.Status == common.PathStatusWeak || p.Status == common.PathStatusDead {
			discredited = true
		}
	}
	if !discredited {
		t.Error("expected at least one weak or dead path")
	}
}

func TestSynthesizeSortsByConfidenceDescending(t *testing.T) {
	got := NewEngine(DefaultConfig()).Synthesize(marketGraph())
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("paths out of order at %d: %d > %d", i, got[i].Confidence, got[i-1].Confidence)
		}
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	first := engine.Synthesize(marketGraph())
	second := engine.Synthesize(marketGraph())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same graph differ:\n%v\n%v", first, second)
	}
}

func TestSynthesizeNeverPromotesTwoNodeCandidates(t *testing.T) {
	// The spec -> price_spike walk is length 2 and must not surface as a
	// path, no matter how it would score.
	got := NewEngine(DefaultConfig()).Synthesize(marketGraph())
	for _, p := range got {
		if len(p.Nodes) < 3 {
			t.Errorf("path %s has %d nodes, birth rule floor is 3", p.ID, len(p.Nodes))
		}
	}
}

func TestSynthesizeFallbackNoEdges(t *testing.T) {
	dated := func(id, date string, conf int) common.Node {
		n := testNode(id, conf, id+".com")
		n.Date = date
		return n
	}

	t.Run("three or more nodes form an active chronological path", func(t *testing.T) {
		g := common.Graph{
			Nodes: []common.Node{
				dated("late", "2024-03-01T00:00:00Z", 80),
				dated("early", "2024-01-01T00:00:00Z", 80),
				testNode("undated", 80, "u.com"),
			},
		}
		got := NewEngine(DefaultConfig()).Synthesize(g)
		if len(got) != 1 {
			t.Fatalf("got %d paths, want 1", len(got))
		}
		p := got[0]
		want := []string{"early", "late", "undated"}
		if !reflect.DeepEqual(p.Nodes, want) {
			t.Errorf("nodes = %v, want %v", p.Nodes, want)
		}
		if p.Confidence != 50 {
			t.Errorf("confidence = %d, want 50", p.Confidence)
		}
		if p.Status != common.PathStatusActive {
			t.Errorf("status = %s, want active", p.Status)
		}
		if p.ID != "path-0" {
			t.Errorf("id = %s, want path-0", p.ID)
		}
	})

	t.Run("fewer than three nodes are only weak", func(t *testing.T) {
		g := common.Graph{
			Nodes: []common.Node{testNode("a", 80, "a.com"), testNode("b", 80, "b.com")},
		}
		got := NewEngine(DefaultConfig()).Synthesize(g)
		if len(got) != 1 {
			t.Fatalf("got %d paths, want 1", len(got))
		}
		if got[0].Status != common.PathStatusWeak {
			t.Errorf("status = %s, want weak", got[0].Status)
		}
		if got[0].Confidence != 50 {
			t.Errorf("confidence = %d, want 50", got[0].Confidence)
		}
	})
}

func TestSynthesizeFallbackNoAdmissibleCandidates(t *testing.T) {
	t.Run("edges without a qualifying walk", func(t *testing.T) {
		// Single edge: every walk is two nodes long, nothing survives.
		g := common.Graph{
			Nodes: []common.Node{
				testNode("a", 80, "a.com"),
				testNode("b", 80, "b.com"),
				testNode("c", 80, "c.com"),
			},
			Edges: []common.Edge{testEdge("a", "b", 0.8)},
		}
		got := NewEngine(DefaultConfig()).Synthesize(g)
		if len(got) != 1 {
			t.Fatalf("got %d paths, want 1", len(got))
		}
		p := got[0]
		if p.Confidence != 45 {
			t.Errorf("confidence = %d, want 45", p.Confidence)
		}
		if p.Status != common.PathStatusWeak {
			t.Errorf("status = %s, want weak", p.Status)
		}
		if len(p.Nodes) != 3 {
			t.Errorf("fallback path should cover all nodes, got %v", p.Nodes)
		}
	})

	t.Run("two-node graph degrades to dead", func(t *testing.T) {
		g := common.Graph{
			Nodes: []common.Node{testNode("a", 80, "a.com"), testNode("b", 80, "b.com")},
			Edges: []common.Edge{testEdge("a", "b", 0.8)},
		}
		got := NewEngine(DefaultConfig()).Synthesize(g)
		if len(got) != 1 {
			t.Fatalf("got %d paths, want 1", len(got))
		}
		if got[0].Status != common.PathStatusDead {
			t.Errorf("status = %s, want dead", got[0].Status)
		}
		if got[0].Confidence != 45 {
			t.Errorf("confidence = %d, want 45", got[0].Confidence)
		}
	})
}

func TestSynthesizeSkipsMalformedEdges(t *testing.T) {
	g := common.Graph{
		Nodes: []common.Node{
			testNode("a", 80, "a.com"),
			testNode("b", 80, "b.com"),
			testNode("c", 80, "c.com"),
		},
		Edges: []common.Edge{
			testEdge("a", "b", 0.8),
			testEdge("b", "c", 0.8),
			testEdge("ghost", "a", 0.9),
			testEdge("c", "phantom", 0.9),
		},
	}

	got := NewEngine(DefaultConfig()).Synthesize(g)
	if len(got) != 1 {
		t.Fatalf("got %d paths, want 1", len(got))
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got[0].Nodes, want) {
		t.Errorf("nodes = %v, want %v", got[0].Nodes, want)
	}
}
