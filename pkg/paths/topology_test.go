package paths

import (
	"reflect"
	"testing"

	"sleuth/pkg/common"
)

func testNode(id string, confidence int, sources ...string) common.Node {
	return common.Node{
		ID:         id,
		Type:       common.NodeTypeEvent,
		Label:      "node " + id,
		Confidence: confidence,
		Sources:    sources,
	}
}

func testEdge(from, to string, strength float64) common.Edge {
	return common.Edge{
		From:     from,
		To:       to,
		Relation: "causes",
		Strength: strength,
	}
}

func TestBuildTopology(t *testing.T) {
	tests := []struct {
		name         string
		graph        common.Graph
		wantRoots    []string
		wantOutcomes []string
	}{
		{
			name: "linear chain",
			graph: common.Graph{
				Nodes: []common.Node{testNode("a", 80), testNode("b", 80), testNode("c", 80)},
				Edges: []common.Edge{testEdge("a", "b", 0.8), testEdge("b", "c", 0.8)},
			},
			wantRoots:    []string{"a"},
			wantOutcomes: []string{"c"},
		},
		{
			name: "two roots converging",
			graph: common.Graph{
				Nodes: []common.Node{testNode("a", 80), testNode("b", 80), testNode("c", 80)},
				Edges: []common.Edge{testEdge("a", "c", 0.8), testEdge("b", "c", 0.8)},
			},
			wantRoots:    []string{"a", "b"},
			wantOutcomes: []string{"c"},
		},
		{
			name: "fully cyclic graph has no roots and every node as outcome",
			graph: common.Graph{
				Nodes: []common.Node{testNode("a", 80), testNode("b", 80), testNode("c", 80)},
				Edges: []common.Edge{testEdge("a", "b", 0.8), testEdge("b", "c", 0.8), testEdge("c", "a", 0.8)},
			},
			wantRoots:    nil,
			wantOutcomes: []string{"a", "b", "c"},
		},
		{
			name: "edge referencing a missing node is skipped",
			graph: common.Graph{
				Nodes: []common.Node{testNode("a", 80), testNode("b", 80)},
				Edges: []common.Edge{testEdge("a", "b", 0.8), testEdge("b", "ghost", 0.8), testEdge("ghost", "a", 0.8)},
			},
			wantRoots:    []string{"a"},
			wantOutcomes: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := buildTopology(tt.graph)

			if !reflect.DeepEqual(topo.roots, tt.wantRoots) {
				t.Errorf("roots = %v, want %v", topo.roots, tt.wantRoots)
			}

			outcomes := make([]string, 0, len(topo.outcomes))
			for _, n := range tt.graph.Nodes {
				if _, ok := topo.outcomes[n.ID]; ok {
					outcomes = append(outcomes, n.ID)
				}
			}
			if !reflect.DeepEqual(outcomes, tt.wantOutcomes) {
				t.Errorf("outcomes = %v, want %v", outcomes, tt.wantOutcomes)
			}
		})
	}
}

func TestBuildTopologyIndexesEdgesInOrder(t *testing.T) {
	g := common.Graph{
		Nodes: []common.Node{testNode("a", 80), testNode("b", 80), testNode("c", 80)},
		Edges: []common.Edge{testEdge("a", "b", 0.8), testEdge("a", "c", 0.6)},
	}
	topo := buildTopology(g)

	out := topo.out["a"]
	if len(out) != 2 || out[0].To != "b" || out[1].To != "c" {
		t.Fatalf("out edges of a = %v, want b then c", out)
	}
	if len(topo.in["b"]) != 1 || len(topo.in["c"]) != 1 {
		t.Errorf("in edges = %v", topo.in)
	}
}
