package extract

import (
	"reflect"
	"testing"

	"sleuth/pkg/common"
)

func TestMergeEvidenceNodes(t *testing.T) {
	nodes := []common.Node{
		{ID: "price_spike", Type: "event", Label: "price spike", Confidence: 70, Sources: []string{"reuters"}},
	}
	newNodes := []common.Node{
		{ID: "price_spike", Type: "event", Label: "price spike", Date: "2024-03-05", Confidence: 85, Sources: []string{"ft"}},
		{ID: "export_ban", Type: "event", Label: "export ban", Confidence: 90, Sources: []string{"ft"}},
	}

	merged, _ := mergeEvidence(nodes, newNodes, nil, nil)

	if len(merged) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(merged))
	}
	spike := merged[0]
	if !reflect.DeepEqual(spike.Sources, []string{"reuters", "ft"}) {
		t.Errorf("sources not unioned: %v", spike.Sources)
	}
	if spike.Confidence != 85 {
		t.Errorf("confidence should keep maximum, got %d", spike.Confidence)
	}
	if spike.Date != "2024-03-05" {
		t.Errorf("empty date should be filled, got %q", spike.Date)
	}
}

func TestMergeEvidenceKeepsExistingDate(t *testing.T) {
	nodes := []common.Node{
		{ID: "export_ban", Type: "event", Date: "2024-03-01", Confidence: 80},
	}
	newNodes := []common.Node{
		{ID: "export_ban", Type: "event", Date: "2024-03-09", Confidence: 60},
	}

	merged, _ := mergeEvidence(nodes, newNodes, nil, nil)
	if merged[0].Date != "2024-03-01" {
		t.Errorf("existing date overwritten: %q", merged[0].Date)
	}
	if merged[0].Confidence != 80 {
		t.Errorf("lower confidence should not win: %d", merged[0].Confidence)
	}
}

func TestMergeEvidenceEdges(t *testing.T) {
	nodes := []common.Node{
		{ID: "a", Type: "event"},
		{ID: "b", Type: "event"},
	}
	edges := []common.Edge{
		{From: "a", To: "b", Relation: "triggered", Strength: 0.8, Confidence: 70},
	}
	newEdges := []common.Edge{
		{From: "a", To: "b", Relation: "triggered", Strength: 0.4, Confidence: 90},
		{From: "a", To: "b", Relation: "preceded", Strength: 0.6, Confidence: 50},
		{From: "a", To: "missing", Relation: "supplied", Strength: 0.5, Confidence: 50},
	}

	_, merged := mergeEvidence(nodes, nil, edges, newEdges)

	if len(merged) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(merged))
	}
	if merged[0].Strength != 0.6 {
		t.Errorf("strength should average to 0.6, got %v", merged[0].Strength)
	}
	if merged[0].Confidence != 90 {
		t.Errorf("confidence should keep maximum, got %d", merged[0].Confidence)
	}
	if merged[1].Relation != "preceded" {
		t.Errorf("distinct relation should stay separate, got %q", merged[1].Relation)
	}
}

func TestMergeGraphs(t *testing.T) {
	base := &common.Graph{
		Nodes: []common.Node{{ID: "a", Type: "event", Sources: []string{"s1"}}},
		Edges: []common.Edge{},
	}
	fragment := &common.Graph{
		Nodes: []common.Node{
			{ID: "a", Type: "event", Sources: []string{"s2"}},
			{ID: "b", Type: "actor", Sources: []string{"s2"}},
		},
		Edges: []common.Edge{{From: "a", To: "b", Relation: "involves", Strength: 0.7}},
	}

	merged := MergeGraphs(base, fragment)

	if len(merged.Nodes) != 2 || len(merged.Edges) != 1 {
		t.Fatalf("unexpected merge result: %d nodes, %d edges", len(merged.Nodes), len(merged.Edges))
	}
	if !reflect.DeepEqual(merged.Nodes[0].Sources, []string{"s1", "s2"}) {
		t.Errorf("sources not unioned: %v", merged.Nodes[0].Sources)
	}
	if len(base.Nodes) != 1 || len(base.Edges) != 0 {
		t.Errorf("base graph mutated: %+v", base)
	}
}

func TestUnionSources(t *testing.T) {
	got := unionSources([]string{"a", "b"}, []string{"b", "", "c", "a"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unionSources = %v, want %v", got, want)
	}
}
