package extract

import (
	"context"
	"testing"

	"sleuth/pkg/ai"
	"sleuth/pkg/common"
)

// stubAIClient returns a canned JSON body from GenerateCompletionWithFormat
// and fails every other generation method.
type stubAIClient struct {
	response string
	calls    int
}

func (s *stubAIClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return s.response, nil
}

func (s *stubAIClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	s.calls++
	return ai.UnmarshalFlexible(s.response, out)
}

func (s *stubAIClient) GenerateChat(ctx context.Context, messages []ai.ChatMessage, opts ...ai.GenerateOption) (string, error) {
	return s.response, nil
}

func (s *stubAIClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	return []float32{0}, nil
}

func (s *stubAIClient) GenerateEmbeddings(ctx context.Context, inputs [][]byte) ([][]float32, error) {
	out := make([][]float32, len(inputs))
	for i := range out {
		out[i] = []float32{0}
	}
	return out, nil
}

func (s *stubAIClient) LoadModel(ctx context.Context, opts ...ai.GenerateOption) error { return nil }
func (s *stubAIClient) ResetMetrics()                                                  {}
func (s *stubAIClient) GetMetrics() ai.ModelMetrics                                    { return ai.ModelMetrics{} }

func dedupeTestGraph() *common.Graph {
	return &common.Graph{
		Nodes: []common.Node{
			{ID: "price_spike", Type: "event", Label: "price spike", Confidence: 70, Sources: []string{"reuters"}},
			{ID: "sharp_price_increase", Type: "event", Label: "sharp price increase", Date: "2024-03-05", Confidence: 85, Sources: []string{"ft"}},
			{ID: "export_ban", Type: "event", Label: "export ban", Confidence: 90, Sources: []string{"ft"}},
		},
		Edges: []common.Edge{
			{From: "export_ban", To: "price_spike", Relation: "triggered", Strength: 0.8, Confidence: 80},
			{From: "export_ban", To: "sharp_price_increase", Relation: "triggered", Strength: 0.6, Confidence: 90},
		},
	}
}

func TestDedupeEvidenceMergesGroup(t *testing.T) {
	client, err := NewExtractClient(NewExtractClientParams{})
	if err != nil {
		t.Fatal(err)
	}

	stub := &stubAIClient{response: `{
		"duplicates": [
			{"canonicalLabel": "price spike", "nodes": ["price_spike", "sharp_price_increase"]}
		]
	}`}

	got, err := client.DedupeEvidence(context.Background(), dedupeTestGraph(), stub)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Nodes) != 2 {
		t.Fatalf("expected 2 nodes after merge, got %d", len(got.Nodes))
	}

	var spike *common.Node
	for i := range got.Nodes {
		if got.Nodes[i].ID == "price_spike" {
			spike = &got.Nodes[i]
		}
		if got.Nodes[i].ID == "sharp_price_increase" {
			t.Error("merged node still present")
		}
	}
	if spike == nil {
		t.Fatal("canonical node missing")
	}
	if spike.Confidence != 85 {
		t.Errorf("confidence should keep group maximum, got %d", spike.Confidence)
	}
	if spike.Date != "2024-03-05" {
		t.Errorf("date should be filled from merged node, got %q", spike.Date)
	}
	if len(spike.Sources) != 2 {
		t.Errorf("sources should be unioned, got %v", spike.Sources)
	}

	if len(got.Edges) != 1 {
		t.Fatalf("remapped edges should collapse, got %d", len(got.Edges))
	}
	e := got.Edges[0]
	if e.From != "export_ban" || e.To != "price_spike" {
		t.Errorf("edge not remapped: %+v", e)
	}
	if e.Strength != 0.7 {
		t.Errorf("collapsed strength should average to 0.7, got %v", e.Strength)
	}
	if e.Confidence != 90 {
		t.Errorf("collapsed confidence should keep maximum, got %d", e.Confidence)
	}
}

func TestDedupeEvidenceMixedTypesSkipped(t *testing.T) {
	client, err := NewExtractClient(NewExtractClientParams{})
	if err != nil {
		t.Fatal(err)
	}

	g := &common.Graph{
		Nodes: []common.Node{
			{ID: "ministry", Type: "actor", Label: "ministry"},
			{ID: "ministry_decision", Type: "decision", Label: "ministry decision"},
		},
	}
	stub := &stubAIClient{response: `{
		"duplicates": [
			{"canonicalLabel": "ministry", "nodes": ["ministry", "ministry_decision"]}
		]
	}`}

	got, err := client.DedupeEvidence(context.Background(), g, stub)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("mixed-type group must not merge, got %d nodes", len(got.Nodes))
	}
}

func TestDedupeEvidenceNoDuplicates(t *testing.T) {
	client, err := NewExtractClient(NewExtractClientParams{})
	if err != nil {
		t.Fatal(err)
	}

	g := dedupeTestGraph()
	stub := &stubAIClient{response: `{"duplicates": []}`}

	got, err := client.DedupeEvidence(context.Background(), g, stub)
	if err != nil {
		t.Fatal(err)
	}
	if got != g {
		t.Error("graph without duplicates should be returned unchanged")
	}
}

func TestDedupeEvidenceTinyGraphSkipsAI(t *testing.T) {
	client, err := NewExtractClient(NewExtractClientParams{})
	if err != nil {
		t.Fatal(err)
	}

	g := &common.Graph{Nodes: []common.Node{{ID: "only", Type: "event"}}}
	stub := &stubAIClient{response: `{"duplicates": []}`}

	if _, err := client.DedupeEvidence(context.Background(), g, stub); err != nil {
		t.Fatal(err)
	}
	if stub.calls != 0 {
		t.Errorf("single-node graph should not call the model, calls=%d", stub.calls)
	}
}
