package common

// Graph represents the evidence graph of one investigation. It is the sole
// input to path synthesis: nodes are pieces of evidence, edges are directed
// relationships between them.
//
// A graph is supplied wholesale on each call and is never mutated by the
// synthesis engine.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents one evidentiary unit discovered during an investigation:
// an event, actor, resource, or decision.
//
// Confidence is the caller-assigned belief (0-100) in the node's factual
// accuracy. Sources lists attribution strings (URLs or source names) and may
// be empty, in which case the label doubles as a weak attribution signal.
// Date is an optional RFC 3339 timestamp; it is empty for atemporal entities
// such as an organization.
type Node struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Label      string   `json:"label"`
	Date       string   `json:"date,omitempty"`
	Confidence int      `json:"confidence"`
	Sources    []string `json:"sources"`
}

// Node types produced by extraction. The synthesis engine treats the type as
// informational only.
const (
	NodeTypeEvent    = "event"
	NodeTypeActor    = "actor"
	NodeTypeResource = "resource"
	NodeTypeDecision = "decision"
)

// Edge represents a directed relationship between two nodes.
//
// Strength (0-1) is the evidentiary strength of the causal or associative
// link; an edge with strength below 0.5 counts as weak during scoring.
// Confidence (0-100) is independent of strength and is preserved in the
// contract without being consumed by scoring. Relation is a free-text label
// ("causes", "influences", "supports") used as display metadata only.
type Edge struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Relation   string  `json:"relation"`
	Strength   float64 `json:"strength"`
	Confidence int     `json:"confidence"`
}

// PathStatus is the lifecycle classification of a synthesized path.
type PathStatus string

const (
	// PathStatusActive marks a well-supported hypothesis.
	PathStatusActive PathStatus = "active"
	// PathStatusWeak marks a marginal hypothesis.
	PathStatusWeak PathStatus = "weak"
	// PathStatusDead marks a discredited hypothesis. Dead paths are kept in
	// the result set so the full history of considered-and-discredited
	// hypotheses stays auditable.
	PathStatusDead PathStatus = "dead"
)

// Path is one ranked causal hypothesis through the graph.
//
// Nodes is the ordered sequence of node ids forming the narrative; in
// fallback cases it may be a single node or a date-sorted sequence instead of
// a walk. Confidence is round(score*100) and always falls in [0,100]. The
// hypothesis label is attached downstream by the AI labeler, not by the
// synthesis engine.
type Path struct {
	ID              string     `json:"id"`
	Nodes           []string   `json:"nodes"`
	Status          PathStatus `json:"status"`
	Confidence      int        `json:"confidence"`
	HypothesisLabel string     `json:"hypothesis_label,omitempty"`
}
