package paths

// Config holds the policy knobs of the synthesis engine. The defaults were
// hand-tuned against real investigative data; they are exposed here instead
// of being hard-coded so they can be recalibrated through configuration.
type Config struct {
	// MaxDepth caps the number of nodes in one enumerated walk. It bounds
	// combinatorial explosion on dense graphs and is a safety valve, not a
	// semantic requirement.
	MaxDepth int

	// MinPathNodes is the admissibility floor: a candidate with fewer nodes
	// is an assertion, not a corroborated narrative.
	MinPathNodes int

	// MinDistinctSources is the corroboration floor: a candidate backed by a
	// single voice is not admissible as a competing hypothesis.
	MinDistinctSources int

	// QuantityWeight rewards longer evidentiary chains, saturating at
	// QuantitySaturation nodes.
	QuantityWeight     float64
	QuantitySaturation int

	// CredibilityWeight scales the average caller-assigned node confidence.
	CredibilityWeight float64

	// DiversityBonus is granted when a candidate reaches the distinct-source
	// floor; below it each distinct source earns DiversityPartial.
	DiversityBonus   float64
	DiversityPartial float64

	// TemporalBonus is granted when the dated nodes of a path occur in
	// non-decreasing order; TemporalPartial applies otherwise.
	TemporalBonus   float64
	TemporalPartial float64

	// ConvergenceBonus rewards multi-link corroborated chains over trivial
	// ones.
	ConvergenceBonus float64

	// ContradictionWeight scales the weak-edge ratio penalty. An edge is weak
	// when its strength falls below WeakEdgeThreshold.
	ContradictionWeight float64
	WeakEdgeThreshold   float64

	// ScoreCeiling caps the final score: no single narrative should ever
	// present as fully certain.
	ScoreCeiling float64

	// DeadScore and ActiveScore are the lifecycle bands: a score below
	// DeadScore is dead, at or above ActiveScore is active, in between is
	// weak. DeadWeakEdgeRatio is the hard veto: a path whose weak-edge ratio
	// exceeds it is dead regardless of score.
	DeadScore         float64
	ActiveScore       float64
	DeadWeakEdgeRatio float64
}

// DefaultConfig returns the tuned defaults used in production.
func DefaultConfig() Config {
	return Config{
		MaxDepth:           15,
		MinPathNodes:       3,
		MinDistinctSources: 2,

		QuantityWeight:     0.15,
		QuantitySaturation: 8,

		CredibilityWeight: 0.25,

		DiversityBonus:   0.2,
		DiversityPartial: 0.1,

		TemporalBonus:   0.2,
		TemporalPartial: 0.05,

		ConvergenceBonus: 0.1,

		ContradictionWeight: 0.4,
		WeakEdgeThreshold:   0.5,

		ScoreCeiling: 0.92,

		DeadScore:         0.40,
		ActiveScore:       0.65,
		DeadWeakEdgeRatio: 0.5,
	}
}
