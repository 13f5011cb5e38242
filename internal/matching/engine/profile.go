// Package engine implements the pure scoring core of the matching engine:
// per-feature comparison, weighted scoring with human-readable reasons, and
// candidate set construction. Nothing in this package touches storage.
package engine

// BudgetStrategy selects how budget/price compatibility is computed.
type BudgetStrategy int

const (
	// BudgetPointContainment checks whether the listing's single price falls
	// inside the lead's budget range, with half credit for a near miss.
	BudgetPointContainment BudgetStrategy = iota
	// BudgetMidpointDistance compares the midpoints of the lead's budget
	// range and the listing's price range, tiering credit by relative gap.
	BudgetMidpointDistance
)

// Profile is a named weight table for the feature comparator. The two
// profiles below intentionally disagree: the source system grew separate
// tables for bulk and per-lead scoring, and unifying them silently would
// change persisted scores. Kept as independent configurations; see DESIGN.md.
type Profile struct {
	Name string

	// LocationExact is awarded for exact (trimmed, case-insensitive) equality;
	// LocationPartial for substring containment in either direction.
	LocationExact   int
	LocationPartial int

	// Category is awarded for an exact category match; CategoryAdjacent for
	// the substitutable residential pair (villa / row_house).
	Category         int
	CategoryAdjacent int

	Budget         int
	BudgetStrategy BudgetStrategy

	// TagBonus is awarded when any listing tag carries an investment keyword.
	TagBonus int
}

// FleetProfile is the weight table for full-dataset regeneration.
// Exact and partial location matches score identically here.
var FleetProfile = Profile{
	Name:            "fleet",
	LocationExact:   40,
	LocationPartial: 40,
	Category:        30,
	Budget:          30,
	BudgetStrategy:  BudgetPointContainment,
}

// TargetedProfile is the weight table for single-lead regeneration.
var TargetedProfile = Profile{
	Name:             "targeted",
	LocationExact:    30,
	LocationPartial:  24,
	Category:         20,
	CategoryAdjacent: 10,
	Budget:           40,
	BudgetStrategy:   BudgetMidpointDistance,
	TagBonus:         10,
}

const (
	// MaxScore caps the total score.
	MaxScore = 100
	// MinQualifyingScore is the persistence threshold for both modes.
	MinQualifyingScore = 30
	// HighlySuitableScore marks a targeted match as highly suitable.
	HighlySuitableScore = 80
	// TargetedTopK caps the number of matches kept per lead in targeted mode.
	TargetedTopK = 5
)
