package engine

import "testing"

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestLocationScore_ExactMatchAfterTrimming(t *testing.T) {
	score, exact := locationScore(strPtr("  Whitefield "), strPtr("whitefield"), FleetProfile)
	if score != FleetProfile.LocationExact {
		t.Fatalf("expected %d, got %d", FleetProfile.LocationExact, score)
	}
	if !exact {
		t.Fatalf("expected exact match flag")
	}
}

func TestLocationScore_SubstringEitherDirection(t *testing.T) {
	score, exact := locationScore(strPtr("Whitefield, Bangalore"), strPtr("Whitefield"), TargetedProfile)
	if score != TargetedProfile.LocationPartial {
		t.Fatalf("expected %d, got %d", TargetedProfile.LocationPartial, score)
	}
	if exact {
		t.Fatalf("substring match must not report exact")
	}

	score, _ = locationScore(strPtr("Whitefield"), strPtr("Whitefield, Bangalore"), TargetedProfile)
	if score != TargetedProfile.LocationPartial {
		t.Fatalf("expected %d for reversed containment, got %d", TargetedProfile.LocationPartial, score)
	}
}

func TestLocationScore_MissingOrEmptyScoresZero(t *testing.T) {
	if score, _ := locationScore(nil, strPtr("Whitefield"), FleetProfile); score != 0 {
		t.Fatalf("nil lead location must score 0, got %d", score)
	}
	if score, _ := locationScore(strPtr("   "), strPtr("Whitefield"), FleetProfile); score != 0 {
		t.Fatalf("blank lead location must score 0, got %d", score)
	}
}

func TestCategoryScore_AdjacentPairOnlyWhenProfileAllows(t *testing.T) {
	score, adjacent := categoryScore(strPtr("villa"), strPtr("row_house"), TargetedProfile)
	if score != TargetedProfile.CategoryAdjacent {
		t.Fatalf("expected %d, got %d", TargetedProfile.CategoryAdjacent, score)
	}
	if !adjacent {
		t.Fatalf("expected adjacent flag")
	}

	// The fleet profile has no adjacent credit.
	score, _ = categoryScore(strPtr("villa"), strPtr("row_house"), FleetProfile)
	if score != 0 {
		t.Fatalf("fleet profile must not award adjacent credit, got %d", score)
	}
}

func TestCategoryScore_UnrelatedCategories(t *testing.T) {
	score, _ := categoryScore(strPtr("villa"), strPtr("apartment"), TargetedProfile)
	if score != 0 {
		t.Fatalf("unrelated categories must score 0, got %d", score)
	}
}

func TestPointContainment_FullAndNearMissCredit(t *testing.T) {
	lead := LeadInput{BudgetMin: f64Ptr(5000000), BudgetMax: f64Ptr(8000000)}

	cases := []struct {
		name  string
		price float64
		want  int
	}{
		{"inside range", 6000000, 30},
		{"at lower bound", 5000000, 30},
		{"at upper bound", 8000000, 30},
		{"within 20% above max", 9600000, 15},
		{"just past 20% above max", 9600001, 0},
		{"within 20% below min", 4000000, 15},
		{"far below min", 3999999, 0},
	}

	for _, tc := range cases {
		got := pointContainmentScore(lead, ListingInput{Price: f64Ptr(tc.price)}, 30)
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestPointContainment_OpenEndedBudget(t *testing.T) {
	// Only a minimum: anything at or above it is a full match.
	lead := LeadInput{BudgetMin: f64Ptr(5000000)}
	if got := pointContainmentScore(lead, ListingInput{Price: f64Ptr(90000000)}, 30); got != 30 {
		t.Fatalf("open max must accept any price above min, got %d", got)
	}

	// No budget at all contributes nothing.
	if got := pointContainmentScore(LeadInput{}, ListingInput{Price: f64Ptr(5000000)}, 30); got != 0 {
		t.Fatalf("missing budget must score 0, got %d", got)
	}

	// Missing price contributes nothing.
	if got := pointContainmentScore(lead, ListingInput{}, 30); got != 0 {
		t.Fatalf("missing price must score 0, got %d", got)
	}
}

func TestMidpointDistance_Tiers(t *testing.T) {
	lead := LeadInput{BudgetMin: f64Ptr(9000000), BudgetMax: f64Ptr(11000000)} // midpoint 10M

	cases := []struct {
		name     string
		min, max float64
		want     int
	}{
		{"identical midpoints", 9000000, 11000000, 40},
		{"10% gap", 10000000, 12000000, 40},    // midpoint 11M
		{"20% gap", 11000000, 13000000, 30},    // midpoint 12M
		{"30% gap", 12000000, 14000000, 20},    // midpoint 13M
		{"40% gap", 13000000, 15000000, 10},    // midpoint 14M
		{"beyond 40%", 14000000, 16000000, 0},  // midpoint 15M
		{"below by 30%", 6000000, 8000000, 20}, // midpoint 7M
	}

	for _, tc := range cases {
		got := midpointDistanceScore(lead, ListingInput{PriceMin: f64Ptr(tc.min), PriceMax: f64Ptr(tc.max)}, 40)
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestMidpointDistance_RequiresBothRanges(t *testing.T) {
	lead := LeadInput{BudgetMin: f64Ptr(9000000), BudgetMax: f64Ptr(11000000)}

	if got := midpointDistanceScore(lead, ListingInput{Price: f64Ptr(10000000)}, 40); got != 0 {
		t.Fatalf("single price must score 0 under midpoint strategy, got %d", got)
	}
	if got := midpointDistanceScore(LeadInput{BudgetMin: f64Ptr(9000000)}, ListingInput{PriceMin: f64Ptr(9000000), PriceMax: f64Ptr(11000000)}, 40); got != 0 {
		t.Fatalf("open lead budget must score 0 under midpoint strategy, got %d", got)
	}
}

func TestTagBonus_MatchesInvestmentKeywordsCaseInsensitive(t *testing.T) {
	score, matched := tagBonus([]string{"sea-view", "High ROI"}, 10)
	if score != 10 {
		t.Fatalf("expected bonus 10, got %d", score)
	}
	if matched != "High ROI" {
		t.Fatalf("expected matched tag to be reported, got %q", matched)
	}

	score, _ = tagBonus([]string{"sea-view", "corner-plot"}, 10)
	if score != 0 {
		t.Fatalf("expected no bonus, got %d", score)
	}
}
