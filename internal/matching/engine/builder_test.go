package engine

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func makeListing(i int, location string, price float64) ListingInput {
	return ListingInput{
		ID:       uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", i)),
		Location: strPtr(location),
		Category: strPtr("apartment"),
		Price:    f64Ptr(price),
		PriceMin: f64Ptr(price - 500000),
		PriceMax: f64Ptr(price + 500000),
	}
}

func TestBuildFull_KeepsOnlyQualifyingPairs(t *testing.T) {
	lead := LeadInput{
		ID:        uuid.New(),
		Location:  strPtr("Whitefield"),
		Category:  strPtr("apartment"),
		BudgetMin: f64Ptr(5000000),
		BudgetMax: f64Ptr(8000000),
	}
	weak := makeListing(3, "Koramangala", 20000000)
	weak.Category = strPtr("villa")

	listings := []ListingInput{
		makeListing(1, "Whitefield", 6000000),  // full match
		makeListing(2, "Koramangala", 6000000), // category + budget only
		weak,                                   // nothing in common
	}

	candidates := BuildFull([]LeadInput{lead}, listings)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Score != 100 {
		t.Fatalf("expected first candidate score 100, got %d", candidates[0].Score)
	}
	if candidates[1].Score != 60 {
		t.Fatalf("expected second candidate score 60, got %d", candidates[1].Score)
	}
	// Fleet candidates never carry the highly-suitable flag.
	if candidates[0].HighlySuitable {
		t.Fatalf("fleet candidates must not be flagged highly suitable")
	}
}

func TestBuildFull_ScoreExactlyAtThresholdQualifies(t *testing.T) {
	lead := LeadInput{
		ID:       uuid.New(),
		Category: strPtr("apartment"),
	}
	listings := []ListingInput{makeListing(1, "anywhere", 1000000)}

	candidates := BuildFull([]LeadInput{lead}, listings)

	if len(candidates) != 1 {
		t.Fatalf("expected category-only score 30 to qualify, got %d candidates", len(candidates))
	}
	if candidates[0].Score != MinQualifyingScore {
		t.Fatalf("expected score %d, got %d", MinQualifyingScore, candidates[0].Score)
	}
}

func TestBuildForLead_TopFiveByScoreWithListingIDTieBreak(t *testing.T) {
	lead := LeadInput{
		ID:        uuid.New(),
		Location:  strPtr("Whitefield"),
		Category:  strPtr("apartment"),
		BudgetMin: f64Ptr(5500000),
		BudgetMax: f64Ptr(6500000),
	}

	// Seven identical full matches plus one weaker one.
	listings := make([]ListingInput, 0, 8)
	for i := 7; i >= 1; i-- {
		listings = append(listings, makeListing(i, "Whitefield", 6000000))
	}
	listings = append(listings, makeListing(8, "Koramangala", 6000000))

	candidates := BuildForLead(lead, listings)

	if len(candidates) != TargetedTopK {
		t.Fatalf("expected %d candidates, got %d", TargetedTopK, len(candidates))
	}
	// Ties resolve by listing ID ascending regardless of input order.
	for i, c := range candidates {
		want := uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", i+1))
		if c.ListingID != want {
			t.Fatalf("position %d: expected listing %s, got %s", i, want, c.ListingID)
		}
	}
}

func TestBuildForLead_HighlySuitableFlag(t *testing.T) {
	lead := LeadInput{
		ID:        uuid.New(),
		Location:  strPtr("Whitefield"),
		Category:  strPtr("apartment"),
		BudgetMin: f64Ptr(5500000),
		BudgetMax: f64Ptr(6500000),
	}

	strong := makeListing(1, "Whitefield", 6000000)   // 30+20+40 = 90
	moderate := makeListing(2, "Whitefield", 8400000) // 30+20+10 = 60

	candidates := BuildForLead(lead, []ListingInput{moderate, strong})

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Score != 90 || !candidates[0].HighlySuitable {
		t.Fatalf("expected leading candidate 90/highly suitable, got %d/%v",
			candidates[0].Score, candidates[0].HighlySuitable)
	}
	if candidates[1].Score != 60 || candidates[1].HighlySuitable {
		t.Fatalf("expected runner-up 60/not highly suitable, got %d/%v",
			candidates[1].Score, candidates[1].HighlySuitable)
	}
}

func TestBuildForLead_NoQualifiersYieldsEmptySet(t *testing.T) {
	lead := LeadInput{ID: uuid.New(), Location: strPtr("Indiranagar")}

	candidates := BuildForLead(lead, []ListingInput{makeListing(1, "Koramangala", 5000000)})

	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}
