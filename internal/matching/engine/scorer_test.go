package engine

import "testing"

func TestScore_FleetPerfectMatchWithOrderedReasons(t *testing.T) {
	lead := LeadInput{
		Location:  strPtr("Whitefield, Bangalore"),
		Category:  strPtr("apartment"),
		BudgetMin: f64Ptr(5000000),
		BudgetMax: f64Ptr(8000000),
	}
	listing := ListingInput{
		Location: strPtr("Whitefield"),
		Category: strPtr("apartment"),
		Price:    f64Ptr(6500000),
	}

	score, reasons := Score(lead, listing, FleetProfile)

	if score != 100 {
		t.Fatalf("expected score 100, got %d", score)
	}
	if len(reasons) != 3 {
		t.Fatalf("expected 3 reasons, got %d: %v", len(reasons), reasons)
	}
	if reasons[0] != ReasonLocationPartial {
		t.Fatalf("expected location reason first, got %q", reasons[0])
	}
	if reasons[1] != ReasonCategoryMatch {
		t.Fatalf("expected category reason second, got %q", reasons[1])
	}
	if reasons[2] != ReasonWithinBudget {
		t.Fatalf("expected budget reason third, got %q", reasons[2])
	}
}

func TestScore_FleetProfileNeverDistinguishesExactLocation(t *testing.T) {
	lead := LeadInput{Location: strPtr("Whitefield")}
	listing := ListingInput{Location: strPtr("Whitefield")}

	score, reasons := Score(lead, listing, FleetProfile)

	if score != FleetProfile.LocationExact {
		t.Fatalf("expected %d, got %d", FleetProfile.LocationExact, score)
	}
	// Exact and partial pay the same under fleet weights, so the generic
	// reason is used even for exact equality.
	if len(reasons) != 1 || reasons[0] != ReasonLocationPartial {
		t.Fatalf("expected [%q], got %v", ReasonLocationPartial, reasons)
	}
}

func TestScore_TargetedExactLocationReason(t *testing.T) {
	lead := LeadInput{Location: strPtr("Whitefield")}
	listing := ListingInput{Location: strPtr("whitefield")}

	score, reasons := Score(lead, listing, TargetedProfile)

	if score != TargetedProfile.LocationExact {
		t.Fatalf("expected %d, got %d", TargetedProfile.LocationExact, score)
	}
	if len(reasons) != 1 || reasons[0] != ReasonLocationExact {
		t.Fatalf("expected [%q], got %v", ReasonLocationExact, reasons)
	}
}

func TestScore_TargetedTagBonusClampedAt100(t *testing.T) {
	lead := LeadInput{
		Location:  strPtr("Whitefield"),
		Category:  strPtr("apartment"),
		BudgetMin: f64Ptr(9000000),
		BudgetMax: f64Ptr(11000000),
	}
	listing := ListingInput{
		Location: strPtr("Whitefield"),
		Category: strPtr("apartment"),
		PriceMin: f64Ptr(9000000),
		PriceMax: f64Ptr(11000000),
		Tags:     []string{"rental yield"},
	}

	// 30 + 20 + 40 + 10 = 100, exactly at the cap.
	score, reasons := Score(lead, listing, TargetedProfile)
	if score != 100 {
		t.Fatalf("expected score 100, got %d", score)
	}
	if len(reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %v", reasons)
	}
	if reasons[3] != "Investment potential: rental yield" {
		t.Fatalf("expected tag reason last, got %q", reasons[3])
	}
}

func TestScore_NoOverlapProducesZeroAndNoReasons(t *testing.T) {
	lead := LeadInput{
		Location:  strPtr("Indiranagar"),
		Category:  strPtr("plot"),
		BudgetMin: f64Ptr(1000000),
		BudgetMax: f64Ptr(2000000),
	}
	listing := ListingInput{
		Location: strPtr("Koramangala"),
		Category: strPtr("apartment"),
		Price:    f64Ptr(9000000),
	}

	score, reasons := Score(lead, listing, FleetProfile)
	if score != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
	if len(reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", reasons)
	}
}
