package engine

// Reason strings persisted alongside matches. These surface in the UI, so
// changes here change what agents read on every match card.
const (
	ReasonLocationExact   = "Exact location match"
	ReasonLocationPartial = "Location match"
	ReasonCategoryMatch   = "Category match"
	ReasonCategorySimilar = "Similar category"
	ReasonWithinBudget    = "Within budget"
	ReasonNearBudget      = "Near budget"
	ReasonBudgetAligned   = "Budget aligned"
	reasonInvestmentTag   = "Investment potential: "
)

// Score combines the feature sub-scores into a 0-100 total and the ordered
// reason list. Reasons follow evaluation order: location, category, budget,
// tags. Equal-score ordering across pairs is not this function's concern;
// the builder owns it.
func Score(lead LeadInput, listing ListingInput, profile Profile) (int, []string) {
	f := Compare(lead, listing, profile)

	total := f.Location + f.Category + f.Budget + f.Tag
	if total > MaxScore {
		total = MaxScore
	}

	reasons := make([]string, 0, 4)

	if f.Location > 0 {
		if f.LocationExact && profile.LocationExact != profile.LocationPartial {
			reasons = append(reasons, ReasonLocationExact)
		} else {
			reasons = append(reasons, ReasonLocationPartial)
		}
	}

	if f.Category > 0 {
		if f.CategoryAdjacent {
			reasons = append(reasons, ReasonCategorySimilar)
		} else {
			reasons = append(reasons, ReasonCategoryMatch)
		}
	}

	if f.Budget > 0 {
		reasons = append(reasons, budgetReason(f.Budget, profile))
	}

	if f.Tag > 0 {
		reasons = append(reasons, reasonInvestmentTag+f.TagMatched)
	}

	return total, reasons
}

func budgetReason(awarded int, profile Profile) string {
	if profile.BudgetStrategy == BudgetMidpointDistance {
		return ReasonBudgetAligned
	}
	if awarded == profile.Budget {
		return ReasonWithinBudget
	}
	return ReasonNearBudget
}
