package engine

import (
	"strings"

	"github.com/google/uuid"
)

// LeadInput carries the matching-relevant slice of a lead. Missing fields
// contribute zero to the score, never an error.
type LeadInput struct {
	ID        uuid.UUID
	Location  *string
	Category  *string
	BudgetMin *float64
	BudgetMax *float64
	Tags      []string
}

// ListingInput carries the matching-relevant slice of a listing. A listing
// exposes either a single Price or a PriceMin/PriceMax range.
type ListingInput struct {
	ID       uuid.UUID
	Location *string
	Category *string
	Price    *float64
	PriceMin *float64
	PriceMax *float64
	Tags     []string
}

// adjacentCategories is the fixed substitutable residential pair that earns
// partial category credit in profiles with a nonzero CategoryAdjacent weight.
var adjacentCategories = [2]string{"villa", "row_house"}

// investmentKeywords mark a listing tag as investment/ROI related.
var investmentKeywords = []string{"investment", "roi", "rental", "yield"}

// Features holds the per-feature sub-scores for one (lead, listing) pair.
// Each sub-score is already clamped to its feature weight and is never
// negative.
type Features struct {
	Location int
	// LocationExact records whether the location sub-score came from exact
	// equality rather than substring containment.
	LocationExact bool
	Category      int
	// CategoryAdjacent records whether the category credit was partial.
	CategoryAdjacent bool
	Budget           int
	Tag              int
	// TagMatched is the listing tag that earned the tag bonus.
	TagMatched string
}

// Compare computes the independent feature sub-scores for one pair under the
// given weight profile. Pure: same inputs always produce the same output.
func Compare(lead LeadInput, listing ListingInput, profile Profile) Features {
	var f Features

	f.Location, f.LocationExact = locationScore(lead.Location, listing.Location, profile)
	f.Category, f.CategoryAdjacent = categoryScore(lead.Category, listing.Category, profile)

	switch profile.BudgetStrategy {
	case BudgetMidpointDistance:
		f.Budget = midpointDistanceScore(lead, listing, profile.Budget)
	default:
		f.Budget = pointContainmentScore(lead, listing, profile.Budget)
	}

	if profile.TagBonus > 0 {
		f.Tag, f.TagMatched = tagBonus(listing.Tags, profile.TagBonus)
	}

	return f
}

// locationScore awards full weight for exact equality after trimming and the
// partial weight for case-insensitive substring containment in either
// direction.
func locationScore(leadLoc, listingLoc *string, profile Profile) (int, bool) {
	if leadLoc == nil || listingLoc == nil {
		return 0, false
	}

	a := strings.ToLower(strings.TrimSpace(*leadLoc))
	b := strings.ToLower(strings.TrimSpace(*listingLoc))
	if a == "" || b == "" {
		return 0, false
	}

	if a == b {
		return profile.LocationExact, true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return profile.LocationPartial, false
	}
	return 0, false
}

func categoryScore(leadCat, listingCat *string, profile Profile) (int, bool) {
	if leadCat == nil || listingCat == nil {
		return 0, false
	}

	a := strings.ToLower(strings.TrimSpace(*leadCat))
	b := strings.ToLower(strings.TrimSpace(*listingCat))
	if a == "" || b == "" {
		return 0, false
	}

	if a == b {
		return profile.Category, false
	}
	if profile.CategoryAdjacent > 0 && isAdjacentPair(a, b) {
		return profile.CategoryAdjacent, true
	}
	return 0, false
}

func isAdjacentPair(a, b string) bool {
	return (a == adjacentCategories[0] && b == adjacentCategories[1]) ||
		(a == adjacentCategories[1] && b == adjacentCategories[0])
}

// pointContainmentScore awards full weight when the listing's single price
// falls inside [budget_min, budget_max] (defaulting to 0 and +inf), and half
// weight when it misses either bound by at most 20%.
func pointContainmentScore(lead LeadInput, listing ListingInput, weight int) int {
	if listing.Price == nil {
		return 0
	}
	if lead.BudgetMin == nil && lead.BudgetMax == nil {
		return 0
	}

	price := *listing.Price
	min := 0.0
	if lead.BudgetMin != nil {
		min = *lead.BudgetMin
	}

	if lead.BudgetMax == nil {
		if price >= min {
			return weight
		}
		if min > 0 && price >= min*0.8 {
			return weight / 2
		}
		return 0
	}

	max := *lead.BudgetMax
	if price >= min && price <= max {
		return weight
	}
	if price < min && min > 0 && price >= min*0.8 {
		return weight / 2
	}
	if price > max && price <= max*1.2 {
		return weight / 2
	}
	return 0
}

// midpointDistanceScore compares range midpoints when both sides expose a
// min/max range, tiering credit by the relative gap between midpoints.
func midpointDistanceScore(lead LeadInput, listing ListingInput, weight int) int {
	if lead.BudgetMin == nil || lead.BudgetMax == nil {
		return 0
	}
	if listing.PriceMin == nil || listing.PriceMax == nil {
		return 0
	}

	leadMid := (*lead.BudgetMin + *lead.BudgetMax) / 2
	listingMid := (*listing.PriceMin + *listing.PriceMax) / 2
	if leadMid <= 0 {
		return 0
	}

	gap := listingMid - leadMid
	if gap < 0 {
		gap = -gap
	}
	relative := gap / leadMid

	switch {
	case relative <= 0.10:
		return weight
	case relative <= 0.20:
		return weight * 3 / 4
	case relative <= 0.30:
		return weight / 2
	case relative <= 0.40:
		return weight / 4
	default:
		return 0
	}
}

func tagBonus(tags []string, weight int) (int, string) {
	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		for _, keyword := range investmentKeywords {
			if strings.Contains(lowered, keyword) {
				return weight, tag
			}
		}
	}
	return 0, ""
}
