package engine

import (
	"sort"

	"github.com/google/uuid"
)

// Candidate is one qualifying (lead, listing) pair produced by the builder,
// ready for persistence.
type Candidate struct {
	LeadID         uuid.UUID
	ListingID      uuid.UUID
	Score          int
	Reasons        []string
	HighlySuitable bool
}

// BuildFull scores every (lead, listing) pair under the fleet profile and
// keeps those at or above the qualifying threshold. No per-lead cap and no
// ordering guarantee beyond input order, which keeps repeated runs over
// unchanged data byte-identical.
func BuildFull(leads []LeadInput, listings []ListingInput) []Candidate {
	candidates := make([]Candidate, 0, len(leads))

	for _, lead := range leads {
		for _, listing := range listings {
			score, reasons := Score(lead, listing, FleetProfile)
			if score < MinQualifyingScore {
				continue
			}
			candidates = append(candidates, Candidate{
				LeadID:    lead.ID,
				ListingID: listing.ID,
				Score:     score,
				Reasons:   reasons,
			})
		}
	}

	return candidates
}

// BuildForLead scores one lead against all listings under the targeted
// profile, ranks qualifying pairs by score descending and keeps the top
// TargetedTopK. Equal scores are ordered by listing ID so reruns over
// unchanged data produce the same set.
func BuildForLead(lead LeadInput, listings []ListingInput) []Candidate {
	candidates := make([]Candidate, 0, len(listings))

	for _, listing := range listings {
		score, reasons := Score(lead, listing, TargetedProfile)
		if score < MinQualifyingScore {
			continue
		}
		candidates = append(candidates, Candidate{
			LeadID:         lead.ID,
			ListingID:      listing.ID,
			Score:          score,
			Reasons:        reasons,
			HighlySuitable: score >= HighlySuitableScore,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ListingID.String() < candidates[j].ListingID.String()
	})

	if len(candidates) > TargetedTopK {
		candidates = candidates[:TargetedTopK]
	}

	return candidates
}
