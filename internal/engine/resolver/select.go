package resolver

import (
	"slices"

	"go.trai.ch/shelf/internal/core/domain"
)

// tiers are tried in order; the first candidate matching a tier wins.
// Scores play no part.
var tiers = []func(domain.GridCandidate) bool{
	func(c domain.GridCandidate) bool { return c.Style == domain.StyleAlternate && c.IsCoverSize() },
	domain.GridCandidate.IsCoverSize,
	func(c domain.GridCandidate) bool { return c.Style == domain.StyleAlternate },
	func(domain.GridCandidate) bool { return true },
}

// Select picks the cover for an item: the first alternate-style 600x900 grid,
// else the first 600x900 grid, else the first alternate-style grid, else the
// first candidate. It reports false only for an empty list.
func Select(candidates []domain.GridCandidate) (domain.GridCandidate, bool) {
	for _, match := range tiers {
		if i := slices.IndexFunc(candidates, match); i >= 0 {
			return candidates[i], true
		}
	}
	return domain.GridCandidate{}, false
}
