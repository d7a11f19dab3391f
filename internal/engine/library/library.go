// Package library filters, sorts and searches the item list.
package library

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the order of the item list.
type SortKey string

const (
	// SortByName orders by display name using locale collation.
	SortByName SortKey = "name"
	// SortByPlaytime orders by playtime, most played first.
	SortByPlaytime SortKey = "playtime"
	// SortByLastPlayed orders by last played time, most recent first.
	SortByLastPlayed SortKey = "recent"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortByName, SortByPlaytime, SortByLastPlayed}

// ParseSortKey validates s. An empty string selects SortByName.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByName, nil
	}
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortKeys, key) {
		return "", zerr.With(domain.ErrInvalidConfig, "sort", s)
	}
	return key, nil
}

// Filter returns the items whose name matches query. Matching ignores case
// and diacritics and accepts the query characters in order with gaps, so
// "wtch3" matches "The Witcher 3". The input is not modified.
func Filter(items []domain.Item, query string) []domain.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return slices.Clone(items)
	}

	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if fuzzy.MatchNormalizedFold(query, it.DisplayName) {
			out = append(out, it)
		}
	}
	return out
}

// Sort orders items in place by key. Ties fall back to name and then id so
// the order is stable across catalog refreshes.
func Sort(items []domain.Item, key SortKey) {
	col := collate.New(language.English, collate.IgnoreCase, collate.Loose, collate.Numeric)
	byName := func(a, b domain.Item) int {
		if c := col.CompareString(a.DisplayName, b.DisplayName); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}

	switch key {
	case SortByPlaytime:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			if c := cmp.Compare(b.PlaytimeMinutes, a.PlaytimeMinutes); c != 0 {
				return c
			}
			return byName(a, b)
		})
	case SortByLastPlayed:
		slices.SortStableFunc(items, func(a, b domain.Item) int {
			if c := cmp.Compare(b.LastPlayedAt, a.LastPlayedAt); c != 0 {
				return c
			}
			return byName(a, b)
		})
	default:
		slices.SortStableFunc(items, byName)
	}
}

// View returns a filtered and sorted copy of items.
func View(items []domain.Item, query string, key SortKey) []domain.Item {
	out := Filter(items, query)
	Sort(out, key)
	return out
}
