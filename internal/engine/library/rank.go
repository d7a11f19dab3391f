package library

import (
	"strings"

	sfuzzy "github.com/sahilm/fuzzy"
	"go.trai.ch/shelf/internal/core/domain"
)

// Match is a ranked search hit.
type Match struct {
	Item domain.Item
	// Index is the position of Item in the searched slice.
	Index int
	// Score is higher for better matches.
	Score int
	// MatchedIndexes are the byte offsets of matched characters in the name.
	MatchedIndexes []int
}

// nameSource adapts an item slice to sahilm/fuzzy.Source.
type nameSource struct {
	items []domain.Item
	lower []string
}

func newNameSource(items []domain.Item) nameSource {
	lower := make([]string, len(items))
	for i, it := range items {
		lower[i] = strings.ToLower(it.DisplayName)
	}
	return nameSource{items: items, lower: lower}
}

func (s nameSource) String(i int) string { return s.lower[i] }

func (s nameSource) Len() int { return len(s.items) }

// Rank returns the items matching query, best match first.
// An empty query matches nothing.
func Rank(items []domain.Item, query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	src := newNameSource(items)
	found := sfuzzy.FindFrom(query, src)

	out := make([]Match, len(found))
	for i, m := range found {
		out[i] = Match{
			Item:           items[m.Index],
			Index:          m.Index,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}
