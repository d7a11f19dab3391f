package domain

import "strconv"

// ItemID identifies a library item. It is the catalog's application id.
type ItemID int

// String returns the decimal form of the id.
func (id ItemID) String() string {
	return strconv.Itoa(int(id))
}

// ParseItemID parses a decimal item id.
func ParseItemID(s string) (ItemID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidItemID
	}
	return ItemID(n), nil
}

// Item is a single entry of a user's library as reported by the catalog.
type Item struct {
	ID              ItemID
	DisplayName     string
	PlaytimeMinutes int
	// LastPlayedAt is the last played time in epoch seconds. Zero means never played.
	LastPlayedAt int64
}

// IDs returns the ids of the given items in order.
func IDs(items []Item) []ItemID {
	ids := make([]ItemID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// GridStyle is the visual style tag of an artwork candidate.
type GridStyle string

const (
	// StyleAlternate is the alternate cover style.
	StyleAlternate GridStyle = "alternate"
	// StyleBlurred is the blurred background style.
	StyleBlurred GridStyle = "blurred"
	// StyleWhiteLogo is the white logo style.
	StyleWhiteLogo GridStyle = "white_logo"
	// StyleMaterial is the material style.
	StyleMaterial GridStyle = "material"
	// StyleNoLogo is the logo-less style.
	StyleNoLogo GridStyle = "no_logo"
)

// GridCandidate is one piece of artwork offered by the candidate service.
type GridCandidate struct {
	ID     string
	Style  GridStyle
	Width  int
	Height int
	URL    string
	Score  float64
}

// Cover dimensions of the preferred portrait grid.
const (
	CoverWidth  = 600
	CoverHeight = 900
)

// IsCoverSize reports whether the candidate is exactly CoverWidth by CoverHeight.
func (c GridCandidate) IsCoverSize() bool {
	return c.Width == CoverWidth && c.Height == CoverHeight
}
