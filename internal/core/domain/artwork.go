package domain

// LoadState tracks where an item is in the artwork lifecycle.
type LoadState uint8

const (
	// LoadUnrequested means no resolution has been attempted since the last reset.
	LoadUnrequested LoadState = iota
	// LoadLoading means a resolution is in flight.
	LoadLoading
	// LoadCached means a displayable reference is available.
	LoadCached
	// LoadUnavailable means the last resolution produced nothing.
	LoadUnavailable
)

// String returns a human-readable name for the state.
func (s LoadState) String() string {
	switch s {
	case LoadUnrequested:
		return "unrequested"
	case LoadLoading:
		return "loading"
	case LoadCached:
		return "cached"
	case LoadUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ImageRef is a displayable reference to an item's artwork.
// Exactly one of Handle and URL is set.
type ImageRef struct {
	// Handle names artwork bytes held in memory, in the form "blob:<uuid>".
	Handle string
	// URL is a remote image location used when the bytes could not be cached.
	URL string
}

// IsRemote reports whether the reference points at a remote URL.
func (r ImageRef) IsRemote() bool {
	return r.Handle == "" && r.URL != ""
}

// String returns the handle or URL.
func (r ImageRef) String() string {
	if r.Handle != "" {
		return r.Handle
	}
	return r.URL
}

// VisibleRange is the half-open index range [Start, End) of materialized items.
type VisibleRange struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r VisibleRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether index i is inside the range.
func (r VisibleRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}
