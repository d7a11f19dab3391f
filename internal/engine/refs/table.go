// Package refs keeps artwork bytes addressable by opaque handles until they are revoked.
package refs

import (
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	handlePrefix = "blob:"

	// tombstoneLimit bounds how many revoked handles are remembered.
	tombstoneLimit = 1024
)

type entry struct {
	id   domain.ItemID
	data []byte
}

// Table implements ports.RefIssuer.
// Every issued handle stays live until Revoke or RevokeAll releases it.
// The most recent tombstoneLimit revoked handles are remembered so a second
// revoke reports ErrRefRevoked; older ones report ErrRefNotFound.
type Table struct {
	mu      sync.RWMutex
	live    map[string]entry
	revoked map[string]struct{}
	ring    []string
	next    int
	limit   int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return newTable(tombstoneLimit)
}

func newTable(limit int) *Table {
	limit = max(limit, 1)
	return &Table{
		live:    make(map[string]entry),
		revoked: make(map[string]struct{}, limit),
		ring:    make([]string, 0, limit),
		limit:   limit,
	}
}

// Issue stores data and returns a new handle for it.
func (t *Table) Issue(id domain.ItemID, data []byte) domain.ImageRef {
	handle := handlePrefix + uuid.NewString()

	t.mu.Lock()
	t.live[handle] = entry{id: id, data: data}
	t.mu.Unlock()

	return domain.ImageRef{Handle: handle}
}

// Bytes returns the data behind handle.
func (t *Table) Bytes(handle string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if e, ok := t.live[handle]; ok {
		return e.data, nil
	}
	if _, ok := t.revoked[handle]; ok {
		return nil, zerr.With(domain.ErrRefRevoked, "handle", handle)
	}
	return nil, zerr.With(domain.ErrRefNotFound, "handle", handle)
}

// Revoke releases handle. A handle can be revoked exactly once.
func (t *Table) Revoke(handle string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.live[handle]; ok {
		delete(t.live, handle)
		t.bury(handle)
		return nil
	}
	if _, ok := t.revoked[handle]; ok {
		return zerr.With(domain.ErrRefRevoked, "handle", handle)
	}
	return zerr.With(domain.ErrRefNotFound, "handle", handle)
}

// RevokeRef releases ref if it holds a handle. Remote references hold nothing.
func (t *Table) RevokeRef(ref domain.ImageRef) error {
	if ref.Handle == "" {
		return nil
	}
	return t.Revoke(ref.Handle)
}

// RevokeAll releases every live handle and returns how many were released.
func (t *Table) RevokeAll() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.live)
	for handle := range t.live {
		t.bury(handle)
	}
	clear(t.live)
	return n
}

// bury records handle as revoked, evicting the oldest tombstone when full.
// t.mu must be held.
func (t *Table) bury(handle string) {
	if len(t.ring) < t.limit {
		t.ring = append(t.ring, handle)
	} else {
		delete(t.revoked, t.ring[t.next])
		t.ring[t.next] = handle
		t.next = (t.next + 1) % t.limit
	}
	t.revoked[handle] = struct{}{}
}

// Live returns the number of live handles.
func (t *Table) Live() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.live)
}

// LiveBytes returns the total size of the data behind live handles.
func (t *Table) LiveBytes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := 0
	for _, e := range t.live {
		total += len(e.data)
	}
	return total
}
