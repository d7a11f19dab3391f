package refs

// NewTableWithLimit creates a table remembering at most limit revoked handles.
func NewTableWithLimit(limit int) *Table {
	return newTable(limit)
}

// Tombstones returns the number of remembered revoked handles.
func (t *Table) Tombstones() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.revoked)
}
