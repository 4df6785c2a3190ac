package domain

import "sort"

// Field names recorded by the change tracker.
const (
	FieldTranslations = "translations"
	FieldUpdatedAt    = "updated_at"
)

// ChangeTracker records which parts of a loaded aggregate were modified so
// the write side only persists what changed.
type ChangeTracker struct {
	dirty map[string]struct{}
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]struct{})}
}

func (ct *ChangeTracker) MarkDirty(fields ...string) {
	for _, f := range fields {
		ct.dirty[f] = struct{}{}
	}
}

func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.dirty[field]
	return ok
}

func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// DirtyFields returns the modified fields in sorted order.
func (ct *ChangeTracker) DirtyFields() []string {
	out := make([]string, 0, len(ct.dirty))
	for f := range ct.dirty {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (ct *ChangeTracker) Clear() {
	ct.dirty = make(map[string]struct{})
}
