package audit

import "context"

// MemRepo is the in-memory log collection. The core is single-threaded,
// so no locking is needed.
type MemRepo struct {
	entries []*Entry
}

func NewMemRepo() *MemRepo {
	return &MemRepo{}
}

func (r *MemRepo) Append(_ context.Context, e *Entry) error {
	e.Seq = int64(len(r.entries) + 1)
	r.entries = append(r.entries, e)
	return nil
}

func (r *MemRepo) List(_ context.Context) ([]*Entry, error) {
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// ExportAll returns the entries for snapshotting.
func (r *MemRepo) ExportAll() []*Entry {
	return r.entries
}

// ImportAll replaces the collection from a snapshot.
func (r *MemRepo) ImportAll(entries []*Entry) {
	r.entries = entries
}
