package staff

import (
	"context"
	"sort"

	"github.com/carehome/carehome/pkg/cherr"
)

// MemRepo is the in-memory staff collection.
type MemRepo struct {
	byID map[string]*Staff
}

func NewMemRepo() *MemRepo {
	return &MemRepo{byID: make(map[string]*Staff)}
}

func (r *MemRepo) Create(_ context.Context, s *Staff) error {
	if _, ok := r.byID[s.ID]; ok {
		return cherr.Validation("staff already exists: %s", s.ID)
	}
	if s.Roster == nil {
		s.Roster = Roster{}
	}
	r.byID[s.ID] = s
	return nil
}

func (r *MemRepo) GetByID(_ context.Context, id string) (*Staff, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, cherr.NotFound("staff not found: %s", id)
	}
	return s, nil
}

func (r *MemRepo) List(_ context.Context) ([]*Staff, error) {
	out := make([]*Staff, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ExportAll returns the collection for snapshotting, sorted by id.
func (r *MemRepo) ExportAll() []*Staff {
	out, _ := r.List(context.Background())
	return out
}

// ImportAll replaces the collection from a snapshot.
func (r *MemRepo) ImportAll(members []*Staff) {
	r.byID = make(map[string]*Staff, len(members))
	for _, s := range members {
		if s.Roster == nil {
			s.Roster = Roster{}
		}
		r.byID[s.ID] = s
	}
}
