package occupancy

import (
	"context"
	"sort"

	"github.com/carehome/carehome/pkg/cherr"
)

// MemRepo is the in-memory layout and resident collections.
type MemRepo struct {
	wards     map[string]*Ward
	rooms     map[string]*Room
	beds      map[string]*Bed
	residents map[string]*Resident
}

func NewMemRepo() *MemRepo {
	return &MemRepo{
		wards:     make(map[string]*Ward),
		rooms:     make(map[string]*Room),
		beds:      make(map[string]*Bed),
		residents: make(map[string]*Resident),
	}
}

func (r *MemRepo) CreateWard(_ context.Context, w *Ward) error {
	if _, ok := r.wards[w.ID]; ok {
		return cherr.Validation("ward already exists: %s", w.ID)
	}
	r.wards[w.ID] = w
	return nil
}

func (r *MemRepo) GetWard(_ context.Context, id string) (*Ward, error) {
	w, ok := r.wards[id]
	if !ok {
		return nil, cherr.NotFound("ward not found: %s", id)
	}
	return w, nil
}

func (r *MemRepo) ListWards(_ context.Context) ([]*Ward, error) {
	out := make([]*Ward, 0, len(r.wards))
	for _, w := range r.wards {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemRepo) CreateRoom(_ context.Context, rm *Room) error {
	if _, ok := r.rooms[rm.ID]; ok {
		return cherr.Validation("room already exists: %s", rm.ID)
	}
	r.rooms[rm.ID] = rm
	return nil
}

func (r *MemRepo) GetRoom(_ context.Context, id string) (*Room, error) {
	rm, ok := r.rooms[id]
	if !ok {
		return nil, cherr.NotFound("room not found: %s", id)
	}
	return rm, nil
}

func (r *MemRepo) ListRooms(_ context.Context) ([]*Room, error) {
	out := make([]*Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		out = append(out, rm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemRepo) CreateBed(_ context.Context, b *Bed) error {
	if _, ok := r.beds[b.ID]; ok {
		return cherr.Validation("bed already exists: %s", b.ID)
	}
	r.beds[b.ID] = b
	return nil
}

func (r *MemRepo) GetBed(_ context.Context, id string) (*Bed, error) {
	b, ok := r.beds[id]
	if !ok {
		return nil, cherr.NotFound("bed not found: %s", id)
	}
	return b, nil
}

func (r *MemRepo) ListBeds(_ context.Context) ([]*Bed, error) {
	out := make([]*Bed, 0, len(r.beds))
	for _, b := range r.beds {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemRepo) CreateResident(_ context.Context, res *Resident) error {
	if _, ok := r.residents[res.ID]; ok {
		return cherr.Validation("resident already registered: %s", res.ID)
	}
	r.residents[res.ID] = res
	return nil
}

func (r *MemRepo) GetResident(_ context.Context, id string) (*Resident, error) {
	res, ok := r.residents[id]
	if !ok {
		return nil, cherr.NotFound("resident not found: %s", id)
	}
	return res, nil
}

func (r *MemRepo) ListResidents(_ context.Context) ([]*Resident, error) {
	out := make([]*Resident, 0, len(r.residents))
	for _, res := range r.residents {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ExportWards and friends return the collections for snapshotting,
// sorted by id.
func (r *MemRepo) ExportWards() []*Ward {
	out, _ := r.ListWards(context.Background())
	return out
}

func (r *MemRepo) ExportRooms() []*Room {
	out, _ := r.ListRooms(context.Background())
	return out
}

func (r *MemRepo) ExportBeds() []*Bed {
	out, _ := r.ListBeds(context.Background())
	return out
}

func (r *MemRepo) ExportResidents() []*Resident {
	out, _ := r.ListResidents(context.Background())
	return out
}

// Import replaces all four collections from a snapshot.
func (r *MemRepo) Import(wards []*Ward, rooms []*Room, beds []*Bed, residents []*Resident) {
	r.wards = make(map[string]*Ward, len(wards))
	for _, w := range wards {
		r.wards[w.ID] = w
	}
	r.rooms = make(map[string]*Room, len(rooms))
	for _, rm := range rooms {
		r.rooms[rm.ID] = rm
	}
	r.beds = make(map[string]*Bed, len(beds))
	for _, b := range beds {
		r.beds[b.ID] = b
	}
	r.residents = make(map[string]*Resident, len(residents))
	for _, res := range residents {
		r.residents[res.ID] = res
	}
}
