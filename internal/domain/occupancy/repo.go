package occupancy

import "context"

// Repository is the lookup capability over the layout and resident
// collections. Get methods return the live objects owned by the registry;
// mutations happen in place under the single-threaded execution model.
type Repository interface {
	CreateWard(ctx context.Context, w *Ward) error
	GetWard(ctx context.Context, id string) (*Ward, error)
	ListWards(ctx context.Context) ([]*Ward, error)

	CreateRoom(ctx context.Context, r *Room) error
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)

	CreateBed(ctx context.Context, b *Bed) error
	GetBed(ctx context.Context, id string) (*Bed, error)
	ListBeds(ctx context.Context) ([]*Bed, error)

	CreateResident(ctx context.Context, r *Resident) error
	GetResident(ctx context.Context, id string) (*Resident, error)
	ListResidents(ctx context.Context) ([]*Resident, error)
}
