package staff

import "context"

// Repository is the lookup capability over the staff collection. The
// registry owns the live objects; Get returns them directly and mutations
// happen in place under the core's single-threaded execution model.
type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context) ([]*Staff, error)
}
