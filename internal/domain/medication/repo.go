package medication

import "context"

// Repository stores prescriptions and administration records.
type Repository interface {
	CreatePrescription(ctx context.Context, p *Prescription) error
	GetPrescription(ctx context.Context, id string) (*Prescription, error)
	ListPrescriptionsByResident(ctx context.Context, residentID string) ([]*Prescription, error)

	AppendAdministration(ctx context.Context, a *Administration) error
	ListAdministrations(ctx context.Context) ([]*Administration, error)
	ListAdministrationsByResident(ctx context.Context, residentID string) ([]*Administration, error)
}
