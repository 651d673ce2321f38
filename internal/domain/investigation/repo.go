package investigation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, inv *Investigation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Investigation, error)
	Update(ctx context.Context, inv *Investigation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Investigation, error)
}
