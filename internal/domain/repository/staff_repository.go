package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
)

// StaffRepository defines the interface for register operator accounts
type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByUsername(ctx context.Context, username string) (*entity.Staff, error)
	Create(ctx context.Context, staff *entity.Staff) error
}
