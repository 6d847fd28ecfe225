package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
)

// CatalogRepository defines read-only access to the service catalog.
// The wizard never writes to the catalog; the CRUD screens that maintain
// it live in a separate application.
type CatalogRepository interface {
	// ListAvailableServices returns services flagged available,
	// ordered by category then name.
	ListAvailableServices(ctx context.Context) ([]entity.Service, error)
	// GetServiceByID returns a single service by its ID.
	GetServiceByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	// ListProductsForService returns the bill of materials for a service.
	// An empty list is valid: the service consumes no tracked products.
	ListProductsForService(ctx context.Context, serviceID uuid.UUID) ([]entity.ServiceProduct, error)
}
