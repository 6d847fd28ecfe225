package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/repository"
	"github.com/salonpoint/pos-api/pkg/apperror"
)

// CatalogService exposes the read-only service catalog to the wizard UI.
// Lookup failures are collaborator errors: non-fatal, the operator retries.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// ListAvailableServices returns sellable services ordered by category then name
func (s *CatalogService) ListAvailableServices(ctx context.Context) ([]entity.Service, error) {
	services, err := s.catalogRepo.ListAvailableServices(ctx)
	if err != nil {
		return nil, apperror.NewCollaboratorError("Catalog lookup", err)
	}
	return services, nil
}

// ListProductsForService returns the bill of materials for a service
func (s *CatalogService) ListProductsForService(ctx context.Context, serviceID uuid.UUID) ([]entity.ServiceProduct, error) {
	svc, err := s.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, apperror.NewCollaboratorError("Catalog lookup", err)
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	products, err := s.catalogRepo.ListProductsForService(ctx, serviceID)
	if err != nil {
		return nil, apperror.NewCollaboratorError("Catalog lookup", err)
	}
	return products, nil
}
