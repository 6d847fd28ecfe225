package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	domainRepo "github.com/salonpoint/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListAvailableServices(ctx context.Context) ([]entity.Service, error) {
	var services []entity.Service
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("category ASC, name ASC").
		Find(&services).Error
	return services, err
}

func (r *catalogRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *catalogRepository) ListProductsForService(ctx context.Context, serviceID uuid.UUID) ([]entity.ServiceProduct, error) {
	var products []entity.ServiceProduct
	err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("product_name ASC").
		Find(&products).Error
	return products, err
}
