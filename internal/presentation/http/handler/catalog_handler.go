package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/application/service"
	"github.com/salonpoint/pos-api/internal/presentation/http/dto/response"
)

// CatalogHandler exposes the read-only service catalog
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListServices handles listing available services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListAvailableServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Services retrieved successfully", services)
}

// ListServiceProducts handles listing the bill of materials for a service
func (h *CatalogHandler) ListServiceProducts(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	products, err := h.catalogService.ListProductsForService(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service products retrieved successfully", products)
}
