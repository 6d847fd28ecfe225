package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/salonpoint/pos-api/internal/application/service"
	"github.com/salonpoint/pos-api/internal/presentation/http/dto/request"
	"github.com/salonpoint/pos-api/internal/presentation/http/dto/response"
)

// ReceiptHandler exposes the receipt projection and its terminal sinks.
// All endpoints operate on the current session, which must be finalized.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	wizard         *service.WizardService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, wizard *service.WizardService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		wizard:         wizard,
	}
}

// Get returns the receipt model for the finalized session
func (h *ReceiptHandler) Get(c *gin.Context) {
	receipt, err := h.receiptService.Render(h.wizard.GetState(), GetStaffName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt", receipt)
}

// Print sends the receipt to the thermal printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	receipt, err := h.receiptService.Print(h.wizard.GetState(), GetStaffName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed", receipt)
}

// Export saves the receipt as a PDF file
func (h *ReceiptHandler) Export(c *gin.Context) {
	var req request.ExportReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	path, err := h.receiptService.ExportPDF(h.wizard.GetState(), GetStaffName(c), req.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt exported", gin.H{"path": path})
}
