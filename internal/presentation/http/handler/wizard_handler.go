package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonpoint/pos-api/internal/application/service"
	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/salonpoint/pos-api/internal/presentation/http/dto/request"
	"github.com/salonpoint/pos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// WizardHandler drives the invoice wizard over HTTP. Every mutating
// endpoint returns the full wizard state so the UI can re-render tabs
// without a second round trip.
type WizardHandler struct {
	wizard *service.WizardService
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizard *service.WizardService) *WizardHandler {
	return &WizardHandler{wizard: wizard}
}

func (h *WizardHandler) state(c *gin.Context, message string, sess *entity.InvoiceSession) {
	response.OK(c, message, response.NewWizardState(h.wizard, sess))
}

// GetState returns the current wizard state
func (h *WizardHandler) GetState(c *gin.Context) {
	h.state(c, "Wizard state", h.wizard.GetState())
}

// Status reports whether a transaction is in progress. The shell polls
// this to lock navigation away from the wizard.
func (h *WizardHandler) Status(c *gin.Context) {
	response.OK(c, "Wizard status", gin.H{
		"in_progress": h.wizard.IsTransactionInProgress(),
	})
}

// SelectService handles picking the service to sell
func (h *WizardHandler) SelectService(c *gin.Context) {
	var req request.SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	sess, err := h.wizard.SelectService(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Service selected", sess)
}

// SetCustomer handles capturing customer details
func (h *WizardHandler) SetCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sess, err := h.wizard.SetCustomer(entity.Customer{
		Name:   req.Name,
		Phone:  req.Phone,
		Gender: req.Gender,
		City:   req.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Customer saved", sess)
}

// SetDiscount handles applying a manual discount percentage
func (h *WizardHandler) SetDiscount(c *gin.Context) {
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sess, err := h.wizard.SetDiscount(req.Percent)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Discount applied", sess)
}

// ApplyCoupon handles applying a coupon code
func (h *WizardHandler) ApplyCoupon(c *gin.Context) {
	var req request.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sess, err := h.wizard.ApplyCoupon(req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Coupon applied", sess)
}

// ClearCoupon handles removing the coupon and its discount
func (h *WizardHandler) ClearCoupon(c *gin.Context) {
	sess, err := h.wizard.ClearCoupon()
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Coupon removed", sess)
}

// Tender handles entering the cash received from the customer
func (h *WizardHandler) Tender(c *gin.Context) {
	var req request.TenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.BadRequest(c, "Invalid amount")
		return
	}

	sess, err := h.wizard.Tender(amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Tender recorded", sess)
}

// ConfirmPayment handles confirming the payment
func (h *WizardHandler) ConfirmPayment(c *gin.Context) {
	sess, err := h.wizard.ConfirmPayment()
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Payment confirmed", sess)
}

// EnterStage handles moving the wizard to another stage
func (h *WizardHandler) EnterStage(c *gin.Context) {
	var req request.EnterStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var stage enum.Stage
	switch req.Stage {
	case "SelectService":
		stage = enum.StageSelectService
	case "Customer":
		stage = enum.StageCustomer
	case "Payment":
		stage = enum.StagePayment
	case "Overview":
		stage = enum.StageOverview
	case "Receipt":
		stage = enum.StageReceipt
	default:
		response.BadRequest(c, "Unknown stage "+req.Stage)
		return
	}

	sess, err := h.wizard.EnterStage(stage)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Stage entered", sess)
}

// Back handles moving one stage backward
func (h *WizardHandler) Back(c *gin.Context) {
	sess, err := h.wizard.Back()
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Moved back", sess)
}

// Finalize handles persisting the completed session as a transaction
func (h *WizardHandler) Finalize(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	sess, tx, err := h.wizard.Finalize(c.Request.Context(), *staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction finalized", gin.H{
		"state":       response.NewWizardState(h.wizard, sess),
		"transaction": tx,
	})
}

// Cancel handles discarding the in-flight session
func (h *WizardHandler) Cancel(c *gin.Context) {
	var req request.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sess, err := h.wizard.Cancel(req.Confirmed)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "Transaction cancelled", sess)
}

// StartNew handles starting the next transaction from the receipt stage
func (h *WizardHandler) StartNew(c *gin.Context) {
	sess, err := h.wizard.StartNewTransaction()
	if err != nil {
		response.Error(c, err)
		return
	}
	h.state(c, "New transaction started", sess)
}
