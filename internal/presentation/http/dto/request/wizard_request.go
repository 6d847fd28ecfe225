package request

// SelectServiceRequest picks the service for the transaction being built
type SelectServiceRequest struct {
	ServiceID string `json:"service_id" binding:"required,uuid"`
}

// CustomerRequest captures the walk-in customer's details.
// Gender and city are optional.
type CustomerRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Phone  string `json:"phone" binding:"required,min=3,max=50"`
	Gender string `json:"gender" binding:"omitempty,max=20"`
	City   string `json:"city" binding:"omitempty,max=100"`
}

// DiscountRequest sets a manual discount percentage
type DiscountRequest struct {
	Percent int `json:"percent" binding:"min=0,max=50"`
}

// CouponRequest applies a coupon code
type CouponRequest struct {
	Code string `json:"code" binding:"required,max=50"`
}

// TenderRequest records the cash received from the customer
type TenderRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// EnterStageRequest moves the wizard to another stage
type EnterStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// CancelRequest discards the in-flight session. Confirmed must be true
// once a service has been selected, since cancelling loses entered data.
type CancelRequest struct {
	Confirmed bool `json:"confirmed"`
}

// ExportReceiptRequest saves the receipt as a PDF
type ExportReceiptRequest struct {
	Filename string `json:"filename" binding:"omitempty,max=255"`
}
