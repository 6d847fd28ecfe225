package service

import (
	"fmt"

	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/pkg/apperror"
	"github.com/salonpoint/pos-api/pkg/metrics"
	"github.com/salonpoint/pos-api/pkg/pdfexport"
	"github.com/salonpoint/pos-api/pkg/printer"
)

// ReceiptService projects a finalized invoice session into a receipt and
// hands it to the terminal sinks (thermal printer, PDF export). The
// projection is pure: every amount comes from the session frozen at
// finalize time, never from a fresh catalog read.
type ReceiptService struct {
	printer  printer.Printer
	exporter *pdfexport.Exporter
	header   entity.ReceiptHeader
	width    int
}

// NewReceiptService creates a new receipt service
func NewReceiptService(p printer.Printer, exporter *pdfexport.Exporter, header entity.ReceiptHeader, width int) *ReceiptService {
	if width <= 0 {
		width = 32
	}
	return &ReceiptService{
		printer:  p,
		exporter: exporter,
		header:   header,
		width:    width,
	}
}

// Render projects the session into a receipt model. Only a finalized
// session can be rendered; before that the amounts are not frozen.
func (s *ReceiptService) Render(sess *entity.InvoiceSession, staffName string) (*entity.Receipt, error) {
	if !sess.Finalized() {
		return nil, apperror.NewBadRequestError("Receipt is only available for a finalized transaction")
	}

	r := &entity.Receipt{
		Header:        s.header,
		ORNumber:      *sess.ORNumber,
		TransactionID: *sess.TransactionID,
		Date:          sess.TransactionDate.Format("2006-01-02 15:04"),
		Staff:         staffName,
		CustomerName:  sess.Customer.Name,
		CustomerPhone: sess.Customer.Phone,
		CustomerCity:  sess.Customer.City,
		ServiceName:   sess.Service.Name,
		Category:      sess.Service.Category,
		PaymentMethod: sess.Payment.Method.String(),
		CouponCode:    sess.Payment.CouponCode,
		SubTotal:      sess.Payment.BaseAmount,
		Discount:      sess.Payment.DiscountAmount,
		Total:         sess.Payment.TotalAmount,
		Tendered:      sess.Payment.AmountTendered,
		Change:        sess.Payment.Change,
	}

	for _, p := range sess.Products {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      p.ProductName,
			Quantity:  p.Quantity,
			UnitPrice: p.Price,
		})
	}

	return r, nil
}

// Print renders the session and sends it to the thermal printer
func (s *ReceiptService) Print(sess *entity.InvoiceSession, staffName string) (*entity.Receipt, error) {
	receipt, err := s.Render(sess, staffName)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(s.formatReceipt(receipt)); err != nil {
		return nil, apperror.NewCollaboratorError("Receipt print", err)
	}
	metrics.ReceiptsPrinted.Inc()
	return receipt, nil
}

// ExportPDF renders the session and writes it as a PDF file. An empty
// filename defaults to the OR number.
func (s *ReceiptService) ExportPDF(sess *entity.InvoiceSession, staffName, filename string) (string, error) {
	receipt, err := s.Render(sess, staffName)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = receipt.ORNumber + ".pdf"
	}
	path, err := s.exporter.SaveReceipt(receipt, filename)
	if err != nil {
		return "", apperror.NewCollaboratorError("PDF export", err)
	}
	metrics.ReceiptsExported.Inc()
	return path, nil
}

// formatReceipt converts a Receipt into ESC/POS bytes
func (s *ReceiptService) formatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("OR No:", r.ORNumber).
		KeyValue("Txn:", r.TransactionID).
		KeyValue("Date:", r.Date)

	if r.Staff != "" {
		doc.KeyValue("Staff:", r.Staff)
	}
	doc.KeyValue("Customer:", r.CustomerName)
	if r.CustomerCity != "" {
		doc.KeyValue("City:", r.CustomerCity)
	}

	doc.Separator('-')

	// Service line plus its bill of materials
	doc.ItemLine(1, r.ServiceName, r.SubTotal.StringFixed(2))
	for _, item := range r.Items {
		doc.TextF("  %dx %s", item.Quantity, item.Name)
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", r.SubTotal.StringFixed(2))
	if !r.Discount.IsZero() {
		label := "Discount:"
		if r.CouponCode != "" {
			label = fmt.Sprintf("Discount (%s):", r.CouponCode)
		}
		doc.KeyValue(label, "-"+r.Discount.StringFixed(2))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total.StringFixed(2)).
		SetBold(false)
	doc.KeyValue("Cash:", r.Tendered.StringFixed(2)).
		KeyValue("Change:", r.Change.StringFixed(2))

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you! Please come again.").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
