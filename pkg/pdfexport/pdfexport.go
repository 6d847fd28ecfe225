package pdfexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/salonpoint/pos-api/internal/domain/entity"
)

// Exporter writes receipt PDFs into a configured output directory.
type Exporter struct {
	outputDir string
}

// NewExporter creates a PDF exporter rooted at outputDir
func NewExporter(outputDir string) *Exporter {
	return &Exporter{outputDir: outputDir}
}

// SaveReceipt renders the receipt as an A5 PDF and writes it to
// <outputDir>/<filename>. It returns the full path of the written file.
func (e *Exporter) SaveReceipt(r *entity.Receipt, filename string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		filename += ".pdf"
	}
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("pdfexport: failed to create output directory: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	// Business header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, r.Header.BusinessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if r.Header.Address != "" {
		pdf.CellFormat(0, 5, r.Header.Address, "", 1, "C", false, 0, "")
	}
	if r.Header.Phone != "" {
		pdf.CellFormat(0, 5, r.Header.Phone, "", 1, "C", false, 0, "")
	}
	if r.Header.TaxID != "" {
		pdf.CellFormat(0, 5, "Tax ID: "+r.Header.TaxID, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	// Transaction block
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "OR Number: "+r.ORNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Transaction: "+r.TransactionID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+r.Date, "", 1, "L", false, 0, "")
	if r.Staff != "" {
		pdf.CellFormat(0, 6, "Staff: "+r.Staff, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// Customer block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Customer", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, r.CustomerName, "", 1, "L", false, 0, "")
	if r.CustomerPhone != "" {
		pdf.CellFormat(0, 6, r.CustomerPhone, "", 1, "L", false, 0, "")
	}
	if r.CustomerCity != "" {
		pdf.CellFormat(0, 6, r.CustomerCity, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// Service line and bill of materials
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Service", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Amount", "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(90, 6, r.ServiceName, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, r.SubTotal.StringFixed(2), "", 1, "R", false, 0, "")
	for _, item := range r.Items {
		pdf.CellFormat(90, 5, fmt.Sprintf("    %dx %s", item.Quantity, item.Name), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// Totals
	writeTotal := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(90, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", r.SubTotal.StringFixed(2), false)
	if !r.Discount.IsZero() {
		label := "Discount"
		if r.CouponCode != "" {
			label = "Discount (" + r.CouponCode + ")"
		}
		writeTotal(label, "-"+r.Discount.StringFixed(2), false)
	}
	writeTotal("Total", r.Total.StringFixed(2), true)
	writeTotal("Cash", r.Tendered.StringFixed(2), false)
	writeTotal("Change", r.Change.StringFixed(2), false)

	path := filepath.Join(e.outputDir, filename)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("pdfexport: failed to write %s: %w", path, err)
	}
	return path, nil
}
