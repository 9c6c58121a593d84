package report

import (
	"fmt"
	"io"
	"time"

	"medico/config"
	"medico/internal/domain/entity"
	"medico/internal/domain/service"
	"medico/internal/errors"

	"github.com/go-pdf/fpdf"
)

type pdfInvoiceRenderer struct {
	seller config.InvoiceConfig
}

// NewInvoiceRenderer returns a renderer that prints the seller block from the invoice config section.
func NewInvoiceRenderer(cfg *config.Config) service.InvoiceRenderer {
	var seller config.InvoiceConfig
	if cfg.Invoice != nil {
		seller = *cfg.Invoice
	}

	return &pdfInvoiceRenderer{seller: seller}
}

var invoiceColumns = []struct {
	title string
	width float64
	align string
}{
	{"Item", 62, "L"},
	{"Qty", 14, "R"},
	{"Unit", 22, "R"},
	{"GST %", 16, "R"},
	{"CGST", 20, "R"},
	{"SGST", 20, "R"},
	{"Total", 26, "R"},
}

func (r *pdfInvoiceRenderer) RenderInvoice(w io.Writer, invoice *entity.Invoice) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+invoice.InvoiceNumber, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.seller.SellerName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if r.seller.SellerAddress != "" {
		pdf.CellFormat(0, 5, r.seller.SellerAddress, "", 1, "L", false, 0, "")
	}
	if r.seller.SellerGSTIN != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+r.seller.SellerGSTIN, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Tax Invoice "+invoice.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Issue date: "+invoice.IssueDate.Format(time.DateOnly), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Order #%d", invoice.OrderID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range invoiceColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range invoice.Items {
		name := item.MedicineName
		if name == "" {
			name = fmt.Sprintf("Medicine #%d", item.MedicineID)
		}
		values := []string{
			name,
			fmt.Sprintf("%d", item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.GSTRate.StringFixed(2),
			item.CGST.StringFixed(2),
			item.SGST.StringFixed(2),
			item.Total.StringFixed(2),
		}
		for i, col := range invoiceColumns {
			pdf.CellFormat(col.width, 6, values[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	totals := [][2]string{
		{"Subtotal", invoice.Subtotal.StringFixed(2)},
		{"Total tax", invoice.TotalTax.StringFixed(2)},
	}
	if invoice.DiscountAmount.IsPositive() {
		label := "Discount"
		if invoice.CouponCode != "" {
			label += " (" + invoice.CouponCode + ")"
		}
		totals = append(totals, [2]string{label, "-" + invoice.DiscountAmount.StringFixed(2)})
	}
	totals = append(totals, [2]string{"Gross amount", invoice.GrossAmount.StringFixed(2)})

	for _, line := range totals {
		pdf.CellFormat(154, 6, line[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, line[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	pdf.CellFormat(0, 6, "Payment status: "+string(invoice.PaymentStatus), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "failed to render invoice pdf")
	}

	return nil
}
