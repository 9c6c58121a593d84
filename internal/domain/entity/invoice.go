package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoicePaymentStatus tracks whether an invoice has been settled.
type InvoicePaymentStatus string

const (
	InvoiceUnpaid InvoicePaymentStatus = "unpaid"
	InvoicePaid   InvoicePaymentStatus = "paid"
)

// IsValid checks if the InvoicePaymentStatus is a known value.
func (s InvoicePaymentStatus) IsValid() bool {
	return s == InvoiceUnpaid || s == InvoicePaid
}

// Invoice is the tax document issued for an order.
type Invoice struct {
	ID             int64                `json:"id"`
	OrderID        int64                `json:"order_id"`
	UserID         int64                `json:"user_id"`
	InvoiceNumber  string               `json:"invoice_number"`
	IssueDate      time.Time            `json:"issue_date"`
	PDFAssetID     *int64               `json:"invoice_pdf_id,omitempty"`
	Subtotal       decimal.Decimal      `json:"subtotal_amount"`
	TotalTax       decimal.Decimal      `json:"total_tax"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	GrossAmount    decimal.Decimal      `json:"gross_amount"`
	CouponCode     string               `json:"coupon_code,omitempty"`
	PaymentStatus  InvoicePaymentStatus `json:"payment_status"`
	Items          []InvoiceItem        `json:"items"`
	CreatedAt      time.Time            `json:"created_at"`
}

// InvoiceItem is one taxed line of an invoice.
type InvoiceItem struct {
	ID           int64           `json:"id"`
	InvoiceID    int64           `json:"invoice_id"`
	MedicineID   int64           `json:"medicine_id"`
	MedicineName string          `json:"medicine_name,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	Total        decimal.Decimal `json:"total_amount"`
}

var two = decimal.NewFromInt(2)

// NewInvoiceItem prices a line with intra-state GST split evenly into CGST and SGST.
// The rate is a percentage; amounts are rounded to cents.
func NewInvoiceItem(medicineID int64, name string, quantity int, unitPrice, rate decimal.Decimal) InvoiceItem {
	net := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	tax := net.Mul(rate).Div(hundred).Round(2)
	half := tax.Div(two).Round(2)

	return InvoiceItem{
		MedicineID:   medicineID,
		MedicineName: name,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		GSTRate:      rate,
		CGST:         half,
		SGST:         tax.Sub(half),
		IGST:         decimal.Zero,
		Total:        net.Add(tax).Round(2),
	}
}

// Tax is the total GST charged on the line.
func (i InvoiceItem) Tax() decimal.Decimal {
	return i.CGST.Add(i.SGST).Add(i.IGST)
}

// Net is the line total before tax.
func (i InvoiceItem) Net() decimal.Decimal {
	return i.Total.Sub(i.Tax())
}

// Summarize fills the invoice totals from its items and the discount amount.
func (inv *Invoice) Summarize() {
	subtotal, tax := decimal.Zero, decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.Net())
		tax = tax.Add(item.Tax())
	}
	inv.Subtotal = subtotal.Round(2)
	inv.TotalTax = tax.Round(2)
	inv.GrossAmount = subtotal.Add(tax).Sub(inv.DiscountAmount).Round(2)
	if inv.GrossAmount.IsNegative() {
		inv.GrossAmount = decimal.Zero
	}
}
