package report

import (
	"bytes"
	"testing"
	"time"

	"medico/config"
	"medico/internal/domain/entity"
	"medico/internal/infra/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestStockExporter_ExportBatches(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	exporter := NewStockExporter(&clock.Fixed{T: now})

	batches := []*entity.MedicineBatch{
		{ID: 1, MedicineID: 10, MedicineName: "Paracetamol 500", BatchNumber: "P-01", ExpiryDate: now.AddDate(1, 0, 0), Quantity: 40, PurchasePrice: decimal.RequireFromString("1.20"), SellingPrice: decimal.RequireFromString("2.50")},
		{ID: 2, MedicineID: 11, MedicineName: "Cetirizine", BatchNumber: "C-07", ExpiryDate: now.AddDate(0, -1, 0), Quantity: 5, PurchasePrice: decimal.RequireFromString("0.80"), SellingPrice: decimal.RequireFromString("1.10")},
	}

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportBatches(&buf, batches))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(stockSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Batch Number", rows[0][3])
	assert.Equal(t, "P-01", rows[1][3])
	assert.Equal(t, now.AddDate(1, 0, 0).Format(time.DateOnly), rows[1][4])
	assert.Equal(t, "no", rows[1][8])
	assert.Equal(t, "yes", rows[2][8])
}

func TestInvoiceRenderer_RenderInvoice(t *testing.T) {
	renderer := NewInvoiceRenderer(&config.Config{Invoice: &config.InvoiceConfig{SellerName: "Medico Pharmacy", SellerGSTIN: "29ABCDE1234F1Z5"}})

	item := entity.NewInvoiceItem(10, "Paracetamol 500", 2, decimal.RequireFromString("50"), decimal.NewFromInt(12))
	invoice := &entity.Invoice{
		OrderID:        7,
		InvoiceNumber:  "INV-20260601-1",
		IssueDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		DiscountAmount: decimal.NewFromInt(10),
		CouponCode:     "SAVE10",
		PaymentStatus:  entity.InvoiceUnpaid,
		Items:          []entity.InvoiceItem{item},
	}
	invoice.Summarize()

	var buf bytes.Buffer
	require.NoError(t, renderer.RenderInvoice(&buf, invoice))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
