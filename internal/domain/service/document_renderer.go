package service

import (
	"io"

	"medico/internal/domain/entity"
)

// InvoiceRenderer turns an invoice into a printable document.
type InvoiceRenderer interface {
	// RenderInvoice writes the invoice as a PDF to w.
	RenderInvoice(w io.Writer, invoice *entity.Invoice) error
}

// StockExporter writes inventory snapshots as spreadsheets.
type StockExporter interface {
	// ExportBatches writes the batches as an xlsx workbook to w.
	ExportBatches(w io.Writer, batches []*entity.MedicineBatch) error
}
