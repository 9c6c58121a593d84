// Package report renders inventory spreadsheets and invoice PDFs.
package report

import (
	"io"
	"time"

	"medico/internal/domain/entity"
	"medico/internal/domain/service"
	"medico/internal/errors"

	"github.com/xuri/excelize/v2"
)

const stockSheet = "Batches"

var stockHeader = []any{"Batch ID", "Medicine ID", "Medicine", "Batch Number", "Expiry Date", "Quantity", "Purchase Price", "Selling Price", "Expired"}

type xlsxStockExporter struct {
	clock service.Clock
}

// NewStockExporter returns an exporter that writes one row per batch.
func NewStockExporter(clock service.Clock) service.StockExporter {
	return &xlsxStockExporter{clock: clock}
}

func (e *xlsxStockExporter) ExportBatches(w io.Writer, batches []*entity.MedicineBatch) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), stockSheet); err != nil {
		return errors.Wrap(err, "failed to name sheet")
	}

	sw, err := f.NewStreamWriter(stockSheet)
	if err != nil {
		return errors.Wrap(err, "failed to open stream writer")
	}

	boldID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	header := make([]any, 0, len(stockHeader))
	for _, title := range stockHeader {
		header = append(header, excelize.Cell{StyleID: boldID, Value: title})
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	now := e.clock.Now()
	for i, b := range batches {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.WithStack(err)
		}

		purchase, _ := b.PurchasePrice.Float64()
		selling, _ := b.SellingPrice.Float64()
		row := []any{
			b.ID,
			b.MedicineID,
			b.MedicineName,
			b.BatchNumber,
			b.ExpiryDate.Format(time.DateOnly),
			b.Quantity,
			purchase,
			selling,
			yesNo(b.IsExpired(now)),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return errors.Wrapf(err, "failed to write batch %d", b.ID)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush sheet")
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}

	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}
