package mockservice

import (
	"io"
	"testing"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockInvoiceRenderer is a mock implementation of service.InvoiceRenderer.
type MockInvoiceRenderer struct {
	mock.Mock
}

// NewMockInvoiceRenderer creates a mock that asserts its expectations when the test ends.
func NewMockInvoiceRenderer(t *testing.T) *MockInvoiceRenderer {
	m := &MockInvoiceRenderer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInvoiceRenderer) RenderInvoice(w io.Writer, invoice *entity.Invoice) error {
	args := m.Called(w, invoice)

	return args.Error(0)
}

// MockStockExporter is a mock implementation of service.StockExporter.
type MockStockExporter struct {
	mock.Mock
}

// NewMockStockExporter creates a mock that asserts its expectations when the test ends.
func NewMockStockExporter(t *testing.T) *MockStockExporter {
	m := &MockStockExporter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStockExporter) ExportBatches(w io.Writer, batches []*entity.MedicineBatch) error {
	args := m.Called(w, batches)

	return args.Error(0)
}
