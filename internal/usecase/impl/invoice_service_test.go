package impl

import (
	"context"
	"io"
	"testing"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	mockservice "medico/internal/mocks/service"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	txManager *mockrepository.MockTransactionManager
	invoices  *mockrepository.MockInvoiceRepository
	orders    *mockrepository.MockOrderRepository
	batches   *mockrepository.MockBatchRepository
	medicines *mockrepository.MockMedicineRepository
	slabs     *mockrepository.MockGSTSlabRepository
	coupons   *mockrepository.MockCouponRepository
	discounts *mockrepository.MockDiscountRepository
	files     *mockrepository.MockFileRepository
	renderer  *mockservice.MockInvoiceRenderer
	blobs     *mockservice.MockBlobStore
	repos     *mockrepository.Repositories
	service   usecase.InvoiceUsecase
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	f := &invoiceFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		invoices:  mockrepository.NewMockInvoiceRepository(t),
		orders:    mockrepository.NewMockOrderRepository(t),
		batches:   mockrepository.NewMockBatchRepository(t),
		medicines: mockrepository.NewMockMedicineRepository(t),
		slabs:     mockrepository.NewMockGSTSlabRepository(t),
		coupons:   mockrepository.NewMockCouponRepository(t),
		discounts: mockrepository.NewMockDiscountRepository(t),
		files:     mockrepository.NewMockFileRepository(t),
		renderer:  mockservice.NewMockInvoiceRenderer(t),
		blobs:     mockservice.NewMockBlobStore(t),
	}
	f.repos = &mockrepository.Repositories{
		T:        t,
		Invoice:  f.invoices,
		Order:    f.orders,
		Batch:    f.batches,
		Medicine: f.medicines,
		GSTSlab:  f.slabs,
		Coupon:   f.coupons,
		Discount: f.discounts,
		File:     f.files,
	}
	f.service = NewInvoiceService(InvoiceServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Renderer:  f.renderer,
		Blobs:     f.blobs,
		Clock:     fixedClock(),
		Config:    testConfig(),
		Logger:    discardLogger(),
	})

	return f
}

// billableOrder has a taxed line of 2 x 100 and an untaxed line of 1 x 50.
func billableOrder() *entity.Order {
	return &entity.Order{
		ID:         30,
		CustomerID: 2,
		Status:     entity.OrderDelivered,
		Items: []entity.OrderItem{
			{ID: 1, OrderID: 30, BatchID: 11, Quantity: 2, Price: decimal.NewFromInt(100)},
			{ID: 2, OrderID: 30, BatchID: 12, Quantity: 1, Price: decimal.NewFromInt(50)},
		},
	}
}

func (f *invoiceFixture) expectLines() {
	f.batches.On("FindBatchByID", mock.Anything, int64(11)).Return(&entity.MedicineBatch{ID: 11, MedicineID: 3}, nil).Once()
	f.batches.On("FindBatchByID", mock.Anything, int64(12)).Return(&entity.MedicineBatch{ID: 12, MedicineID: 4}, nil).Once()
	f.medicines.On("FindMedicineByID", mock.Anything, int64(3)).
		Return(&entity.Medicine{ID: 3, Name: "Paracetamol", HSNCode: "3004"}, nil).Once()
	f.medicines.On("FindMedicineByID", mock.Anything, int64(4)).
		Return(&entity.Medicine{ID: 4, Name: "Bandage", HSNCode: "3005"}, nil).Once()
	f.slabs.On("FindGSTSlabByHSN", mock.Anything, "3004").
		Return(&entity.GSTSlab{HSNCode: "3004", Rate: decimal.NewFromInt(12)}, nil).Once()
	f.slabs.On("FindGSTSlabByHSN", mock.Anything, "3005").Return(nil, domainerrors.ErrGSTSlabNotFound).Once()
}

func (f *invoiceFixture) expectDocument(invoiceID, assetID int64) {
	f.renderer.On("RenderInvoice", mock.Anything, mock.AnythingOfType("*entity.Invoice")).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(0).(io.Writer), "%PDF-1.4\n%test invoice\n")
		}).Return(nil).Once()
	f.blobs.On("Exists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	f.blobs.On("Put", mock.Anything, mock.AnythingOfType("string"), "application/pdf", mock.Anything).Return(nil).Once()
	f.files.On("CreateFileAsset", mock.Anything, mock.MatchedBy(func(a *entity.FileAsset) bool {
		return a.FileName == "MED-20250715-42.pdf" && a.UploadedBy == 9
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.FileAsset).ID = assetID
	}).Return(nil).Once()
	f.invoices.On("SetInvoicePDF", mock.Anything, invoiceID, assetID).Return(nil).Once()
}

func TestInvoiceService_GenerateInvoice_WithCoupon(t *testing.T) {
	f := newInvoiceFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(billableOrder(), nil).Once()
	f.invoices.On("FindInvoiceByOrderID", mock.Anything, int64(30)).Return(nil, domainerrors.ErrInvoiceNotFound).Once()
	f.expectLines()
	f.coupons.On("FindCouponByCode", mock.Anything, "SAVE10").Return(save10(3), nil).Once()
	f.discounts.On("FindDiscountByID", mock.Anything, int64(1)).Return(summerSale(), nil).Once()
	f.coupons.On("IncrementUsage", mock.Anything, int64(5), 1).Return(nil).Once()
	f.invoices.On("CreateInvoice", mock.Anything, mock.AnythingOfType("*entity.Invoice")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Invoice).ID = 42
		}).Return(nil).Once()
	f.invoices.On("SetInvoiceNumber", mock.Anything, int64(42), "MED-20250715-42").Return(nil).Once()
	f.expectDocument(42, 77)

	invoice, err := f.service.GenerateInvoice(context.Background(), &usecase.GenerateInvoiceInput{
		OrderID:    30,
		CouponCode: "SAVE10",
		IssuedBy:   9,
	})

	require.NoError(t, err)
	assert.Equal(t, "MED-20250715-42", invoice.InvoiceNumber)
	assert.Equal(t, "250.00", invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "24.00", invoice.TotalTax.StringFixed(2))
	assert.Equal(t, "25.00", invoice.DiscountAmount.StringFixed(2))
	assert.Equal(t, "249.00", invoice.GrossAmount.StringFixed(2))
	assert.Equal(t, "SAVE10", invoice.CouponCode)
	assert.Equal(t, entity.InvoiceUnpaid, invoice.PaymentStatus)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "12.00", invoice.Items[0].CGST.StringFixed(2))
	assert.Equal(t, "12.00", invoice.Items[0].SGST.StringFixed(2))
	assert.Equal(t, "224.00", invoice.Items[0].Total.StringFixed(2))
	assert.True(t, invoice.Items[1].Tax().IsZero())
	require.NotNil(t, invoice.PDFAssetID)
	assert.Equal(t, int64(77), *invoice.PDFAssetID)
}

func TestInvoiceService_GenerateInvoice_CouponExhausted(t *testing.T) {
	f := newInvoiceFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(billableOrder(), nil).Once()
	f.invoices.On("FindInvoiceByOrderID", mock.Anything, int64(30)).Return(nil, domainerrors.ErrInvoiceNotFound).Once()
	f.expectLines()
	f.coupons.On("FindCouponByCode", mock.Anything, "SAVE10").Return(save10(10), nil).Once()

	_, err := f.service.GenerateInvoice(context.Background(), &usecase.GenerateInvoiceInput{OrderID: 30, CouponCode: "SAVE10"})

	assert.True(t, errors.Is(err, domainerrors.ErrCouponNotApplicable))
	f.invoices.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
	f.coupons.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_GenerateInvoice_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		order   func() *entity.Order
		setup   func(f *invoiceFixture)
		wantErr error
	}{
		{
			name: "cancelled order",
			order: func() *entity.Order {
				o := billableOrder()
				o.Status = entity.OrderCancelled
				return o
			},
			wantErr: domainerrors.ErrOrderCancelled,
		},
		{
			name: "order without items",
			order: func() *entity.Order {
				o := billableOrder()
				o.Items = nil
				return o
			},
			wantErr: domainerrors.ErrEmptyOrder,
		},
		{
			name:  "already invoiced",
			order: billableOrder,
			setup: func(f *invoiceFixture) {
				f.invoices.On("FindInvoiceByOrderID", mock.Anything, int64(30)).Return(&entity.Invoice{ID: 41, OrderID: 30}, nil).Once()
			},
			wantErr: domainerrors.ErrInvoiceAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInvoiceFixture(t)
			f.txManager.OnExecute(f.repos).Once()
			f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(tt.order(), nil).Once()
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.service.GenerateInvoice(context.Background(), &usecase.GenerateInvoiceInput{OrderID: 30})

			assert.True(t, errors.Is(err, tt.wantErr))
			f.invoices.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
		})
	}
}

func TestInvoiceService_DownloadInvoice_NoDocument(t *testing.T) {
	f := newInvoiceFixture(t)

	f.invoices.On("FindInvoiceByID", mock.Anything, int64(42)).Return(&entity.Invoice{ID: 42}, nil).Once()

	_, err := f.service.DownloadInvoice(context.Background(), 42)

	assert.True(t, errors.Is(err, domainerrors.ErrFileNotFound))
}

func TestInvoiceService_UpdatePaymentStatus_Invalid(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.service.UpdatePaymentStatus(context.Background(), 42, entity.InvoicePaymentStatus("partial"))

	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
	f.invoices.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}
