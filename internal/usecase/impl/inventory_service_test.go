package impl

import (
	"bytes"
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

type inventoryFixture struct {
	txManager *mockrepository.MockTransactionManager
	medicines *mockrepository.MockMedicineRepository
	batches   *mockrepository.MockBatchRepository
	slabs     *mockrepository.MockGSTSlabRepository
	lookups   *mockrepository.MockLookupRepository
	exporter  *mockservice.MockStockExporter
	repos     *mockrepository.Repositories
	service   usecase.InventoryUsecase
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	f := &inventoryFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		medicines: mockrepository.NewMockMedicineRepository(t),
		batches:   mockrepository.NewMockBatchRepository(t),
		slabs:     mockrepository.NewMockGSTSlabRepository(t),
		lookups:   mockrepository.NewMockLookupRepository(t),
		exporter:  mockservice.NewMockStockExporter(t),
	}
	f.repos = &mockrepository.Repositories{
		T:        t,
		Medicine: f.medicines,
		Batch:    f.batches,
		GSTSlab:  f.slabs,
		Lookup:   f.lookups,
	}
	f.service = NewInventoryService(InventoryServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Exporter:  f.exporter,
		Clock:     fixedClock(),
		Logger:    discardLogger(),
	})

	return f
}

func TestInventoryService_CreateMedicine_LinksOnlyGivenKinds(t *testing.T) {
	f := newInventoryFixture(t)
	medicine := &entity.Medicine{Name: "Paracetamol", HSNCode: "3004", CategoryIDs: []int64{1, 2}, TagIDs: []int64{5}}

	f.txManager.OnExecute(f.repos).Once()
	f.lookups.On("MissingLookupIDs", mock.Anything, entity.LookupCategory, []int64{1, 2}).Return([]int64{}, nil).Once()
	f.lookups.On("MissingLookupIDs", mock.Anything, entity.LookupTag, []int64{5}).Return([]int64{}, nil).Once()
	f.medicines.On("CreateMedicine", mock.Anything, medicine).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Medicine).ID = 3
	}).Return(nil).Once()
	f.medicines.On("ReplaceLinks", mock.Anything, int64(3), entity.LookupCategory, []int64{1, 2}, int64(0)).Return(nil).Once()
	f.medicines.On("ReplaceLinks", mock.Anything, int64(3), entity.LookupTag, []int64{5}, int64(0)).Return(nil).Once()
	f.medicines.On("FindMedicineByID", mock.Anything, int64(3)).Return(medicine, nil).Once()

	created, err := f.service.CreateMedicine(context.Background(), medicine)

	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	f.medicines.AssertNotCalled(t, "ReplaceLinks", mock.Anything, mock.Anything, entity.LookupSideEffect, mock.Anything, mock.Anything)
}

func TestInventoryService_CreateMedicine_UnknownCategory(t *testing.T) {
	f := newInventoryFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.lookups.On("MissingLookupIDs", mock.Anything, entity.LookupCategory, []int64{1, 77}).Return([]int64{77}, nil).Once()

	_, err := f.service.CreateMedicine(context.Background(), &entity.Medicine{Name: "Ibuprofen", CategoryIDs: []int64{1, 77}})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidReference))
	f.medicines.AssertNotCalled(t, "CreateMedicine", mock.Anything, mock.Anything)
}

func TestInventoryService_CreateBatch_Validation(t *testing.T) {
	tests := []struct {
		name  string
		batch *entity.MedicineBatch
	}{
		{name: "zero quantity", batch: &entity.MedicineBatch{MedicineID: 3, Quantity: 0}},
		{name: "negative selling price", batch: &entity.MedicineBatch{MedicineID: 3, Quantity: 10, SellingPrice: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInventoryFixture(t)

			_, err := f.service.CreateBatch(context.Background(), tt.batch)

			assert.True(t, errors.Is(err, domainerrors.ErrValidation))
			f.batches.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		})
	}
}

func TestInventoryService_CreateBatch_UnknownMedicine(t *testing.T) {
	f := newInventoryFixture(t)

	f.medicines.On("FindMedicineByID", mock.Anything, int64(404)).Return(nil, domainerrors.ErrMedicineNotFound).Once()

	_, err := f.service.CreateBatch(context.Background(), &entity.MedicineBatch{MedicineID: 404, Quantity: 10})

	assert.True(t, errors.Is(err, domainerrors.ErrMedicineNotFound))
}

func TestInventoryService_CreateGSTSlab_DuplicateHSN(t *testing.T) {
	f := newInventoryFixture(t)

	f.slabs.On("FindGSTSlabByHSN", mock.Anything, "3004").Return(&entity.GSTSlab{ID: 1, HSNCode: "3004"}, nil).Once()

	_, err := f.service.CreateGSTSlab(context.Background(), &entity.GSTSlab{HSNCode: "3004", Rate: decimal.NewFromInt(12)})

	assert.True(t, errors.Is(err, domainerrors.ErrGSTSlabAlreadyExists))
}

func TestInventoryService_ExportBatches(t *testing.T) {
	f := newInventoryFixture(t)
	medicineID := int64(3)
	batches := []*entity.MedicineBatch{{ID: 11, MedicineID: 3, BatchNumber: "B-11", Quantity: 40}}

	f.batches.On("ListAllBatches", mock.Anything, &medicineID).Return(batches, nil).Once()
	f.exporter.On("ExportBatches", mock.Anything, batches).Run(func(args mock.Arguments) {
		_, _ = io.WriteString(args.Get(0).(io.Writer), "xlsx")
	}).Return(nil).Once()

	var buf bytes.Buffer
	err := f.service.ExportBatches(context.Background(), &medicineID, &buf)

	require.NoError(t, err)
	assert.Equal(t, "xlsx", buf.String())
}
