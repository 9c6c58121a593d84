package impl

import (
	"context"
	"testing"
	"time"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type discountFixture struct {
	txManager *mockrepository.MockTransactionManager
	discounts *mockrepository.MockDiscountRepository
	medicines *mockrepository.MockMedicineRepository
	lookups   *mockrepository.MockLookupRepository
	repos     *mockrepository.Repositories
	service   usecase.DiscountUsecase
}

func newDiscountFixture(t *testing.T) *discountFixture {
	f := &discountFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		discounts: mockrepository.NewMockDiscountRepository(t),
		medicines: mockrepository.NewMockMedicineRepository(t),
		lookups:   mockrepository.NewMockLookupRepository(t),
	}
	f.repos = &mockrepository.Repositories{
		T:        t,
		Discount: f.discounts,
		Medicine: f.medicines,
		Lookup:   f.lookups,
	}
	f.service = NewDiscountService(DiscountServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Clock:     fixedClock(),
		Logger:    discardLogger(),
	})

	return f
}

func summerSale() *entity.Discount {
	return &entity.Discount{
		ID:                1,
		Name:              "Summer",
		DiscountTypeID:    1,
		DiscountTypeName:  entity.DiscountTypePercentage,
		Value:             decimal.NewFromInt(10),
		StartDate:         time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, time.August, 31, 23, 59, 59, 0, time.UTC),
		MinPurchaseAmount: decimal.NewFromInt(100),
		MaxDiscountAmount: ptr(decimal.NewFromInt(50)),
		MedicineIDs:       []int64{3, 4},
		CategoryIDs:       []int64{8},
	}
}

func TestDiscountService_CreateDiscount_InvalidPeriod(t *testing.T) {
	f := newDiscountFixture(t)
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.service.CreateDiscount(context.Background(), &usecase.CreateDiscountInput{
		Name:           "Broken",
		DiscountTypeID: 1,
		Value:          decimal.NewFromInt(10),
		StartDate:      start,
		EndDate:        start,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidDiscountPeriod))
}

func TestDiscountService_CreateDiscount_WritesAssociations(t *testing.T) {
	f := newDiscountFixture(t)
	want := summerSale()
	params := []entity.DiscountParameter{{Key: "channel", Value: "app"}}

	f.txManager.OnExecute(f.repos).Once()
	f.lookups.On("FindLookupByID", mock.Anything, entity.LookupDiscountType, int64(1)).
		Return(&entity.Lookup{ID: 1, Name: entity.DiscountTypePercentage}, nil).Once()
	f.medicines.On("MissingMedicineIDs", mock.Anything, []int64{3, 4}).Return([]int64{}, nil).Once()
	f.lookups.On("MissingLookupIDs", mock.Anything, entity.LookupCategory, []int64{8}).Return([]int64{}, nil).Once()
	f.discounts.On("CreateDiscount", mock.Anything, mock.AnythingOfType("*entity.Discount")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Discount).ID = 1 }).
		Return(nil).Once()
	f.discounts.On("ReplaceParameters", mock.Anything, int64(1), params, int64(0)).Return(nil).Once()
	f.discounts.On("ReplaceMedicines", mock.Anything, int64(1), []int64{3, 4}, int64(0)).Return(nil).Once()
	f.discounts.On("ReplaceCategories", mock.Anything, int64(1), []int64{8}, int64(0)).Return(nil).Once()
	f.discounts.On("FindDiscountByID", mock.Anything, int64(1)).Return(want, nil).Once()

	got, err := f.service.CreateDiscount(context.Background(), &usecase.CreateDiscountInput{
		Name:              want.Name,
		DiscountTypeID:    want.DiscountTypeID,
		Value:             want.Value,
		StartDate:         want.StartDate,
		EndDate:           want.EndDate,
		MinPurchaseAmount: want.MinPurchaseAmount,
		MaxDiscountAmount: want.MaxDiscountAmount,
		Parameters:        params,
		MedicineIDs:       want.MedicineIDs,
		CategoryIDs:       want.CategoryIDs,
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDiscountService_CreateDiscount_UnknownMedicine(t *testing.T) {
	f := newDiscountFixture(t)
	sale := summerSale()

	f.txManager.OnExecute(f.repos).Once()
	f.lookups.On("FindLookupByID", mock.Anything, entity.LookupDiscountType, int64(1)).
		Return(&entity.Lookup{ID: 1}, nil).Once()
	f.medicines.On("MissingMedicineIDs", mock.Anything, []int64{3, 99}).Return([]int64{99}, nil).Once()

	_, err := f.service.CreateDiscount(context.Background(), &usecase.CreateDiscountInput{
		Name:           sale.Name,
		DiscountTypeID: 1,
		Value:          sale.Value,
		StartDate:      sale.StartDate,
		EndDate:        sale.EndDate,
		MedicineIDs:    []int64{3, 99},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidReference))
	f.discounts.AssertNotCalled(t, "CreateDiscount", mock.Anything, mock.Anything)
}

func TestDiscountService_UpdateDiscount_ReplacesOnlySuppliedSets(t *testing.T) {
	f := newDiscountFixture(t)
	sale := summerSale()
	newValue := decimal.NewFromInt(15)

	f.txManager.OnExecute(f.repos).Once()
	f.discounts.On("FindDiscountByID", mock.Anything, int64(1)).Return(sale, nil).Twice()
	f.medicines.On("MissingMedicineIDs", mock.Anything, []int64{5}).Return([]int64{}, nil).Once()
	f.discounts.On("UpdateDiscount", mock.Anything, mock.MatchedBy(func(d *entity.Discount) bool {
		return d.Value.Equal(newValue) && d.UpdatedAt != nil && d.UpdatedAt.Equal(testNow)
	})).Return(nil).Once()
	f.discounts.On("ReplaceMedicines", mock.Anything, int64(1), []int64{5}, int64(9)).Return(nil).Once()
	f.discounts.On("ReplaceParameters", mock.Anything, int64(1), []entity.DiscountParameter{}, int64(9)).Return(nil).Once()

	_, err := f.service.UpdateDiscount(context.Background(), 1, &entity.DiscountPatch{
		Value:       &newValue,
		MedicineIDs: &[]int64{5},
		Parameters:  &[]entity.DiscountParameter{},
	}, 9)

	require.NoError(t, err)
	f.discounts.AssertNotCalled(t, "ReplaceCategories", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscountService_UpdateDiscount_RejectsInvertedWindow(t *testing.T) {
	f := newDiscountFixture(t)
	sale := summerSale()
	end := sale.StartDate.Add(-time.Hour)

	f.txManager.OnExecute(f.repos).Once()
	f.discounts.On("FindDiscountByID", mock.Anything, int64(1)).Return(sale, nil).Once()

	_, err := f.service.UpdateDiscount(context.Background(), 1, &entity.DiscountPatch{EndDate: &end}, 9)

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidDiscountPeriod))
}

func TestDiscountService_ListDiscounts_UsesCurrentTime(t *testing.T) {
	f := newDiscountFixture(t)
	active := true
	page := entity.Page{Limit: 10}

	f.discounts.On("ListDiscounts", mock.Anything, &active, testNow, page).
		Return([]*entity.Discount{summerSale()}, int64(1), nil).Once()

	res, err := f.service.ListDiscounts(context.Background(), &active, page)

	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].IsActiveAt(testNow))
}

func TestDiscountService_AssignCategories_UnknownCategory(t *testing.T) {
	f := newDiscountFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.discounts.On("FindDiscountByID", mock.Anything, int64(1)).Return(summerSale(), nil).Once()
	f.lookups.On("MissingLookupIDs", mock.Anything, entity.LookupCategory, []int64{8, 77}).Return([]int64{77}, nil).Once()

	_, err := f.service.AssignCategories(context.Background(), 1, []int64{8, 77})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidReference))
	f.discounts.AssertNotCalled(t, "AssignCategories", mock.Anything, mock.Anything, mock.Anything)
}

func TestDiscountService_UpdateParameter(t *testing.T) {
	f := newDiscountFixture(t)
	value := "web"

	f.discounts.On("FindParameter", mock.Anything, int64(1), int64(4)).
		Return(&entity.DiscountParameter{ID: 4, DiscountID: 1, Key: "channel", Value: "app"}, nil).Once()
	f.discounts.On("UpdateParameter", mock.Anything, &entity.DiscountParameter{ID: 4, DiscountID: 1, Key: "channel", Value: "web"}).
		Return(nil).Once()

	param, err := f.service.UpdateParameter(context.Background(), 1, 4, nil, &value)

	require.NoError(t, err)
	assert.Equal(t, "web", param.Value)
}
