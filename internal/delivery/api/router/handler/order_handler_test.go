package handler

import (
	"net/http"
	"testing"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	mockusecase "medico/internal/mocks/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderHandler(t *testing.T) (*OrderHandler, *mockusecase.MockOrderUsecase) {
	orderUC := mockusecase.NewMockOrderUsecase(t)

	return NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: discardLogger()}), orderUC
}

func TestOrderHandler_CreateOrder_ForCaller(t *testing.T) {
	h, orderUC := newOrderHandler(t)
	body := `{"items":[{"batch_id":11,"quantity":2},{"batch_id":12,"quantity":1,"price":"90.50"}]}`
	c, rec := newJSONContext(http.MethodPost, "/api/v1/orders", body, customer)

	created := &entity.Order{ID: 30, CustomerID: customer.UserID, Status: entity.OrderPending, TotalAmount: decimal.RequireFromString("330.50")}
	orderUC.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in *entity.NewOrder) bool {
		return in.CustomerID == customer.UserID &&
			len(in.Items) == 2 &&
			in.Items[0].Price == nil &&
			in.Items[1].Price != nil && in.Items[1].Price.Equal(decimal.RequireFromString("90.5"))
	})).Return(created, nil).Once()

	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	order := decodeData[entity.Order](t, rec)
	assert.Equal(t, int64(30), order.ID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("330.50")))
}

func TestOrderHandler_CreateOrder_CustomerCannotOrderForOthers(t *testing.T) {
	h, orderUC := newOrderHandler(t)
	c, rec := newJSONContext(http.MethodPost, "/api/v1/orders", `{"customer_id":99,"items":[{"batch_id":11,"quantity":1}]}`, customer)

	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Code)
	orderUC.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_CreateOrder_ValidationDetails(t *testing.T) {
	h, _ := newOrderHandler(t)
	c, rec := newJSONContext(http.MethodPost, "/api/v1/orders", `{"items":[{"batch_id":11,"quantity":0}]}`, customer)

	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	info := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", info.Code)
	assert.Contains(t, rec.Body.String(), `"field":"quantity"`)
}

func TestOrderHandler_CreateOrder_MissingCustomerIsNotFound(t *testing.T) {
	h, orderUC := newOrderHandler(t)
	c, rec := newJSONContext(http.MethodPost, "/api/v1/orders", `{"customer_id":404,"items":[{"batch_id":11,"quantity":1}]}`, staff)

	orderUC.On("CreateOrder", mock.Anything, mock.MatchedBy(func(in *entity.NewOrder) bool {
		return in.CustomerID == 404
	})).Return(nil, domainerrors.ErrUserNotFound).Once()

	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decodeError(t, rec).Code)
}

func TestOrderHandler_GetOrder_Ownership(t *testing.T) {
	foreign := &entity.Order{ID: 30, CustomerID: 99, Status: entity.OrderPending}

	t.Run("customer cannot read another customer's order", func(t *testing.T) {
		h, orderUC := newOrderHandler(t)
		c, rec := newJSONContext(http.MethodGet, "/api/v1/orders/30", "", customer)
		withParams(c, "id", "30")
		orderUC.On("GetOrder", mock.Anything, int64(30)).Return(foreign, nil).Once()

		require.NoError(t, h.GetOrder(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff reads any order", func(t *testing.T) {
		h, orderUC := newOrderHandler(t)
		c, rec := newJSONContext(http.MethodGet, "/api/v1/orders/30", "", staff)
		withParams(c, "id", "30")
		orderUC.On("GetOrder", mock.Anything, int64(30)).Return(foreign, nil).Once()

		require.NoError(t, h.GetOrder(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		h, _ := newOrderHandler(t)
		c, rec := newJSONContext(http.MethodGet, "/api/v1/orders/abc", "", staff)
		withParams(c, "id", "abc")

		require.NoError(t, h.GetOrder(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ID", decodeError(t, rec).Code)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	own := &entity.Order{ID: 30, CustomerID: customer.UserID, Status: entity.OrderPending}

	t.Run("customer may cancel their own order", func(t *testing.T) {
		h, orderUC := newOrderHandler(t)
		c, rec := newJSONContext(http.MethodPatch, "/api/v1/orders/30/status", `{"status":"cancelled"}`, customer)
		withParams(c, "id", "30")
		orderUC.On("GetOrder", mock.Anything, int64(30)).Return(own, nil).Once()
		orderUC.On("UpdateStatus", mock.Anything, int64(30), entity.OrderCancelled, customer.UserID).
			Return(&entity.Order{ID: 30, CustomerID: customer.UserID, Status: entity.OrderCancelled}, nil).Once()

		require.NoError(t, h.UpdateStatus(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, entity.OrderCancelled, decodeData[entity.Order](t, rec).Status)
	})

	t.Run("customer may not ship", func(t *testing.T) {
		h, orderUC := newOrderHandler(t)
		c, rec := newJSONContext(http.MethodPatch, "/api/v1/orders/30/status", `{"status":"shipped"}`, customer)
		withParams(c, "id", "30")

		require.NoError(t, h.UpdateStatus(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		orderUC.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pending to delivered is an invalid transition", func(t *testing.T) {
		h, orderUC := newOrderHandler(t)
		c, rec := newJSONContext(http.MethodPatch, "/api/v1/orders/30/status", `{"status":"delivered"}`, staff)
		withParams(c, "id", "30")
		orderUC.On("UpdateStatus", mock.Anything, int64(30), entity.OrderDelivered, staff.UserID).
			Return(nil, domainerrors.ErrInvalidTransition).Once()

		require.NoError(t, h.UpdateStatus(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_TRANSITION", decodeError(t, rec).Code)
	})

	t.Run("unknown status is rejected before the use case", func(t *testing.T) {
		h, _ := newOrderHandler(t)
		c, rec := newJSONContext(http.MethodPatch, "/api/v1/orders/30/status", `{"status":"lost"}`, staff)
		withParams(c, "id", "30")

		require.NoError(t, h.UpdateStatus(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
	})
}

func TestOrderHandler_ListOrders_StaffMayNameCustomer(t *testing.T) {
	h, orderUC := newOrderHandler(t)
	c, rec := newJSONContext(http.MethodGet, "/api/v1/orders?user_id=5&limit=20", "", staff)
	orderUC.On("ListCustomerOrders", mock.Anything, int64(5), entity.Page{Offset: 0, Limit: 20}).
		Return(&entity.PagedResult[*entity.Order]{Items: []*entity.Order{{ID: 1, CustomerID: 5}}, Total: 1}, nil).Once()

	require.NoError(t, h.ListOrders(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decodeData[entity.PagedResult[*entity.Order]](t, rec).Total)
}

func TestOrderHandler_ListOrders_CustomerCannotNameOthers(t *testing.T) {
	h, _ := newOrderHandler(t)
	c, rec := newJSONContext(http.MethodGet, "/api/v1/orders?user_id=5", "", customer)

	require.NoError(t, h.ListOrders(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
