package handler

import (
	"context"
	"log/slog"
	"net/http"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves orders and their items.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderItemRequest represents one line of a new order
type OrderItemRequest struct {
	BatchID  int64            `json:"batch_id" validate:"required,gt=0"`
	Quantity int              `json:"quantity" validate:"required,gt=0"`
	Price    *decimal.Decimal `json:"price"`
}

// CreateOrderRequest represents the request body for placing an order.
// Staff may place an order for another customer.
type CreateOrderRequest struct {
	CustomerID     int64              `json:"customer_id" validate:"gte=0"`
	MemberID       *int64             `json:"member_id" validate:"omitempty,gt=0"`
	PrescriptionID *int64             `json:"prescription_id" validate:"omitempty,gt=0"`
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents the request body for moving an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
}

// UpdateOrderItemRequest represents the request body for patching an order line
type UpdateOrderItemRequest struct {
	Quantity *int             `json:"quantity" validate:"omitempty,gt=0"`
	Price    *decimal.Decimal `json:"price"`
}

func toNewItem(r OrderItemRequest) entity.NewOrderItem {
	return entity.NewOrderItem{BatchID: r.BatchID, Quantity: r.Quantity, Price: r.Price}
}

// authorizeOrder lets staff through and checks ownership for everyone else.
func (h *OrderHandler) authorizeOrder(ctx context.Context, p *entity.Principal, orderID int64) error {
	if isStaff(p) {
		return nil
	}

	order, err := h.orderUC.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.CustomerID != p.UserID {
		return domainerrors.ErrForbidden
	}

	return nil
}

// CreateOrder handles placing an order
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	customerID, err := subjectUserID(principal, req.CustomerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	items := make([]entity.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, toNewItem(item))
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), &entity.NewOrder{
		CustomerID:     customerID,
		MemberID:       req.MemberID,
		PrescriptionID: req.PrescriptionID,
		Items:          items,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order)
}

// GetOrder handles retrieving one order with its items and payments
func (h *OrderHandler) GetOrder(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if !canAccess(principal, order.CustomerID) {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	return response.Success(c, http.StatusOK, order)
}

// ListOrders handles the paged order list of the caller, or of ?user_id= for staff
func (h *OrderHandler) ListOrders(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	customerID, err := targetUserID(c, principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.orderUC.ListCustomerOrders(c.Request().Context(), customerID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// UpdateStatus handles moving an order along its lifecycle. Customers may only
// cancel their own orders.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	status := entity.OrderStatus(req.Status)
	if !principal.HasScopes(entity.ScopeAdminWrite) && status != entity.OrderCancelled {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	if err := h.authorizeOrder(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), id, status, principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// DeleteOrder handles soft deleting an order
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListItems handles listing the lines of an order
func (h *OrderHandler) ListItems(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authorizeOrder(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	items, err := h.orderUC.ListItems(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items)
}

// AddItem handles adding a line to a pending order
func (h *OrderHandler) AddItem(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req OrderItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if err := h.authorizeOrder(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.AddItem(c.Request().Context(), id, toNewItem(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order)
}

// UpdateItem handles patching a line of a pending order
func (h *OrderHandler) UpdateItem(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	itemID, err := pathID(c, "itemId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if err := h.authorizeOrder(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.UpdateItem(c.Request().Context(), id, itemID, &entity.OrderItemPatch{
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// DeleteItem handles removing a line from a pending order
func (h *OrderHandler) DeleteItem(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	itemID, err := pathID(c, "itemId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authorizeOrder(c.Request().Context(), principal, id); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.DeleteItem(c.Request().Context(), id, itemID, principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}
