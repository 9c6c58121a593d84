package impl

import (
	"context"
	"log/slog"

	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"

	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	publisher service.EventPublisher
	clock     service.Clock
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Publisher service.EventPublisher
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		repos:     params.Repos,
		publisher: params.Publisher,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder validates the customer, member, prescription and every batch
// before writing anything. Order and items are inserted in one transaction.
func (srv *orderService) CreateOrder(ctx context.Context, input *entity.NewOrder) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyOrder
	}

	var created *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.UserRepo().FindUserByID(ctx, input.CustomerID); err != nil {
			return err
		}

		if input.MemberID != nil {
			member, err := repoFactory.ProfileRepo().FindFamilyMemberByID(ctx, *input.MemberID)
			if err != nil {
				return err
			}
			if member.UserID != input.CustomerID {
				return domainerrors.ErrFamilyMemberNotFound.WrapMessage("member belongs to another customer")
			}
		}

		if input.PrescriptionID != nil {
			prescription, err := repoFactory.PrescriptionRepo().FindPrescriptionByID(ctx, *input.PrescriptionID)
			if err != nil {
				return err
			}
			if prescription.CustomerID != input.CustomerID {
				return domainerrors.ErrPrescriptionNotFound.WrapMessage("prescription belongs to another customer")
			}
		}

		order := &entity.Order{
			CustomerID:     input.CustomerID,
			MemberID:       input.MemberID,
			PrescriptionID: input.PrescriptionID,
			Status:         entity.OrderPending,
			Items:          make([]entity.OrderItem, 0, len(input.Items)),
		}
		for _, requested := range input.Items {
			item, err := priceItem(ctx, repoFactory.BatchRepo(), requested)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
		order.RecalculateTotal()

		orderRepo := repoFactory.OrderRepo()
		if err := orderRepo.CreateOrder(ctx, order); err != nil {
			return err
		}

		var err error
		created, err = orderRepo.FindOrderByID(ctx, order.ID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created",
		slog.Int64("orderID", created.ID),
		slog.Int64("customerID", created.CustomerID),
		slog.String("total", created.TotalAmount.StringFixed(2)),
	)

	srv.publish(ctx, &service.OrderEvent{
		Type:       service.EventOrderCreated,
		OrderID:    created.ID,
		CustomerID: created.CustomerID,
		ToStatus:   created.Status.String(),
		ChangedBy:  created.CustomerID,
	})

	return created, nil
}

// priceItem resolves the batch of a requested line and fills in its unit price.
func priceItem(ctx context.Context, batchRepo repository.BatchRepository, requested entity.NewOrderItem) (entity.OrderItem, error) {
	if requested.Quantity <= 0 {
		return entity.OrderItem{}, domainerrors.ErrValidation.WrapMessage("item quantity must be positive")
	}

	batch, err := batchRepo.FindBatchByID(ctx, requested.BatchID)
	if err != nil {
		return entity.OrderItem{}, err
	}

	price := batch.SellingPrice
	if requested.Price != nil {
		if requested.Price.IsNegative() {
			return entity.OrderItem{}, domainerrors.ErrValidation.WrapMessage("item price must not be negative")
		}
		price = *requested.Price
	}

	return entity.OrderItem{BatchID: batch.ID, Quantity: requested.Quantity, Price: price}, nil
}

func (srv *orderService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	return srv.repos.OrderRepo().FindOrderByID(ctx, id)
}

func (srv *orderService) ListCustomerOrders(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[*entity.Order], error) {
	orders, total, err := srv.repos.OrderRepo().ListOrdersByCustomer(ctx, customerID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return paged(orders, total), nil
}

// UpdateStatus applies a lifecycle transition. The event goes out only after commit.
func (srv *orderService) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, by int64) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("unknown order status " + status.String())
	}

	var (
		from    entity.OrderStatus
		updated *entity.Order
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindOrderByID(ctx, id)
		if err != nil {
			return err
		}
		from = order.Status
		if !from.CanTransitionTo(status) {
			return domainerrors.ErrInvalidTransition.WrapMessage(from.String() + " -> " + status.String())
		}

		if err := orderRepo.UpdateOrderStatus(ctx, id, from, status, srv.clock.Now()); err != nil {
			return err
		}

		updated, err = orderRepo.FindOrderByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status changed",
		slog.Int64("orderID", id),
		slog.String("from", from.String()),
		slog.String("to", status.String()),
		slog.Int64("by", by),
	)

	srv.publish(ctx, &service.OrderEvent{
		Type:       service.EventOrderStatusChanged,
		OrderID:    id,
		CustomerID: updated.CustomerID,
		FromStatus: from.String(),
		ToStatus:   status.String(),
		ChangedBy:  by,
	})

	return updated, nil
}

// publish sends an order event. Failures are logged and never undo the change.
func (srv *orderService) publish(ctx context.Context, event *service.OrderEvent) {
	if srv.publisher == nil {
		return
	}

	event.RequestID = deliverycontext.RequestIDFromContext(ctx)
	event.OccurredAt = srv.clock.Now()

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.String("type", event.Type),
			slog.Int64("orderID", event.OrderID),
			slog.Any("error", err),
		)
	}
}

func (srv *orderService) DeleteOrder(ctx context.Context, id, by int64) error {
	if err := srv.repos.OrderRepo().SoftDeleteOrder(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.Int64("orderID", id), slog.Int64("by", by))

	return nil
}

func (srv *orderService) ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	orderRepo := srv.repos.OrderRepo()

	if _, err := orderRepo.FindOrderByID(ctx, orderID); err != nil {
		return nil, err
	}

	return orderRepo.ListOrderItems(ctx, orderID)
}

// AddItem appends a line to a pending order and refreshes its total.
func (srv *orderService) AddItem(ctx context.Context, orderID int64, requested entity.NewOrderItem) (*entity.Order, error) {
	return srv.editItems(ctx, orderID, func(repoFactory repository.RepositoryFactory) error {
		item, err := priceItem(ctx, repoFactory.BatchRepo(), requested)
		if err != nil {
			return err
		}
		item.OrderID = orderID

		return repoFactory.OrderRepo().CreateOrderItem(ctx, &item)
	})
}

// UpdateItem changes the quantity or price of a line of a pending order.
func (srv *orderService) UpdateItem(ctx context.Context, orderID, itemID int64, patch *entity.OrderItemPatch) (*entity.Order, error) {
	return srv.editItems(ctx, orderID, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		item, err := orderRepo.FindOrderItem(ctx, orderID, itemID)
		if err != nil {
			return err
		}
		if patch.Quantity != nil {
			if *patch.Quantity <= 0 {
				return domainerrors.ErrValidation.WrapMessage("item quantity must be positive")
			}
			item.Quantity = *patch.Quantity
		}
		if patch.Price != nil {
			if patch.Price.IsNegative() {
				return domainerrors.ErrValidation.WrapMessage("item price must not be negative")
			}
			item.Price = *patch.Price
		}

		return orderRepo.UpdateOrderItem(ctx, item)
	})
}

// DeleteItem removes a line from a pending order.
func (srv *orderService) DeleteItem(ctx context.Context, orderID, itemID, by int64) (*entity.Order, error) {
	return srv.editItems(ctx, orderID, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.OrderRepo().SoftDeleteOrderItem(ctx, orderID, itemID, by)
	})
}

// editItems runs edit on a pending order and stores the recalculated total in
// the same transaction.
func (srv *orderService) editItems(ctx context.Context, orderID int64, edit func(repository.RepositoryFactory) error) (*entity.Order, error) {
	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderPending {
			return domainerrors.ErrOrderNotEditable.WrapMessage("order is " + order.Status.String())
		}

		if err := edit(repoFactory); err != nil {
			return err
		}

		items, err := orderRepo.ListOrderItems(ctx, orderID)
		if err != nil {
			return err
		}
		if err := orderRepo.UpdateOrderTotal(ctx, orderID, entity.SumLineTotals(items), srv.clock.Now()); err != nil {
			return err
		}

		updated, err = orderRepo.FindOrderByID(ctx, orderID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to edit order items")
	}

	return updated, nil
}
