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

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	clock     service.Clock
	logger    *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		txManager: params.TxManager,
		repos:     params.Repos,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// InitiatePayment records a pending payment against a live, uncancelled order.
func (srv *paymentService) InitiatePayment(ctx context.Context, input *usecase.InitiatePaymentInput) (*entity.Payment, error) {
	order, err := srv.repos.OrderRepo().FindOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderCancelled {
		return nil, domainerrors.ErrOrderCancelled.WrapMessage("cannot pay for a cancelled order")
	}

	amount := order.TotalAmount
	if input.Amount != nil {
		amount = *input.Amount
	}
	if amount.IsNegative() {
		return nil, domainerrors.ErrValidation.WrapMessage("amount must not be negative")
	}

	payment := &entity.Payment{
		OrderID: order.ID,
		Amount:  amount,
		Status:  entity.PaymentPending,
		Mode:    input.Mode,
	}
	if err := srv.repos.PaymentRepo().CreatePayment(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to initiate payment")
	}

	srv.log(ctx).Info("Payment initiated",
		slog.Int64("paymentID", payment.ID),
		slog.Int64("orderID", order.ID),
		slog.String("amount", amount.StringFixed(2)),
	)

	return payment, nil
}

func (srv *paymentService) ListOrderPayments(ctx context.Context, orderID int64) ([]entity.Payment, error) {
	if _, err := srv.repos.OrderRepo().FindOrderByID(ctx, orderID); err != nil {
		return nil, err
	}

	return srv.repos.PaymentRepo().ListPaymentsByOrder(ctx, orderID)
}

// UpdatePaymentStatus applies a lifecycle transition and keeps the order's
// invoice in step: completed marks it paid, refunded marks it unpaid again.
func (srv *paymentService) UpdatePaymentStatus(ctx context.Context, id int64, status entity.PaymentStatus) (*entity.Payment, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("unknown payment status " + string(status))
	}

	var payment *entity.Payment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		paymentRepo := repoFactory.PaymentRepo()

		var err error
		payment, err = paymentRepo.FindPaymentByID(ctx, id)
		if err != nil {
			return err
		}
		if !payment.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidTransition.WrapMessage(string(payment.Status) + " -> " + string(status))
		}

		payment.Status = status
		if status == entity.PaymentCompleted {
			now := srv.clock.Now()
			payment.PaidAt = &now
		}
		if err := paymentRepo.UpdatePaymentStatus(ctx, payment); err != nil {
			return err
		}

		switch status {
		case entity.PaymentCompleted:
			return syncInvoiceStatus(ctx, repoFactory.InvoiceRepo(), payment.OrderID, entity.InvoicePaid)
		case entity.PaymentRefunded:
			return syncInvoiceStatus(ctx, repoFactory.InvoiceRepo(), payment.OrderID, entity.InvoiceUnpaid)
		default:
			return nil
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update payment status")
	}

	srv.log(ctx).Info("Payment status changed", slog.Int64("paymentID", id), slog.String("status", string(status)))

	return payment, nil
}

// syncInvoiceStatus updates the order's invoice if one has been generated.
func syncInvoiceStatus(ctx context.Context, invoiceRepo repository.InvoiceRepository, orderID int64, status entity.InvoicePaymentStatus) error {
	invoice, err := invoiceRepo.FindInvoiceByOrderID(ctx, orderID)
	if errors.Is(err, domainerrors.ErrInvoiceNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return invoiceRepo.UpdatePaymentStatus(ctx, invoice.ID, status)
}

func (srv *paymentService) PaymentHistory(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[entity.Payment], error) {
	payments, total, err := srv.repos.PaymentRepo().ListPaymentsByCustomer(ctx, customerID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load payment history")
	}

	return paged(payments, total), nil
}
