package impl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"medico/config"
	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	defaultInvoicePrefix = "INV"
	invoiceContentType   = "application/pdf"
)

// invoiceService implements the InvoiceUsecase interface.
type invoiceService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	renderer  service.InvoiceRenderer
	files     *fileStorer
	clock     service.Clock
	prefix    string
	logger    *slog.Logger
}

// InvoiceServiceParams holds dependencies for InvoiceService, injected by Fx.
type InvoiceServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Renderer  service.InvoiceRenderer
	Blobs     service.BlobStore
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

// NewInvoiceService is the constructor for invoiceService.
func NewInvoiceService(params InvoiceServiceParams) usecase.InvoiceUsecase {
	srv := &invoiceService{
		txManager: params.TxManager,
		repos:     params.Repos,
		renderer:  params.Renderer,
		files:     newFileStorer(params.Blobs, params.Config),
		clock:     params.Clock,
		prefix:    defaultInvoicePrefix,
		logger:    params.Logger,
	}
	if params.Config.Invoice != nil && params.Config.Invoice.NumberPrefix != "" {
		srv.prefix = params.Config.Invoice.NumberPrefix
	}

	return srv
}

func (srv *invoiceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GenerateInvoice bills an order once. Line taxes, the coupon redemption, the
// invoice number and the rendered PDF are all committed together.
func (srv *invoiceService) GenerateInvoice(ctx context.Context, input *usecase.GenerateInvoiceInput) (*entity.Invoice, error) {
	now := srv.clock.Now()

	var invoice *entity.Invoice
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		invoiceRepo := repoFactory.InvoiceRepo()

		order, err := repoFactory.OrderRepo().FindOrderByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order.Status == entity.OrderCancelled {
			return domainerrors.ErrOrderCancelled.WrapMessage("cannot invoice a cancelled order")
		}
		if len(order.Items) == 0 {
			return domainerrors.ErrEmptyOrder
		}

		_, err = invoiceRepo.FindInvoiceByOrderID(ctx, order.ID)
		switch {
		case err == nil:
			return domainerrors.ErrInvoiceAlreadyExists
		case !errors.Is(err, domainerrors.ErrInvoiceNotFound):
			return err
		}

		invoice = &entity.Invoice{
			OrderID:       order.ID,
			UserID:        order.CustomerID,
			IssueDate:     now,
			PaymentStatus: entity.InvoiceUnpaid,
			Items:         make([]entity.InvoiceItem, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			line, err := srv.priceLine(ctx, repoFactory, item)
			if err != nil {
				return err
			}
			invoice.Items = append(invoice.Items, line)
		}
		invoice.Summarize()

		if input.CouponCode != "" {
			quote, coupon, err := quoteCoupon(ctx, repoFactory, input.CouponCode, invoice.Subtotal, now)
			if err != nil {
				return err
			}
			if err := repoFactory.CouponRepo().IncrementUsage(ctx, coupon.ID, 1); err != nil {
				return err
			}
			invoice.CouponCode = quote.Code
			invoice.DiscountAmount = quote.DiscountAmount
			invoice.Summarize()
		}

		if err := invoiceRepo.CreateInvoice(ctx, invoice); err != nil {
			return err
		}

		invoice.InvoiceNumber = fmt.Sprintf("%s-%s-%d", srv.prefix, now.Format("20060102"), invoice.ID)
		if err := invoiceRepo.SetInvoiceNumber(ctx, invoice.ID, invoice.InvoiceNumber); err != nil {
			return err
		}

		var pdf bytes.Buffer
		if err := srv.renderer.RenderInvoice(&pdf, invoice); err != nil {
			return errors.Wrap(err, "failed to render invoice")
		}
		asset, err := srv.files.put(ctx, repoFactory.FileRepo(), input.IssuedBy,
			invoice.InvoiceNumber+".pdf", invoiceContentType, pdf.Bytes())
		if err != nil {
			return err
		}
		if err := invoiceRepo.SetInvoicePDF(ctx, invoice.ID, asset.ID); err != nil {
			return err
		}
		invoice.PDFAssetID = &asset.ID

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate invoice")
	}

	srv.log(ctx).Info("Invoice generated",
		slog.Int64("invoiceID", invoice.ID),
		slog.String("number", invoice.InvoiceNumber),
		slog.Int64("orderID", invoice.OrderID),
		slog.String("gross", invoice.GrossAmount.StringFixed(2)),
	)

	return invoice, nil
}

// priceLine taxes one order item at the GST rate of its medicine's HSN code.
// A medicine without a slab is billed at zero tax.
func (srv *invoiceService) priceLine(ctx context.Context, repoFactory repository.RepositoryFactory, item entity.OrderItem) (entity.InvoiceItem, error) {
	batch, err := repoFactory.BatchRepo().FindBatchByID(ctx, item.BatchID)
	if err != nil {
		return entity.InvoiceItem{}, err
	}

	medicine, err := repoFactory.MedicineRepo().FindMedicineByID(ctx, batch.MedicineID)
	if err != nil {
		return entity.InvoiceItem{}, err
	}

	rate := decimal.Zero
	if medicine.HSNCode != "" {
		slab, err := repoFactory.GSTSlabRepo().FindGSTSlabByHSN(ctx, medicine.HSNCode)
		switch {
		case err == nil:
			rate = slab.Rate
		case !errors.Is(err, domainerrors.ErrGSTSlabNotFound):
			return entity.InvoiceItem{}, err
		}
	}

	return entity.NewInvoiceItem(medicine.ID, medicine.Name, item.Quantity, item.Price, rate), nil
}

func (srv *invoiceService) GetInvoice(ctx context.Context, id int64) (*entity.Invoice, error) {
	return srv.repos.InvoiceRepo().FindInvoiceByID(ctx, id)
}

func (srv *invoiceService) ListCustomerInvoices(ctx context.Context, userID int64, page entity.Page) (*entity.PagedResult[*entity.Invoice], error) {
	invoices, total, err := srv.repos.InvoiceRepo().ListInvoicesByUser(ctx, userID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices")
	}

	return paged(invoices, total), nil
}

// DownloadInvoice opens the rendered PDF of an invoice.
func (srv *invoiceService) DownloadInvoice(ctx context.Context, id int64) (*usecase.FileDownload, error) {
	invoice, err := srv.repos.InvoiceRepo().FindInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.PDFAssetID == nil {
		return nil, domainerrors.ErrFileNotFound.WrapMessage("invoice has no document")
	}

	asset, err := srv.repos.FileRepo().FindFileAssetByID(ctx, *invoice.PDFAssetID)
	if err != nil {
		return nil, err
	}

	return srv.files.open(ctx, asset)
}

func (srv *invoiceService) UpdatePaymentStatus(ctx context.Context, id int64, status entity.InvoicePaymentStatus) (*entity.Invoice, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("payment status must be paid or unpaid")
	}

	invoiceRepo := srv.repos.InvoiceRepo()
	if err := invoiceRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, errors.Wrap(err, "failed to update invoice payment status")
	}

	return invoiceRepo.FindInvoiceByID(ctx, id)
}
