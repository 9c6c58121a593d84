package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// invoiceRepository implements the domain.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository is the constructor for invoiceRepository.
func NewInvoiceRepository(db *gorm.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// CreateInvoice persists an invoice with its items. One invoice exists per order.
func (repo *invoiceRepository) CreateInvoice(ctx context.Context, invoice *entity.Invoice) error {
	invoiceM := fromInvoiceDomain(invoice)

	if err := repo.db.WithContext(ctx).Create(invoiceM).Error; err != nil {
		return writeError(err, domainerrors.ErrInvoiceAlreadyExists, "create invoice")
	}

	invoice.ID = invoiceM.ID
	invoice.CreatedAt = invoiceM.CreatedAt
	for i := range invoice.Items {
		invoice.Items[i].ID = invoiceM.Items[i].ID
		invoice.Items[i].InvoiceID = invoiceM.ID
	}

	return nil
}

func (repo *invoiceRepository) FindInvoiceByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *invoiceRepository) FindInvoiceByOrderID(ctx context.Context, orderID int64) (*entity.Invoice, error) {
	return repo.findOne(ctx, "order_id = ?", orderID)
}

func (repo *invoiceRepository) findOne(ctx context.Context, query string, arg any) (*entity.Invoice, error) {
	var invoiceM model.InvoiceModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where(query, arg).
		First(&invoiceM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrInvoiceNotFound, "find invoice")
	}

	return toInvoiceDomain(&invoiceM), nil
}

// ListInvoicesByUser returns a page of a user's invoices, newest first.
func (repo *invoiceRepository) ListInvoicesByUser(ctx context.Context, userID int64, page entity.Page) ([]*entity.Invoice, int64, error) {
	var total int64
	err := repo.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count invoices")
	}

	var invoiceModels []model.InvoiceModel
	err = repo.db.WithContext(ctx).Preload("Items").Scopes(paginate(page)).
		Where("user_id = ?", userID).
		Order("issue_date DESC, id DESC").
		Find(&invoiceModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list invoices")
	}

	invoices := make([]*entity.Invoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoices = append(invoices, toInvoiceDomain(&invoiceModels[i]))
	}

	return invoices, total, nil
}

// SetInvoiceNumber assigns the human-readable number once the id is known.
func (repo *invoiceRepository) SetInvoiceNumber(ctx context.Context, id int64, number string) error {
	return repo.update(ctx, id, "invoice_number", number)
}

// SetInvoicePDF links the rendered PDF asset.
func (repo *invoiceRepository) SetInvoicePDF(ctx context.Context, id, assetID int64) error {
	return repo.update(ctx, id, "invoice_pdf_id", assetID)
}

func (repo *invoiceRepository) UpdatePaymentStatus(ctx context.Context, id int64, status entity.InvoicePaymentStatus) error {
	return repo.update(ctx, id, "payment_status", string(status))
}

func (repo *invoiceRepository) update(ctx context.Context, id int64, column string, value any) error {
	result := repo.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return writeError(result.Error, domainerrors.ErrInvoiceAlreadyExists, "update invoice")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvoiceNotFound.WrapMessage("update invoice")
	}

	return nil
}

// --- Mapper Functions ---

// toInvoiceDomain converts a GORM InvoiceModel to a domain Invoice entity.
func toInvoiceDomain(data *model.InvoiceModel) *entity.Invoice {
	if data == nil {
		return nil
	}

	items := make([]entity.InvoiceItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.InvoiceItem{
			ID:           item.ID,
			InvoiceID:    item.InvoiceID,
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			GSTRate:      item.GSTRate,
			CGST:         item.CGST,
			SGST:         item.SGST,
			IGST:         item.IGST,
			Total:        item.Total,
		})
	}

	return &entity.Invoice{
		ID:             data.ID,
		OrderID:        data.OrderID,
		UserID:         data.UserID,
		InvoiceNumber:  derefString(data.InvoiceNumber),
		IssueDate:      data.IssueDate,
		PDFAssetID:     data.InvoicePDFID,
		Subtotal:       data.Subtotal,
		TotalTax:       data.TotalTax,
		DiscountAmount: data.DiscountAmount,
		GrossAmount:    data.GrossAmount,
		CouponCode:     data.CouponCode,
		PaymentStatus:  entity.InvoicePaymentStatus(data.PaymentStatus),
		Items:          items,
		CreatedAt:      data.CreatedAt,
	}
}

// fromInvoiceDomain converts a domain Invoice entity to a GORM InvoiceModel.
func fromInvoiceDomain(data *entity.Invoice) *model.InvoiceModel {
	if data == nil {
		return nil
	}

	items := make([]model.InvoiceItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.InvoiceItemModel{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			GSTRate:      item.GSTRate,
			CGST:         item.CGST,
			SGST:         item.SGST,
			IGST:         item.IGST,
			Total:        item.Total,
		})
	}

	return &model.InvoiceModel{
		ID:             data.ID,
		OrderID:        data.OrderID,
		UserID:         data.UserID,
		InvoiceNumber:  nullableString(data.InvoiceNumber),
		IssueDate:      data.IssueDate,
		InvoicePDFID:   data.PDFAssetID,
		Subtotal:       data.Subtotal,
		TotalTax:       data.TotalTax,
		DiscountAmount: data.DiscountAmount,
		GrossAmount:    data.GrossAmount,
		CouponCode:     data.CouponCode,
		PaymentStatus:  string(data.PaymentStatus),
		CreatedAt:      data.CreatedAt,
		Items:          items,
	}
}
