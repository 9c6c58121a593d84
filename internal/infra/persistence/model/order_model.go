package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	CustomerID     int64           `gorm:"not null;index"`
	MemberID       *int64          `gorm:"index"`
	PrescriptionID *int64          `gorm:"index"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt      time.Time       `gorm:"index"`
	UpdatedAt      *time.Time      `gorm:"autoUpdateTime:false"`
	SoftDelete

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID       int64           `gorm:"primaryKey;autoIncrement"`
	OrderID  int64           `gorm:"not null;index"`
	BatchID  int64           `gorm:"not null;index"`
	Quantity int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PrescriptionModel mirrors the 'prescriptions' table.
type PrescriptionModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CustomerID  int64  `gorm:"not null;index"`
	FileAssetID int64  `gorm:"not null"`
	Status      string `gorm:"type:varchar(20);not null;default:pending"`
	VerifiedBy  *int64
	VerifiedAt  *time.Time
	Notes       string    `gorm:"type:text"`
	UploadedAt  time.Time `gorm:"not null"`
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (PrescriptionModel) TableName() string {
	return "prescriptions"
}

// InvoiceModel mirrors the 'invoices' table. The number is assigned once the id is known.
type InvoiceModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	OrderID        int64           `gorm:"not null;uniqueIndex"`
	UserID         int64           `gorm:"not null;index"`
	InvoiceNumber  *string         `gorm:"type:varchar(255);uniqueIndex"`
	IssueDate      time.Time       `gorm:"not null"`
	InvoicePDFID   *int64          `gorm:"column:invoice_pdf_id"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal_amount;type:numeric(12,2);not null"`
	TotalTax       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	GrossAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CouponCode     string          `gorm:"type:varchar(50)"`
	PaymentStatus  string          `gorm:"type:varchar(20);not null;default:unpaid"`
	CreatedAt      time.Time

	Items []InvoiceItemModel `gorm:"foreignKey:InvoiceID"`
}

// TableName explicitly sets the table name for GORM.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel mirrors the 'invoice_items' table.
type InvoiceItemModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID    int64           `gorm:"not null;index"`
	MedicineID   int64           `gorm:"not null"`
	MedicineName string          `gorm:"type:varchar(255)"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	GSTRate      decimal.Decimal `gorm:"column:gst_rate;type:numeric(5,2);not null"`
	CGST         decimal.Decimal `gorm:"column:cgst;type:numeric(12,2);not null"`
	SGST         decimal.Decimal `gorm:"column:sgst;type:numeric(12,2);not null"`
	IGST         decimal.Decimal `gorm:"column:igst;type:numeric(12,2);not null"`
	Total        decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// PaymentModel mirrors the 'payments' table.
type PaymentModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null"`
	PaymentMode string          `gorm:"type:varchar(50)"`
	PaidAt      *time.Time
	CreatedAt   time.Time `gorm:"index"`
	SoftDelete
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}
