package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors domain.InvoiceStatus at the storage layer.
type InvoiceStatus string

// Invoice is the row shape of the invoices table.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	Number         string          `db:"invoice_number"` // Unique
	Series         string          `db:"series"`
	SupplierTaxID  string          `db:"supplier_tax_id"`
	SupplierName   string          `db:"supplier_name"`
	IssueDate      time.Time       `db:"issue_date"`
	DueDate        *time.Time      `db:"due_date"` // Nullable
	TotalAmount    decimal.Decimal `db:"total_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	NetAmount      decimal.Decimal `db:"net_amount"`
	AccessKey      string          `db:"access_key"`
	RawContent     string          `db:"raw_content"`
	Status         InvoiceStatus   `db:"status"`
	Notes          string          `db:"notes"`
	AuditFields
}

// InvoiceLineItem is the row shape of the invoice_line_items table.
type InvoiceLineItem struct {
	LineItemID  string          `db:"line_item_id"`
	InvoiceID   string          `db:"invoice_id"`
	ProductCode string          `db:"product_code"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	Unit        string          `db:"unit"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total"`
	NCMCode     string          `db:"ncm_code"`
	CFOPCode    string          `db:"cfop_code"`
}

// InvoiceInstallment is the row shape of the invoice_installments table.
type InvoiceInstallment struct {
	InstallmentID string            `db:"installment_id"`
	InvoiceID     string            `db:"invoice_id"`
	Number        int               `db:"installment_number"`
	DueDate       time.Time         `db:"due_date"`
	Amount        decimal.Decimal   `db:"amount"`
	Status        InstallmentStatus `db:"status"`
	PaymentDate   *time.Time        `db:"payment_date"` // Nullable
	PaidAmount    decimal.Decimal   `db:"paid_amount"`
	Notes         string            `db:"notes"`
}
