package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayableStatus mirrors domain.PayableStatus at the storage layer.
type PayableStatus string

// ExpenseType mirrors domain.ExpenseType at the storage layer.
type ExpenseType string

// Payable is the row shape of the payables table.
type Payable struct {
	PayableID     string          `db:"payable_id"`
	Description   string          `db:"description"`
	SupplierName  string          `db:"supplier_name"`
	SupplierTaxID string          `db:"supplier_tax_id"`
	ExpenseType   ExpenseType     `db:"expense_type"`
	Category      string          `db:"category"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	IssueDate     time.Time       `db:"issue_date"`
	DueDate       time.Time       `db:"due_date"`
	Status        PayableStatus   `db:"status"`
	IsRecurring   bool            `db:"is_recurring"`
	Periodicity   *string         `db:"periodicity"` // Nullable
	Notes         string          `db:"notes"`
	InvoiceID     *string         `db:"invoice_id"` // Nullable FK
	AuditFields
}

// InstallmentStatus mirrors domain.InstallmentStatus at the storage layer.
type InstallmentStatus string

// Installment is the row shape of the installments table.
type Installment struct {
	InstallmentID string            `db:"installment_id"`
	PayableID     string            `db:"payable_id"`
	Number        int               `db:"installment_number"`
	DueDate       time.Time         `db:"due_date"`
	Amount        decimal.Decimal   `db:"amount"`
	Status        InstallmentStatus `db:"status"`
	PaymentDate   *time.Time        `db:"payment_date"` // Nullable
	PaidAmount    decimal.Decimal   `db:"paid_amount"`
	Interest      decimal.Decimal   `db:"interest"`
	Penalty       decimal.Decimal   `db:"penalty"`
	Discount      decimal.Decimal   `db:"discount"`
	Notes         string            `db:"notes"`
}

// PaymentMethod mirrors domain.PaymentMethod at the storage layer.
type PaymentMethod string

// Payment is the row shape of the payments table.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	PayableID     string          `db:"payable_id"`
	InstallmentID *string         `db:"installment_id"` // Nullable FK
	PaymentDate   time.Time       `db:"payment_date"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	Method        PaymentMethod   `db:"payment_method"`
	ReceiptPath   string          `db:"receipt_path"`
	Notes         string          `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
}
