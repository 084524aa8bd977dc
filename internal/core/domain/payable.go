package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayableStatus indicates the settlement state of a payable.
type PayableStatus string

const (
	PayablePending   PayableStatus = "PENDING"
	PayablePaid      PayableStatus = "PAID"
	PayableOverdue   PayableStatus = "OVERDUE"
	PayableCancelled PayableStatus = "CANCELLED"
)

// IsValid reports whether the status belongs to the fixed vocabulary.
func (s PayableStatus) IsValid() bool {
	switch s {
	case PayablePending, PayablePaid, PayableOverdue, PayableCancelled:
		return true
	}
	return false
}

// ExpenseType classifies a payable for income-statement purposes.
type ExpenseType string

const (
	ExpenseOperational    ExpenseType = "OPERATIONAL"
	ExpenseAdministrative ExpenseType = "ADMINISTRATIVE"
	ExpenseFinancial      ExpenseType = "FINANCIAL"
)

// IsValid reports whether the expense type belongs to the fixed vocabulary.
func (t ExpenseType) IsValid() bool {
	switch t {
	case ExpenseOperational, ExpenseAdministrative, ExpenseFinancial:
		return true
	}
	return false
}

// Payable represents an obligation to pay a supplier. It exclusively owns its
// installments and payments: deleting a payable deletes them with it.
type Payable struct {
	PayableID     string          `json:"payableID"`     // Primary Key (UUID)
	Description   string          `json:"description"`
	SupplierName  string          `json:"supplierName"`
	SupplierTaxID string          `json:"supplierTaxID"` // Optional CNPJ
	ExpenseType   ExpenseType     `json:"expenseType"`
	Category      string          `json:"category"` // Free text (water, rent, payroll, ...)
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	IssueDate     time.Time       `json:"issueDate"` // Calendar date
	DueDate       time.Time       `json:"dueDate"`   // Calendar date
	Status        PayableStatus   `json:"status"`
	IsRecurring   bool            `json:"isRecurring"`
	Periodicity   Periodicity     `json:"periodicity,omitempty"` // Only when IsRecurring
	Notes         string          `json:"notes,omitempty"`
	InvoiceID     string          `json:"invoiceID,omitempty"` // Nullable FK -> invoices
	AuditFields

	// Owned collections, populated on reads that request them.
	Installments []Installment `json:"installments,omitempty"`
	Payments     []Payment     `json:"payments,omitempty"`
}

// InstallmentStatus indicates the settlement state of a single installment.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "PENDING"
	InstallmentPaid    InstallmentStatus = "PAID"
	InstallmentOverdue InstallmentStatus = "OVERDUE"
)

// IsValid reports whether the status belongs to the fixed vocabulary.
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentPending, InstallmentPaid, InstallmentOverdue:
		return true
	}
	return false
}

// Installment is one scheduled sub-payment of a payable. Number is 1-based and
// unique within the parent.
type Installment struct {
	InstallmentID string            `json:"installmentID"` // Primary Key (UUID)
	PayableID     string            `json:"payableID"`     // FK -> payables (Not Null)
	Number        int               `json:"number"`
	DueDate       time.Time         `json:"dueDate"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        InstallmentStatus `json:"status"`
	PaymentDate   *time.Time        `json:"paymentDate,omitempty"`
	PaidAmount    decimal.Decimal   `json:"paidAmount"` // Zero until something is paid
	Interest      decimal.Decimal   `json:"interest"`
	Penalty       decimal.Decimal   `json:"penalty"`
	Discount      decimal.Decimal   `json:"discount"`
	Notes         string            `json:"notes,omitempty"`
}
