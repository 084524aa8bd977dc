package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the settlement state of a fiscal document.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "PENDING"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// IsValid reports whether the status belongs to the fixed vocabulary.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoicePending, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// Invoice represents a supplier fiscal document (nota fiscal). The invoice
// number is unique across the store. It exclusively owns its line items and
// installments.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"` // Primary Key (UUID)
	Number         string          `json:"number"`    // Unique
	Series         string          `json:"series"`
	SupplierTaxID  string          `json:"supplierTaxID"` // CNPJ (Not Null)
	SupplierName   string          `json:"supplierName"`
	IssueDate      time.Time       `json:"issueDate"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	NetAmount      decimal.Decimal `json:"netAmount"` // TotalAmount - DiscountAmount
	AccessKey      string          `json:"accessKey,omitempty"` // 44-digit fiscal access key
	RawContent     string          `json:"rawContent,omitempty"` // Original document payload
	Status         InvoiceStatus   `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	AuditFields

	LineItems    []InvoiceLineItem    `json:"lineItems,omitempty"`
	Installments []InvoiceInstallment `json:"installments,omitempty"`
}

// InvoiceLineItem is one product or service line on an invoice. Quantities
// carry three fractional digits, prices two.
type InvoiceLineItem struct {
	LineItemID  string          `json:"lineItemID"` // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"`  // FK -> invoices (Not Null)
	ProductCode string          `json:"productCode,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"` // Quantity * UnitPrice
	NCMCode     string          `json:"ncmCode,omitempty"`  // Mercosur tax classification
	CFOPCode    string          `json:"cfopCode,omitempty"` // Fiscal operation code
}

// InvoiceInstallment mirrors Installment but is scoped to an invoice and
// carries no interest/penalty/discount fields.
type InvoiceInstallment struct {
	InstallmentID string            `json:"installmentID"` // Primary Key (UUID)
	InvoiceID     string            `json:"invoiceID"`     // FK -> invoices (Not Null)
	Number        int               `json:"number"`
	DueDate       time.Time         `json:"dueDate"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        InstallmentStatus `json:"status"`
	PaymentDate   *time.Time        `json:"paymentDate,omitempty"`
	PaidAmount    decimal.Decimal   `json:"paidAmount"`
	Notes         string            `json:"notes,omitempty"`
}
