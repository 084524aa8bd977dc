package repositories

import (
	"context"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
)

// InvoiceFilter narrows and orders invoice listings.
type InvoiceFilter struct {
	Status        *domain.InvoiceStatus
	SupplierTaxID string
	IssuedAfter   *time.Time
	IssuedBefore  *time.Time
	Limit         int
	NextToken     string
}

// InvoiceReader defines read operations for fiscal documents.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its line items and installments.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByNumber retrieves an invoice by its unique number.
	FindInvoiceByNumber(ctx context.Context, number string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices ordered by issue date, returning the
	// token for the next page ("" when exhausted).
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, string, error)
}

// InvoiceWriter defines write operations for fiscal documents.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice with its line items and installments
	// atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.InvoiceLineItem, installments []domain.InvoiceInstallment) error

	// UpdateInvoice updates the mutable fields of an existing invoice.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes an invoice and all owned line items and
	// installments in one transaction.
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// MarkOverdueInvoices transitions pending invoices and invoice
	// installments whose due date passed to overdue.
	MarkOverdueInvoices(ctx context.Context, asOf time.Time, now time.Time) (int64, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
