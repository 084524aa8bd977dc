package services

import (
	"context"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// InvoiceSvcFacade manages supplier fiscal documents.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, string, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// SweepOverdueInvoices transitions pending invoices/installments past due
	// into overdue, returning how many invoices changed.
	SweepOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error)
}
