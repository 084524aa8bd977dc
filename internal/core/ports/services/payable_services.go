package services

import (
	"context"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// PayableReaderSvc defines read operations over payables.
type PayableReaderSvc interface {
	GetPayableByID(ctx context.Context, payableID string) (*domain.Payable, error)
	ListPayables(ctx context.Context, filter portsrepo.PayableFilter) ([]domain.Payable, string, error)
	ListPayments(ctx context.Context, payableID string) ([]domain.Payment, error)
}

// PayableWriterSvc defines write operations over payables.
type PayableWriterSvc interface {
	CreatePayable(ctx context.Context, req dto.CreatePayableRequest) (*domain.Payable, error)
	CreatePayableFromInvoice(ctx context.Context, invoiceID string, req dto.CreatePayableFromInvoiceRequest) (*domain.Payable, error)
	UpdatePayable(ctx context.Context, payableID string, req dto.UpdatePayableRequest) (*domain.Payable, error)
	DeletePayable(ctx context.Context, payableID string) error
	RecordPayment(ctx context.Context, payableID string, req dto.RecordPaymentRequest) (*domain.Payable, error)

	// SweepOverduePayables transitions pending payables/installments past due
	// into overdue, returning how many payables changed.
	SweepOverduePayables(ctx context.Context, asOf time.Time) (int64, error)
}

// PayableSvcFacade combines all payable service interfaces.
type PayableSvcFacade interface {
	PayableReaderSvc
	PayableWriterSvc
}
