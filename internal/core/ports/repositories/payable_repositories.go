package repositories

import (
	"context"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
)

// PayableFilter narrows and orders payable listings. Zero values mean "no
// constraint". NextToken restarts the sequence after a previous page.
type PayableFilter struct {
	Status       *domain.PayableStatus
	ExpenseType  *domain.ExpenseType
	Category     string
	SupplierName string
	DueAfter     *time.Time
	DueBefore    *time.Time
	Limit        int
	NextToken    string
}

// PayableReader defines read operations for payable data.
type PayableReader interface {
	// FindPayableByID retrieves a payable with its installments and payments.
	FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error)

	// ListPayables retrieves payables ordered by due date, returning the token
	// for the next page ("" when exhausted).
	ListPayables(ctx context.Context, filter PayableFilter) ([]domain.Payable, string, error)

	// ListPayments retrieves all payments recorded against a payable.
	ListPayments(ctx context.Context, payableID string) ([]domain.Payment, error)
}

// PayableWriter defines write operations for payable data.
type PayableWriter interface {
	// SavePayable persists a new payable and its installments atomically.
	SavePayable(ctx context.Context, payable domain.Payable, installments []domain.Installment) error

	// UpdatePayable updates the mutable fields of an existing payable.
	UpdatePayable(ctx context.Context, payable domain.Payable) error

	// DeletePayable removes a payable and all owned installments and payments
	// in one transaction.
	DeletePayable(ctx context.Context, payableID string) error

	// RecordPayment inserts a payment and, in the same transaction, applies
	// the resulting installment update and payable status change when given.
	RecordPayment(ctx context.Context, payment domain.Payment, paidInstallment *domain.Installment, payableStatus *domain.PayableStatus, now time.Time) error

	// MarkOverduePayables transitions pending payables and installments whose
	// due date passed to overdue. Returns the number of payables affected.
	MarkOverduePayables(ctx context.Context, asOf time.Time, now time.Time) (int64, error)
}

// PayableRepositoryFacade combines all payable-related repository interfaces.
type PayableRepositoryFacade interface {
	PayableReader
	PayableWriter
}
