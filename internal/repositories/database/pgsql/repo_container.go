package pgsql

import (
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	payableRepo := newPgxPayableRepository(dbPool)
	recurringExpenseRepo := newPgxRecurringExpenseRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	chartAccountRepo := newPgxChartAccountRepository(dbPool)
	dreRepo := newPgxDRERepository(dbPool)

	return portsrepo.RepositoryProvider{
		PayableRepo:          payableRepo,
		RecurringExpenseRepo: recurringExpenseRepo,
		InvoiceRepo:          invoiceRepo,
		ChartAccountRepo:     chartAccountRepo,
		DRERepo:              dreRepo,
	}
}
