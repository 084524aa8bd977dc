package repositories

import (
	"context"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
)

// RecurringExpenseReader defines read operations for recurring-expense templates.
type RecurringExpenseReader interface {
	FindRecurringExpenseByID(ctx context.Context, recurringExpenseID string) (*domain.RecurringExpense, error)

	// ListRecurringExpenses retrieves templates, optionally only active ones.
	ListRecurringExpenses(ctx context.Context, onlyActive bool) ([]domain.RecurringExpense, error)

	// FindDueRecurringExpenses retrieves active templates whose next due date
	// is on or before the given date.
	FindDueRecurringExpenses(ctx context.Context, asOf time.Time) ([]domain.RecurringExpense, error)
}

// RecurringExpenseWriter defines write operations for recurring-expense templates.
type RecurringExpenseWriter interface {
	SaveRecurringExpense(ctx context.Context, expense domain.RecurringExpense) error
	UpdateRecurringExpense(ctx context.Context, expense domain.RecurringExpense) error
	DeleteRecurringExpense(ctx context.Context, recurringExpenseID string) error

	// MaterializePayable inserts the payable generated from a template and
	// advances the template's next due date in the same transaction.
	MaterializePayable(ctx context.Context, templateID string, payable domain.Payable, nextDueDate time.Time) error
}

// RecurringExpenseRepositoryFacade combines the recurring-expense interfaces.
type RecurringExpenseRepositoryFacade interface {
	RecurringExpenseReader
	RecurringExpenseWriter
}
