package services

import (
	"context"
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// RecurringExpenseSvcFacade manages recurring-expense templates and their
// materialization into payables.
type RecurringExpenseSvcFacade interface {
	CreateRecurringExpense(ctx context.Context, req dto.CreateRecurringExpenseRequest) (*domain.RecurringExpense, error)
	GetRecurringExpenseByID(ctx context.Context, recurringExpenseID string) (*domain.RecurringExpense, error)
	ListRecurringExpenses(ctx context.Context, onlyActive bool) ([]domain.RecurringExpense, error)
	UpdateRecurringExpense(ctx context.Context, recurringExpenseID string, req dto.UpdateRecurringExpenseRequest) (*domain.RecurringExpense, error)
	DeleteRecurringExpense(ctx context.Context, recurringExpenseID string) error

	// GenerateDuePayables materializes one payable per active template whose
	// next due date has arrived, advancing each template by its periodicity.
	GenerateDuePayables(ctx context.Context, asOf time.Time) ([]domain.Payable, error)
}
