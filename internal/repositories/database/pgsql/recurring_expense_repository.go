package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ldmoraes/contas_app/internal/apperrors"
	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	"github.com/ldmoraes/contas_app/internal/models"
	"github.com/ldmoraes/contas_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRecurringExpenseRepository struct {
	BaseRepository
}

// newPgxRecurringExpenseRepository creates a new repository for recurring-expense templates.
func newPgxRecurringExpenseRepository(pool *pgxpool.Pool) portsrepo.RecurringExpenseRepositoryFacade {
	return &PgxRecurringExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RecurringExpenseRepositoryFacade = (*PgxRecurringExpenseRepository)(nil)

const recurringExpenseColumns = `recurring_expense_id, description, supplier_name, category, amount,
	       due_day, periodicity, is_active, next_due_date, created_at`

func scanRecurringExpense(row pgx.Row) (models.RecurringExpense, error) {
	var m models.RecurringExpense
	err := row.Scan(
		&m.RecurringExpenseID,
		&m.Description,
		&m.SupplierName,
		&m.Category,
		&m.Amount,
		&m.DueDay,
		&m.Periodicity,
		&m.IsActive,
		&m.NextDueDate,
		&m.CreatedAt,
	)
	return m, err
}

// SaveRecurringExpense persists a new template.
func (r *PgxRecurringExpenseRepository) SaveRecurringExpense(ctx context.Context, expense domain.RecurringExpense) error {
	m := mapping.ToModelRecurringExpense(expense)

	query := `
		INSERT INTO recurring_expenses (recurring_expense_id, description, supplier_name, category, amount,
			due_day, periodicity, is_active, next_due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RecurringExpenseID,
		m.Description,
		m.SupplierName,
		m.Category,
		m.Amount,
		m.DueDay,
		m.Periodicity,
		m.IsActive,
		m.NextDueDate,
		m.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: recurring expense %s", translated, m.RecurringExpenseID)
		}
		return fmt.Errorf("failed to insert recurring expense %s: %w", m.RecurringExpenseID, err)
	}
	return nil
}

// FindRecurringExpenseByID retrieves a template by its ID.
func (r *PgxRecurringExpenseRepository) FindRecurringExpenseByID(ctx context.Context, recurringExpenseID string) (*domain.RecurringExpense, error) {
	query := `
		SELECT ` + recurringExpenseColumns + `
		FROM recurring_expenses
		WHERE recurring_expense_id = $1;
	`
	m, err := scanRecurringExpense(r.Pool.QueryRow(ctx, query, recurringExpenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring expense by id %s: %w", recurringExpenseID, err)
	}

	expense := mapping.ToDomainRecurringExpense(m)
	return &expense, nil
}

// ListRecurringExpenses retrieves templates ordered by description.
func (r *PgxRecurringExpenseRepository) ListRecurringExpenses(ctx context.Context, onlyActive bool) ([]domain.RecurringExpense, error) {
	query := `
		SELECT ` + recurringExpenseColumns + `
		FROM recurring_expenses`
	if onlyActive {
		query += `
		WHERE is_active = TRUE`
	}
	query += `
		ORDER BY description;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring expenses: %w", err)
	}
	defer rows.Close()

	return collectRecurringExpenses(rows)
}

// FindDueRecurringExpenses retrieves active templates due on or before the given date.
func (r *PgxRecurringExpenseRepository) FindDueRecurringExpenses(ctx context.Context, asOf time.Time) ([]domain.RecurringExpense, error) {
	query := `
		SELECT ` + recurringExpenseColumns + `
		FROM recurring_expenses
		WHERE is_active = TRUE AND next_due_date <= $1
		ORDER BY next_due_date, recurring_expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query due recurring expenses: %w", err)
	}
	defer rows.Close()

	return collectRecurringExpenses(rows)
}

func collectRecurringExpenses(rows pgx.Rows) ([]domain.RecurringExpense, error) {
	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RecurringExpense, error) {
		return scanRecurringExpense(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring expenses: %w", err)
	}

	expenses := make([]domain.RecurringExpense, len(modelExpenses))
	for i, m := range modelExpenses {
		expenses[i] = mapping.ToDomainRecurringExpense(m)
	}
	return expenses, nil
}

// UpdateRecurringExpense updates the mutable fields of an existing template.
func (r *PgxRecurringExpenseRepository) UpdateRecurringExpense(ctx context.Context, expense domain.RecurringExpense) error {
	m := mapping.ToModelRecurringExpense(expense)

	query := `
		UPDATE recurring_expenses
		SET description = $2, supplier_name = $3, category = $4, amount = $5, due_day = $6,
		    periodicity = $7, is_active = $8, next_due_date = $9
		WHERE recurring_expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RecurringExpenseID,
		m.Description,
		m.SupplierName,
		m.Category,
		m.Amount,
		m.DueDay,
		m.Periodicity,
		m.IsActive,
		m.NextDueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring expense %s: %w", m.RecurringExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRecurringExpense removes a template. Payables already generated from
// it are kept.
func (r *PgxRecurringExpenseRepository) DeleteRecurringExpense(ctx context.Context, recurringExpenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_expenses WHERE recurring_expense_id = $1;`, recurringExpenseID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring expense %s: %w", recurringExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MaterializePayable inserts the payable generated from a template and
// advances the template's next due date in the same transaction.
func (r *PgxRecurringExpenseRepository) MaterializePayable(ctx context.Context, templateID string, payable domain.Payable, nextDueDate time.Time) error {
	modelPayable := mapping.ToModelPayable(payable)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	payableQuery := `
		INSERT INTO payables (payable_id, description, supplier_name, supplier_tax_id, expense_type, category,
			total_amount, issue_date, due_date, status, is_recurring, periodicity, notes, invoice_id,
			created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, payableQuery,
		modelPayable.PayableID,
		modelPayable.Description,
		modelPayable.SupplierName,
		modelPayable.SupplierTaxID,
		modelPayable.ExpenseType,
		modelPayable.Category,
		modelPayable.TotalAmount,
		modelPayable.IssueDate,
		modelPayable.DueDate,
		modelPayable.Status,
		modelPayable.IsRecurring,
		modelPayable.Periodicity,
		modelPayable.Notes,
		modelPayable.InvoiceID,
		modelPayable.CreatedAt,
		modelPayable.LastUpdatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: generated payable %s", translated, modelPayable.PayableID)
		}
		return fmt.Errorf("failed to insert generated payable %s: %w", modelPayable.PayableID, err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE recurring_expenses SET next_due_date = $2 WHERE recurring_expense_id = $1;`,
		templateID, nextDueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to advance recurring expense %s: %w", templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
