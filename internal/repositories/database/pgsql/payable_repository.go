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
	"github.com/ldmoraes/contas_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPayableRepository struct {
	BaseRepository
}

// newPgxPayableRepository creates a new repository for payable data.
func newPgxPayableRepository(pool *pgxpool.Pool) portsrepo.PayableRepositoryFacade {
	return &PgxPayableRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PayableRepositoryFacade = (*PgxPayableRepository)(nil)

const payableColumns = `payable_id, description, supplier_name, supplier_tax_id, expense_type, category,
	       total_amount, issue_date, due_date, status, is_recurring, periodicity, notes, invoice_id,
	       created_at, last_updated_at`

const installmentColumns = `installment_id, payable_id, installment_number, due_date, amount, status,
	       payment_date, paid_amount, interest, penalty, discount, notes`

func scanPayable(row pgx.Row) (models.Payable, error) {
	var m models.Payable
	err := row.Scan(
		&m.PayableID,
		&m.Description,
		&m.SupplierName,
		&m.SupplierTaxID,
		&m.ExpenseType,
		&m.Category,
		&m.TotalAmount,
		&m.IssueDate,
		&m.DueDate,
		&m.Status,
		&m.IsRecurring,
		&m.Periodicity,
		&m.Notes,
		&m.InvoiceID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func scanInstallment(row pgx.Row) (models.Installment, error) {
	var m models.Installment
	err := row.Scan(
		&m.InstallmentID,
		&m.PayableID,
		&m.Number,
		&m.DueDate,
		&m.Amount,
		&m.Status,
		&m.PaymentDate,
		&m.PaidAmount,
		&m.Interest,
		&m.Penalty,
		&m.Discount,
		&m.Notes,
	)
	return m, err
}

// SavePayable persists a new payable and its installments in one transaction.
func (r *PgxPayableRepository) SavePayable(ctx context.Context, payable domain.Payable, installments []domain.Installment) error {
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
			return fmt.Errorf("%w: payable %s", translated, modelPayable.PayableID)
		}
		return fmt.Errorf("failed to insert payable %s: %w", modelPayable.PayableID, err)
	}

	batch := &pgx.Batch{}
	installmentQuery := `
		INSERT INTO installments (installment_id, payable_id, installment_number, due_date, amount, status,
			payment_date, paid_amount, interest, penalty, discount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, inst := range installments {
		modelInst := mapping.ToModelInstallment(inst)
		batch.Queue(installmentQuery,
			modelInst.InstallmentID,
			modelInst.PayableID,
			modelInst.Number,
			modelInst.DueDate,
			modelInst.Amount,
			modelInst.Status,
			modelInst.PaymentDate,
			modelInst.PaidAmount,
			modelInst.Interest,
			modelInst.Penalty,
			modelInst.Discount,
			modelInst.Notes,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: installments of payable %s", translated, modelPayable.PayableID)
		}
		return fmt.Errorf("failed to insert installments for payable %s: %w", modelPayable.PayableID, err)
	}

	return r.Commit(ctx, tx)
}

// FindPayableByID retrieves a payable together with its installments and payments.
func (r *PgxPayableRepository) FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM payables
		WHERE payable_id = $1;
	`
	modelPayable, err := scanPayable(r.Pool.QueryRow(ctx, query, payableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payable by id %s: %w", payableID, err)
	}

	domainPayable := mapping.ToDomainPayable(modelPayable)

	installments, err := r.listInstallments(ctx, payableID)
	if err != nil {
		return nil, err
	}
	domainPayable.Installments = installments

	payments, err := r.ListPayments(ctx, payableID)
	if err != nil {
		return nil, err
	}
	domainPayable.Payments = payments

	return &domainPayable, nil
}

func (r *PgxPayableRepository) listInstallments(ctx context.Context, payableID string) ([]domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE payable_id = $1
		ORDER BY installment_number;
	`
	rows, err := r.Pool.Query(ctx, query, payableID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for payable %s: %w", payableID, err)
	}
	defer rows.Close()

	modelInstallments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Installment, error) {
		return scanInstallment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan installments for payable %s: %w", payableID, err)
	}

	installments := make([]domain.Installment, len(modelInstallments))
	for i, m := range modelInstallments {
		installments[i] = mapping.ToDomainInstallment(m)
	}
	return installments, nil
}

// ListPayables retrieves a page of payables ordered by (due_date, payable_id).
func (r *PgxPayableRepository) ListPayables(ctx context.Context, filter portsrepo.PayableFilter) ([]domain.Payable, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + payableColumns + `
		FROM payables
		WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ExpenseType != nil {
		args = append(args, string(*filter.ExpenseType))
		query += fmt.Sprintf(" AND expense_type = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.SupplierName != "" {
		args = append(args, "%"+filter.SupplierName+"%")
		query += fmt.Sprintf(" AND supplier_name ILIKE $%d", len(args))
	}
	if filter.DueAfter != nil {
		args = append(args, *filter.DueAfter)
		query += fmt.Sprintf(" AND due_date >= $%d", len(args))
	}
	if filter.DueBefore != nil {
		args = append(args, *filter.DueBefore)
		query += fmt.Sprintf(" AND due_date <= $%d", len(args))
	}
	if filter.NextToken != "" {
		afterDate, afterID, err := pagination.DecodeToken(filter.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, afterDate, afterID)
		query += fmt.Sprintf(" AND (due_date, payable_id) > ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1) // one extra row to detect a next page
	query += fmt.Sprintf(" ORDER BY due_date, payable_id LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query payables: %w", err)
	}
	defer rows.Close()

	modelPayables, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payable, error) {
		return scanPayable(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan payables: %w", err)
	}

	nextToken := ""
	if len(modelPayables) > limit {
		modelPayables = modelPayables[:limit]
		last := modelPayables[limit-1]
		nextToken = pagination.EncodeToken(last.DueDate, last.PayableID)
	}

	payables := make([]domain.Payable, len(modelPayables))
	for i, m := range modelPayables {
		payables[i] = mapping.ToDomainPayable(m)
	}
	return payables, nextToken, nil
}

// ListPayments retrieves every payment recorded against a payable.
func (r *PgxPayableRepository) ListPayments(ctx context.Context, payableID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, payable_id, installment_id, payment_date, amount_paid, payment_method,
		       receipt_path, notes, created_at
		FROM payments
		WHERE payable_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, payableID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for payable %s: %w", payableID, err)
	}
	defer rows.Close()

	modelPayments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		var m models.Payment
		err := row.Scan(
			&m.PaymentID,
			&m.PayableID,
			&m.InstallmentID,
			&m.PaymentDate,
			&m.AmountPaid,
			&m.Method,
			&m.ReceiptPath,
			&m.Notes,
			&m.CreatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments for payable %s: %w", payableID, err)
	}

	payments := make([]domain.Payment, len(modelPayments))
	for i, m := range modelPayments {
		payments[i] = mapping.ToDomainPayment(m)
	}
	return payments, nil
}

// UpdatePayable updates the mutable fields of an existing payable.
func (r *PgxPayableRepository) UpdatePayable(ctx context.Context, payable domain.Payable) error {
	modelPayable := mapping.ToModelPayable(payable)

	query := `
		UPDATE payables
		SET description = $2, supplier_name = $3, supplier_tax_id = $4, expense_type = $5, category = $6,
		    total_amount = $7, issue_date = $8, due_date = $9, status = $10, is_recurring = $11,
		    periodicity = $12, notes = $13, last_updated_at = $14
		WHERE payable_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
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
		modelPayable.LastUpdatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: payable %s", translated, modelPayable.PayableID)
		}
		return fmt.Errorf("failed to update payable %s: %w", modelPayable.PayableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePayable removes a payable together with its installments and payments.
func (r *PgxPayableRepository) DeletePayable(ctx context.Context, payableID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE payable_id = $1;`, payableID); err != nil {
		return fmt.Errorf("failed to delete payments of payable %s: %w", payableID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE payable_id = $1;`, payableID); err != nil {
		return fmt.Errorf("failed to delete installments of payable %s: %w", payableID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM payables WHERE payable_id = $1;`, payableID)
	if err != nil {
		return fmt.Errorf("failed to delete payable %s: %w", payableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// RecordPayment inserts a payment and applies the installment and payable
// status changes computed by the service layer in the same transaction.
func (r *PgxPayableRepository) RecordPayment(ctx context.Context, payment domain.Payment, paidInstallment *domain.Installment, payableStatus *domain.PayableStatus, now time.Time) error {
	modelPayment := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	paymentQuery := `
		INSERT INTO payments (payment_id, payable_id, installment_id, payment_date, amount_paid,
			payment_method, receipt_path, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		modelPayment.PaymentID,
		modelPayment.PayableID,
		modelPayment.InstallmentID,
		modelPayment.PaymentDate,
		modelPayment.AmountPaid,
		modelPayment.Method,
		modelPayment.ReceiptPath,
		modelPayment.Notes,
		modelPayment.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: payment %s", translated, modelPayment.PaymentID)
		}
		return fmt.Errorf("failed to insert payment %s: %w", modelPayment.PaymentID, err)
	}

	if paidInstallment != nil {
		modelInst := mapping.ToModelInstallment(*paidInstallment)
		instQuery := `
			UPDATE installments
			SET status = $2, payment_date = $3, paid_amount = $4, interest = $5, penalty = $6, discount = $7
			WHERE installment_id = $1;
		`
		tag, err := tx.Exec(ctx, instQuery,
			modelInst.InstallmentID,
			modelInst.Status,
			modelInst.PaymentDate,
			modelInst.PaidAmount,
			modelInst.Interest,
			modelInst.Penalty,
			modelInst.Discount,
		)
		if err != nil {
			return fmt.Errorf("failed to update installment %s: %w", modelInst.InstallmentID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}

	if payableStatus != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE payables SET status = $2, last_updated_at = $3 WHERE payable_id = $1;`,
			modelPayment.PayableID, string(*payableStatus), now,
		)
		if err != nil {
			return fmt.Errorf("failed to update payable %s status: %w", modelPayment.PayableID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}

	return r.Commit(ctx, tx)
}

// MarkOverduePayables transitions pending payables and installments whose due
// date has passed. Returns the number of payables transitioned.
func (r *PgxPayableRepository) MarkOverduePayables(ctx context.Context, asOf time.Time, now time.Time) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		UPDATE installments
		SET status = 'OVERDUE'
		WHERE status = 'PENDING' AND due_date < $1;
	`, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue installments: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE payables
		SET status = 'OVERDUE', last_updated_at = $2
		WHERE status = 'PENDING' AND due_date < $1;
	`, asOf, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue payables: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
