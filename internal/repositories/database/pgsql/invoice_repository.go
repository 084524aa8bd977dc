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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for fiscal documents.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, series, supplier_tax_id, supplier_name, issue_date,
	       due_date, total_amount, discount_amount, net_amount, access_key, raw_content, status, notes,
	       created_at, last_updated_at`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.Number,
		&m.Series,
		&m.SupplierTaxID,
		&m.SupplierName,
		&m.IssueDate,
		&m.DueDate,
		&m.TotalAmount,
		&m.DiscountAmount,
		&m.NetAmount,
		&m.AccessKey,
		&m.RawContent,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveInvoice persists a new invoice with its line items and installments in
// one transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.InvoiceLineItem, installments []domain.InvoiceInstallment) error {
	modelInvoice := mapping.ToModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	invoiceQuery := `
		INSERT INTO invoices (invoice_id, invoice_number, series, supplier_tax_id, supplier_name, issue_date,
			due_date, total_amount, discount_amount, net_amount, access_key, raw_content, status, notes,
			created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		modelInvoice.InvoiceID,
		modelInvoice.Number,
		modelInvoice.Series,
		modelInvoice.SupplierTaxID,
		modelInvoice.SupplierName,
		modelInvoice.IssueDate,
		modelInvoice.DueDate,
		modelInvoice.TotalAmount,
		modelInvoice.DiscountAmount,
		modelInvoice.NetAmount,
		modelInvoice.AccessKey,
		modelInvoice.RawContent,
		modelInvoice.Status,
		modelInvoice.Notes,
		modelInvoice.CreatedAt,
		modelInvoice.LastUpdatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: invoice number %s", translated, modelInvoice.Number)
		}
		return fmt.Errorf("failed to insert invoice %s: %w", modelInvoice.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	lineItemQuery := `
		INSERT INTO invoice_line_items (line_item_id, invoice_id, product_code, description, quantity, unit,
			unit_price, line_total, ncm_code, cfop_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, li := range lineItems {
		m := mapping.ToModelInvoiceLineItem(li)
		batch.Queue(lineItemQuery,
			m.LineItemID,
			m.InvoiceID,
			m.ProductCode,
			m.Description,
			m.Quantity,
			m.Unit,
			m.UnitPrice,
			m.LineTotal,
			m.NCMCode,
			m.CFOPCode,
		)
	}
	installmentQuery := `
		INSERT INTO invoice_installments (installment_id, invoice_id, installment_number, due_date, amount,
			status, payment_date, paid_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, inst := range installments {
		m := mapping.ToModelInvoiceInstallment(inst)
		batch.Queue(installmentQuery,
			m.InstallmentID,
			m.InvoiceID,
			m.Number,
			m.DueDate,
			m.Amount,
			m.Status,
			m.PaymentDate,
			m.PaidAmount,
			m.Notes,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: children of invoice %s", translated, modelInvoice.InvoiceID)
		}
		return fmt.Errorf("failed to insert children of invoice %s: %w", modelInvoice.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its line items and installments.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1;
	`
	return r.findInvoice(ctx, query, invoiceID)
}

// FindInvoiceByNumber retrieves an invoice by its unique fiscal number.
func (r *PgxInvoiceRepository) FindInvoiceByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_number = $1;
	`
	return r.findInvoice(ctx, query, number)
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, query string, arg interface{}) (*domain.Invoice, error) {
	modelInvoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	domainInvoice := mapping.ToDomainInvoice(modelInvoice)

	lineItems, err := r.listLineItems(ctx, domainInvoice.InvoiceID)
	if err != nil {
		return nil, err
	}
	domainInvoice.LineItems = lineItems

	installments, err := r.listInvoiceInstallments(ctx, domainInvoice.InvoiceID)
	if err != nil {
		return nil, err
	}
	domainInvoice.Installments = installments

	return &domainInvoice, nil
}

func (r *PgxInvoiceRepository) listLineItems(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error) {
	query := `
		SELECT line_item_id, invoice_id, product_code, description, quantity, unit, unit_price, line_total,
		       ncm_code, cfop_code
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InvoiceLineItem, error) {
		var m models.InvoiceLineItem
		err := row.Scan(
			&m.LineItemID,
			&m.InvoiceID,
			&m.ProductCode,
			&m.Description,
			&m.Quantity,
			&m.Unit,
			&m.UnitPrice,
			&m.LineTotal,
			&m.NCMCode,
			&m.CFOPCode,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan line items for invoice %s: %w", invoiceID, err)
	}

	items := make([]domain.InvoiceLineItem, len(modelItems))
	for i, m := range modelItems {
		items[i] = mapping.ToDomainInvoiceLineItem(m)
	}
	return items, nil
}

func (r *PgxInvoiceRepository) listInvoiceInstallments(ctx context.Context, invoiceID string) ([]domain.InvoiceInstallment, error) {
	query := `
		SELECT installment_id, invoice_id, installment_number, due_date, amount, status, payment_date,
		       paid_amount, notes
		FROM invoice_installments
		WHERE invoice_id = $1
		ORDER BY installment_number;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	modelInstallments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InvoiceInstallment, error) {
		var m models.InvoiceInstallment
		err := row.Scan(
			&m.InstallmentID,
			&m.InvoiceID,
			&m.Number,
			&m.DueDate,
			&m.Amount,
			&m.Status,
			&m.PaymentDate,
			&m.PaidAmount,
			&m.Notes,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan installments for invoice %s: %w", invoiceID, err)
	}

	installments := make([]domain.InvoiceInstallment, len(modelInstallments))
	for i, m := range modelInstallments {
		installments[i] = mapping.ToDomainInvoiceInstallment(m)
	}
	return installments, nil
}

// ListInvoices retrieves a page of invoices ordered by (issue_date, invoice_id).
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SupplierTaxID != "" {
		args = append(args, filter.SupplierTaxID)
		query += fmt.Sprintf(" AND supplier_tax_id = $%d", len(args))
	}
	if filter.IssuedAfter != nil {
		args = append(args, *filter.IssuedAfter)
		query += fmt.Sprintf(" AND issue_date >= $%d", len(args))
	}
	if filter.IssuedBefore != nil {
		args = append(args, *filter.IssuedBefore)
		query += fmt.Sprintf(" AND issue_date <= $%d", len(args))
	}
	if filter.NextToken != "" {
		afterDate, afterID, err := pagination.DecodeToken(filter.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, afterDate, afterID)
		query += fmt.Sprintf(" AND (issue_date, invoice_id) > ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY issue_date, invoice_id LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	modelInvoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan invoices: %w", err)
	}

	nextToken := ""
	if len(modelInvoices) > limit {
		modelInvoices = modelInvoices[:limit]
		last := modelInvoices[limit-1]
		nextToken = pagination.EncodeToken(last.IssueDate, last.InvoiceID)
	}

	invoices := make([]domain.Invoice, len(modelInvoices))
	for i, m := range modelInvoices {
		invoices[i] = mapping.ToDomainInvoice(m)
	}
	return invoices, nextToken, nil
}

// UpdateInvoice updates the mutable fields of an existing invoice.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		UPDATE invoices
		SET series = $2, supplier_name = $3, due_date = $4, total_amount = $5, discount_amount = $6,
		    net_amount = $7, status = $8, notes = $9, last_updated_at = $10
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.Series,
		m.SupplierName,
		m.DueDate,
		m.TotalAmount,
		m.DiscountAmount,
		m.NetAmount,
		m.Status,
		m.Notes,
		m.LastUpdatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: invoice %s", translated, m.InvoiceID)
		}
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteInvoice removes an invoice together with its line items and installments.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to delete line items of invoice %s: %w", invoiceID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_installments WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to delete installments of invoice %s: %w", invoiceID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: invoice %s is referenced", translated, invoiceID)
		}
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// MarkOverdueInvoices transitions pending invoices and invoice installments
// whose due date has passed. Returns the number of invoices transitioned.
func (r *PgxInvoiceRepository) MarkOverdueInvoices(ctx context.Context, asOf time.Time, now time.Time) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		UPDATE invoice_installments
		SET status = 'OVERDUE'
		WHERE status = 'PENDING' AND due_date < $1;
	`, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoice installments: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET status = 'OVERDUE', last_updated_at = $2
		WHERE status = 'PENDING' AND due_date IS NOT NULL AND due_date < $1;
	`, asOf, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
