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
	"github.com/shopspring/decimal"
)

type PgxDRERepository struct {
	BaseRepository
}

// newPgxDRERepository creates a new repository for ledger entries and
// monthly income-statement snapshots.
func newPgxDRERepository(pool *pgxpool.Pool) portsrepo.DRERepositoryFacade {
	return &PgxDRERepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DRERepositoryFacade = (*PgxDRERepository)(nil)

const ledgerEntryColumns = `entry_id, account_id, entry_date, amount, description, document_ref,
	       payable_id, invoice_id, created_at`

const snapshotColumns = `snapshot_id, year, month, gross_revenue, revenue_deductions, net_revenue,
	       cost_of_sales, gross_profit, operating_expenses, administrative_expenses, selling_expenses,
	       other_revenue, other_expenses, financial_result, pre_tax_profit, tax_provision, net_profit,
	       created_at, last_updated_at`

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.EntryDate,
		&m.Amount,
		&m.Description,
		&m.DocumentRef,
		&m.PayableID,
		&m.InvoiceID,
		&m.CreatedAt,
	)
	return m, err
}

func scanSnapshot(row pgx.Row) (models.MonthlySnapshot, error) {
	var m models.MonthlySnapshot
	err := row.Scan(
		&m.SnapshotID,
		&m.Year,
		&m.Month,
		&m.GrossRevenue,
		&m.RevenueDeductions,
		&m.NetRevenue,
		&m.CostOfSales,
		&m.GrossProfit,
		&m.OperatingExpenses,
		&m.AdministrativeExpenses,
		&m.SellingExpenses,
		&m.OtherRevenue,
		&m.OtherExpenses,
		&m.FinancialResult,
		&m.PreTaxProfit,
		&m.TaxProvision,
		&m.NetProfit,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveLedgerEntry persists a new posting. The referenced chart account must exist.
func (r *PgxDRERepository) SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)

	query := `
		INSERT INTO ledger_entries (entry_id, account_id, entry_date, amount, description, document_ref,
			payable_id, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.AccountID,
		m.EntryDate,
		m.Amount,
		m.Description,
		m.DocumentRef,
		m.PayableID,
		m.InvoiceID,
		m.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: ledger entry %s", translated, m.EntryID)
		}
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindLedgerEntryByID retrieves a posting by its ID.
func (r *PgxDRERepository) FindLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE entry_id = $1;
	`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry by id %s: %w", entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListLedgerEntries retrieves a page of postings ordered by (entry_date, entry_id).
func (r *PgxDRERepository) ListLedgerEntries(ctx context.Context, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE 1=1`
	args := []interface{}{}

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	if filter.NextToken != "" {
		afterDate, afterID, err := pagination.DecodeToken(filter.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, afterDate, afterID)
		query += fmt.Sprintf(" AND (entry_date, entry_id) > ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY entry_date, entry_id LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerEntry, error) {
		return scanLedgerEntry(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan ledger entries: %w", err)
	}

	nextToken := ""
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[limit-1]
		nextToken = pagination.EncodeToken(last.EntryDate, last.EntryID)
	}

	entries := make([]domain.LedgerEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainLedgerEntry(m)
	}
	return entries, nextToken, nil
}

// DeleteLedgerEntry removes a posting.
func (r *PgxDRERepository) DeleteLedgerEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumGroupTotals sums posting amounts per chart-account group for the month.
func (r *PgxDRERepository) SumGroupTotals(ctx context.Context, year int, month int) (domain.GroupTotals, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	query := `
		SELECT ca.account_group, COALESCE(SUM(le.amount), 0)
		FROM ledger_entries le
		JOIN chart_accounts ca ON ca.account_id = le.account_id
		WHERE le.entry_date >= $1 AND le.entry_date < $2
		GROUP BY ca.account_group;
	`
	rows, err := r.Pool.Query(ctx, query, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum group totals for %04d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	totals := domain.GroupTotals{}
	for rows.Next() {
		var group string
		var sum decimal.Decimal
		if err := rows.Scan(&group, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan group total: %w", err)
		}
		totals[domain.AccountGroup(group)] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read group totals: %w", err)
	}
	return totals, nil
}

// SaveMonthlySnapshot inserts a snapshot, failing when the month already has one.
func (r *PgxDRERepository) SaveMonthlySnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error {
	m := mapping.ToModelMonthlySnapshot(snapshot)

	query := `
		INSERT INTO monthly_snapshots (snapshot_id, year, month, gross_revenue, revenue_deductions,
			net_revenue, cost_of_sales, gross_profit, operating_expenses, administrative_expenses,
			selling_expenses, other_revenue, other_expenses, financial_result, pre_tax_profit,
			tax_provision, net_profit, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query, snapshotArgs(m)...)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: snapshot for %04d-%02d", translated, m.Year, m.Month)
		}
		return fmt.Errorf("failed to insert snapshot for %04d-%02d: %w", m.Year, m.Month, err)
	}
	return nil
}

// UpsertMonthlySnapshot inserts or, when the month already has a snapshot,
// replaces the computed columns in place.
func (r *PgxDRERepository) UpsertMonthlySnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error {
	m := mapping.ToModelMonthlySnapshot(snapshot)

	query := `
		INSERT INTO monthly_snapshots (snapshot_id, year, month, gross_revenue, revenue_deductions,
			net_revenue, cost_of_sales, gross_profit, operating_expenses, administrative_expenses,
			selling_expenses, other_revenue, other_expenses, financial_result, pre_tax_profit,
			tax_provision, net_profit, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (year, month) DO UPDATE SET
			gross_revenue = EXCLUDED.gross_revenue,
			revenue_deductions = EXCLUDED.revenue_deductions,
			net_revenue = EXCLUDED.net_revenue,
			cost_of_sales = EXCLUDED.cost_of_sales,
			gross_profit = EXCLUDED.gross_profit,
			operating_expenses = EXCLUDED.operating_expenses,
			administrative_expenses = EXCLUDED.administrative_expenses,
			selling_expenses = EXCLUDED.selling_expenses,
			other_revenue = EXCLUDED.other_revenue,
			other_expenses = EXCLUDED.other_expenses,
			financial_result = EXCLUDED.financial_result,
			pre_tax_profit = EXCLUDED.pre_tax_profit,
			tax_provision = EXCLUDED.tax_provision,
			net_profit = EXCLUDED.net_profit,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query, snapshotArgs(m)...)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for %04d-%02d: %w", m.Year, m.Month, err)
	}
	return nil
}

func snapshotArgs(m models.MonthlySnapshot) []interface{} {
	return []interface{}{
		m.SnapshotID,
		m.Year,
		m.Month,
		m.GrossRevenue,
		m.RevenueDeductions,
		m.NetRevenue,
		m.CostOfSales,
		m.GrossProfit,
		m.OperatingExpenses,
		m.AdministrativeExpenses,
		m.SellingExpenses,
		m.OtherRevenue,
		m.OtherExpenses,
		m.FinancialResult,
		m.PreTaxProfit,
		m.TaxProvision,
		m.NetProfit,
		m.CreatedAt,
		m.LastUpdatedAt,
	}
}

// FindMonthlySnapshot retrieves the snapshot for one month.
func (r *PgxDRERepository) FindMonthlySnapshot(ctx context.Context, year int, month int) (*domain.MonthlySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM monthly_snapshots
		WHERE year = $1 AND month = $2;
	`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot for %04d-%02d: %w", year, month, err)
	}

	snapshot := mapping.ToDomainMonthlySnapshot(m)
	return &snapshot, nil
}

// ListMonthlySnapshots retrieves every snapshot of a year ordered by month.
func (r *PgxDRERepository) ListMonthlySnapshots(ctx context.Context, year int) ([]domain.MonthlySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM monthly_snapshots
		WHERE year = $1
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for year %d: %w", year, err)
	}
	defer rows.Close()

	modelSnapshots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MonthlySnapshot, error) {
		return scanSnapshot(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshots for year %d: %w", year, err)
	}

	snapshots := make([]domain.MonthlySnapshot, len(modelSnapshots))
	for i, m := range modelSnapshots {
		snapshots[i] = mapping.ToDomainMonthlySnapshot(m)
	}
	return snapshots, nil
}
