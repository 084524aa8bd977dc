package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ldmoraes/contas_app/internal/apperrors"
	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	"github.com/ldmoraes/contas_app/internal/models"
	"github.com/ldmoraes/contas_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxChartAccountRepository struct {
	BaseRepository
}

// newPgxChartAccountRepository creates a new repository for the chart of accounts.
func newPgxChartAccountRepository(pool *pgxpool.Pool) portsrepo.ChartAccountRepositoryFacade {
	return &PgxChartAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ChartAccountRepositoryFacade = (*PgxChartAccountRepository)(nil)

const chartAccountColumns = `account_id, code, name, account_type, account_group, subgroup, is_active, created_at`

func scanChartAccount(row pgx.Row) (models.ChartAccount, error) {
	var m models.ChartAccount
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Type,
		&m.Group,
		&m.Subgroup,
		&m.IsActive,
		&m.CreatedAt,
	)
	return m, err
}

// SaveChartAccount persists a new chart account. The code must be unique.
func (r *PgxChartAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)

	query := `
		INSERT INTO chart_accounts (account_id, code, name, account_type, account_group, subgroup, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Type,
		m.Group,
		m.Subgroup,
		m.IsActive,
		m.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); translated != err {
			return fmt.Errorf("%w: chart account code %s", translated, m.Code)
		}
		return fmt.Errorf("failed to insert chart account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindChartAccountByID retrieves a chart account by its ID.
func (r *PgxChartAccountRepository) FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	query := `
		SELECT ` + chartAccountColumns + `
		FROM chart_accounts
		WHERE account_id = $1;
	`
	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chart account by id %s: %w", accountID, err)
	}

	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

// FindChartAccountByCode retrieves a chart account by its unique code.
func (r *PgxChartAccountRepository) FindChartAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	query := `
		SELECT ` + chartAccountColumns + `
		FROM chart_accounts
		WHERE code = $1;
	`
	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chart account by code %s: %w", code, err)
	}

	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

// ListChartAccounts retrieves chart accounts ordered by code.
func (r *PgxChartAccountRepository) ListChartAccounts(ctx context.Context, onlyActive bool, accountType *domain.AccountType) ([]domain.ChartAccount, error) {
	query := `
		SELECT ` + chartAccountColumns + `
		FROM chart_accounts
		WHERE 1=1`
	args := []interface{}{}

	if onlyActive {
		query += " AND is_active = TRUE"
	}
	if accountType != nil {
		args = append(args, string(*accountType))
		query += fmt.Sprintf(" AND account_type = $%d", len(args))
	}
	query += " ORDER BY code;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart accounts: %w", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ChartAccount, error) {
		return scanChartAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan chart accounts: %w", err)
	}

	accounts := make([]domain.ChartAccount, len(modelAccounts))
	for i, m := range modelAccounts {
		accounts[i] = mapping.ToDomainChartAccount(m)
	}
	return accounts, nil
}

// UpdateChartAccount updates the mutable fields of an existing chart account.
// Code, type and group are immutable.
func (r *PgxChartAccountRepository) UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)

	query := `
		UPDATE chart_accounts
		SET name = $2, subgroup = $3, is_active = $4
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.Subgroup, m.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update chart account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateChartAccount marks an account inactive. Ledger entries referencing
// it remain valid history.
func (r *PgxChartAccountRepository) DeactivateChartAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE chart_accounts SET is_active = FALSE WHERE account_id = $1;`,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate chart account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
