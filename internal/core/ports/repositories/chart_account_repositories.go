package repositories

import (
	"context"

	"github.com/ldmoraes/contas_app/internal/core/domain"
)

// ChartAccountReader defines read operations for the chart of accounts.
type ChartAccountReader interface {
	FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error)
	FindChartAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error)

	// ListChartAccounts retrieves accounts ordered by code, optionally only
	// active ones and optionally restricted to one type.
	ListChartAccounts(ctx context.Context, onlyActive bool, accountType *domain.AccountType) ([]domain.ChartAccount, error)
}

// ChartAccountWriter defines write operations for the chart of accounts.
type ChartAccountWriter interface {
	SaveChartAccount(ctx context.Context, account domain.ChartAccount) error
	UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error

	// DeactivateChartAccount marks an account inactive; postings referencing
	// it are kept.
	DeactivateChartAccount(ctx context.Context, accountID string) error
}

// ChartAccountRepositoryFacade combines the chart-of-accounts interfaces.
type ChartAccountRepositoryFacade interface {
	ChartAccountReader
	ChartAccountWriter
}
