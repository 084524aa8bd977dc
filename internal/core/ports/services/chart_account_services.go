package services

import (
	"context"

	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// ChartAccountSvcFacade manages the chart of accounts used for DRE postings.
type ChartAccountSvcFacade interface {
	CreateChartAccount(ctx context.Context, req dto.CreateChartAccountRequest) (*domain.ChartAccount, error)
	GetChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error)
	ListChartAccounts(ctx context.Context, onlyActive bool, accountType *domain.AccountType) ([]domain.ChartAccount, error)
	UpdateChartAccount(ctx context.Context, accountID string, req dto.UpdateChartAccountRequest) (*domain.ChartAccount, error)
	DeactivateChartAccount(ctx context.Context, accountID string) error
}
