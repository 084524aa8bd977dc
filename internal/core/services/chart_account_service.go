package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ldmoraes/contas_app/internal/apperrors"
	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// chartAccountService manages the chart of accounts behind the DRE.
type chartAccountService struct {
	BaseService
	chartAccountRepo portsrepo.ChartAccountRepositoryFacade
}

// NewChartAccountService creates a new ChartAccountService.
func NewChartAccountService(chartAccountRepo portsrepo.ChartAccountRepositoryFacade) portssvc.ChartAccountSvcFacade {
	return &chartAccountService{
		chartAccountRepo: chartAccountRepo,
	}
}

// Ensure chartAccountService implements the facade interface
var _ portssvc.ChartAccountSvcFacade = (*chartAccountService)(nil)

// CreateChartAccount validates and persists a new chart account.
func (s *chartAccountService) CreateChartAccount(ctx context.Context, req dto.CreateChartAccountRequest) (*domain.ChartAccount, error) {
	accountType := domain.AccountType(req.Type)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.Type)
	}
	group := domain.AccountGroup(req.Group)
	if !group.IsValid() {
		return nil, fmt.Errorf("%w: invalid account group %q", apperrors.ErrValidation, req.Group)
	}

	account := domain.ChartAccount{
		AccountID: uuid.NewString(),
		Code:      req.Code,
		Name:      req.Name,
		Type:      accountType,
		Group:     group,
		Subgroup:  req.Subgroup,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.chartAccountRepo.SaveChartAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "failed to save chart account", slog.String("code", account.Code))
		return nil, err
	}
	return &account, nil
}

// GetChartAccountByID retrieves a chart account by its ID.
func (s *chartAccountService) GetChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	return s.chartAccountRepo.FindChartAccountByID(ctx, accountID)
}

// ListChartAccounts retrieves chart accounts ordered by code.
func (s *chartAccountService) ListChartAccounts(ctx context.Context, onlyActive bool, accountType *domain.AccountType) ([]domain.ChartAccount, error) {
	return s.chartAccountRepo.ListChartAccounts(ctx, onlyActive, accountType)
}

// UpdateChartAccount applies a partial change set to a chart account. Code,
// type and group are immutable so historical postings stay on their line.
func (s *chartAccountService) UpdateChartAccount(ctx context.Context, accountID string, req dto.UpdateChartAccountRequest) (*domain.ChartAccount, error) {
	account, err := s.chartAccountRepo.FindChartAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Subgroup != nil {
		account.Subgroup = *req.Subgroup
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := s.chartAccountRepo.UpdateChartAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update chart account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateChartAccount marks an account inactive, keeping its posting history.
func (s *chartAccountService) DeactivateChartAccount(ctx context.Context, accountID string) error {
	if err := s.chartAccountRepo.DeactivateChartAccount(ctx, accountID); err != nil {
		return err
	}
	s.LogInfo(ctx, "chart account deactivated", slog.String("account_id", accountID))
	return nil
}
