package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ldmoraes/contas_app/internal/apperrors"
	"github.com/ldmoraes/contas_app/internal/core/domain"
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	"github.com/ldmoraes/contas_app/internal/core/services"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// MockDRERepository is a mock type for the DRERepositoryFacade interface
type MockDRERepository struct {
	mock.Mock
}

func (m *MockDRERepository) FindLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockDRERepository) ListLedgerEntries(ctx context.Context, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.String(1), args.Error(2)
}

func (m *MockDRERepository) SumGroupTotals(ctx context.Context, year int, month int) (domain.GroupTotals, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.GroupTotals), args.Error(1)
}

func (m *MockDRERepository) SaveLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDRERepository) DeleteLedgerEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockDRERepository) FindMonthlySnapshot(ctx context.Context, year int, month int) (*domain.MonthlySnapshot, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySnapshot), args.Error(1)
}

func (m *MockDRERepository) ListMonthlySnapshots(ctx context.Context, year int) ([]domain.MonthlySnapshot, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlySnapshot), args.Error(1)
}

func (m *MockDRERepository) SaveMonthlySnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockDRERepository) UpsertMonthlySnapshot(ctx context.Context, snapshot domain.MonthlySnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Test Suite Setup ---

type DREServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockDRERepository
	mockChartRepo *MockChartAccountRepository
	service       portssvc.DRESvcFacade
}

func (suite *DREServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDRERepository)
	suite.mockChartRepo = new(MockChartAccountRepository)
	suite.service = services.NewDREService(suite.mockRepo, suite.mockChartRepo)
}

func activeChartAccount() *domain.ChartAccount {
	return &domain.ChartAccount{
		AccountID: uuid.NewString(),
		Code:      "3.1.1",
		Name:      "Product sales",
		Type:      domain.Revenue,
		Group:     domain.GroupGrossRevenue,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// --- Test Cases ---

func (suite *DREServiceTestSuite) TestPostLedgerEntry_Success() {
	ctx := context.Background()
	account := activeChartAccount()
	req := dto.CreateLedgerEntryRequest{
		AccountID:   account.AccountID,
		EntryDate:   "2026-03-15",
		Amount:      decimal.NewFromFloat(5000.00),
		Description: "March product sales",
	}

	suite.mockChartRepo.On("FindChartAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("SaveLedgerEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.PostLedgerEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(account.AccountID, entry.AccountID)
	suite.True(entry.Amount.Equal(decimal.NewFromFloat(5000.00)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *DREServiceTestSuite) TestPostLedgerEntry_MissingAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateLedgerEntryRequest{
		AccountID:   accountID,
		EntryDate:   "2026-03-15",
		Amount:      decimal.NewFromFloat(100.00),
		Description: "Orphan posting",
	}

	suite.mockChartRepo.On("FindChartAccountByID", ctx, accountID).
		Return(nil, fmt.Errorf("%w: chart account not found", apperrors.ErrNotFound)).Once()

	_, err := suite.service.PostLedgerEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReferentialIntegrity)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedgerEntry")
}

func (suite *DREServiceTestSuite) TestPostLedgerEntry_InactiveAccount() {
	ctx := context.Background()
	account := activeChartAccount()
	account.IsActive = false
	req := dto.CreateLedgerEntryRequest{
		AccountID:   account.AccountID,
		EntryDate:   "2026-03-15",
		Amount:      decimal.NewFromFloat(100.00),
		Description: "Posting to retired line",
	}

	suite.mockChartRepo.On("FindChartAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.PostLedgerEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedgerEntry")
}

func (suite *DREServiceTestSuite) TestPostLedgerEntry_ZeroAmount() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{
		AccountID:   uuid.NewString(),
		EntryDate:   "2026-03-15",
		Amount:      decimal.Zero,
		Description: "Nothing",
	}

	_, err := suite.service.PostLedgerEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DREServiceTestSuite) TestRecomputeSnapshot_DerivesIncomeStatement() {
	ctx := context.Background()
	totals := domain.GroupTotals{
		domain.GroupGrossRevenue:           decimal.NewFromFloat(10000.00),
		domain.GroupRevenueDeductions:      decimal.NewFromFloat(1000.00),
		domain.GroupCostOfSales:            decimal.NewFromFloat(4000.00),
		domain.GroupAdministrativeExpenses: decimal.NewFromFloat(2000.00),
		domain.GroupFinancialResult:        decimal.NewFromFloat(-150.00),
		domain.GroupTaxProvision:           decimal.NewFromFloat(500.00),
	}

	suite.mockRepo.On("SumGroupTotals", ctx, 2026, 3).Return(totals, nil).Once()

	var upserted domain.MonthlySnapshot
	suite.mockRepo.On("UpsertMonthlySnapshot", ctx, mock.AnythingOfType("domain.MonthlySnapshot")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(domain.MonthlySnapshot)
		}).Return(nil).Once()
	suite.mockRepo.On("FindMonthlySnapshot", ctx, 2026, 3).
		Return(&upserted, nil).Once()

	snapshot, err := suite.service.RecomputeSnapshot(ctx, 2026, 3)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.Equal(2026, upserted.Year)
	suite.Equal(3, upserted.Month)
	suite.True(upserted.NetRevenue.Equal(decimal.NewFromFloat(9000.00)))
	suite.True(upserted.GrossProfit.Equal(decimal.NewFromFloat(5000.00)))
	// 5000 - 2000 admin - 150 financial
	suite.True(upserted.PreTaxProfit.Equal(decimal.NewFromFloat(2850.00)))
	suite.True(upserted.NetProfit.Equal(decimal.NewFromFloat(2350.00)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DREServiceTestSuite) TestRecomputeSnapshot_EmptyMonthIsAllZeros() {
	ctx := context.Background()

	suite.mockRepo.On("SumGroupTotals", ctx, 2026, 1).Return(domain.GroupTotals{}, nil).Once()

	var upserted domain.MonthlySnapshot
	suite.mockRepo.On("UpsertMonthlySnapshot", ctx, mock.AnythingOfType("domain.MonthlySnapshot")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(domain.MonthlySnapshot)
		}).Return(nil).Once()
	suite.mockRepo.On("FindMonthlySnapshot", ctx, 2026, 1).
		Return(&upserted, nil).Once()

	snapshot, err := suite.service.RecomputeSnapshot(ctx, 2026, 1)

	suite.Require().NoError(err)
	suite.True(snapshot.GrossRevenue.IsZero())
	suite.True(snapshot.NetProfit.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DREServiceTestSuite) TestRecomputeSnapshot_InvalidMonth() {
	ctx := context.Background()

	_, err := suite.service.RecomputeSnapshot(ctx, 2026, 13)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SumGroupTotals")
}

func (suite *DREServiceTestSuite) TestGetSnapshot_NotComputedYet() {
	ctx := context.Background()

	suite.mockRepo.On("FindMonthlySnapshot", ctx, 2026, 2).
		Return(nil, fmt.Errorf("%w: no snapshot for 2026-02", apperrors.ErrNotFound)).Once()

	_, err := suite.service.GetSnapshot(ctx, 2026, 2)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDREServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DREServiceTestSuite))
}
