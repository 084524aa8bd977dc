package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ldmoraes/contas_app/internal/apperrors"
	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/core/services"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// MockChartAccountRepository is a mock type for the ChartAccountRepositoryFacade interface
type MockChartAccountRepository struct {
	mock.Mock
}

func (m *MockChartAccountRepository) FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountRepository) FindChartAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountRepository) ListChartAccounts(ctx context.Context, onlyActive bool, accountType *domain.AccountType) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, onlyActive, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartAccountRepository) UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartAccountRepository) DeactivateChartAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ChartAccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockChartAccountRepository
	service  portssvc.ChartAccountSvcFacade
}

func (suite *ChartAccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockChartAccountRepository)
	suite.service = services.NewChartAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ChartAccountServiceTestSuite) TestCreateChartAccount_Success() {
	ctx := context.Background()
	req := dto.CreateChartAccountRequest{
		Code:  "3.1.1",
		Name:  "Product sales",
		Type:  "REVENUE",
		Group: "GROSS_REVENUE",
	}

	suite.mockRepo.On("SaveChartAccount", ctx, mock.AnythingOfType("domain.ChartAccount")).Return(nil).Once()

	account, err := suite.service.CreateChartAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)
	suite.Equal(domain.Revenue, account.Type)
	suite.Equal(domain.GroupGrossRevenue, account.Group)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartAccountServiceTestSuite) TestCreateChartAccount_InvalidGroup() {
	ctx := context.Background()
	req := dto.CreateChartAccountRequest{
		Code:  "3.1.1",
		Name:  "Product sales",
		Type:  "REVENUE",
		Group: "NOT_A_GROUP",
	}

	_, err := suite.service.CreateChartAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveChartAccount")
}

func (suite *ChartAccountServiceTestSuite) TestCreateChartAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateChartAccountRequest{
		Code:  "3.1.1",
		Name:  "Product sales",
		Type:  "REVENUE",
		Group: "GROSS_REVENUE",
	}

	suite.mockRepo.On("SaveChartAccount", ctx, mock.AnythingOfType("domain.ChartAccount")).
		Return(fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)).Once()

	_, err := suite.service.CreateChartAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ChartAccountServiceTestSuite) TestUpdateChartAccount_KeepsImmutableFields() {
	ctx := context.Background()
	existing := &domain.ChartAccount{
		AccountID: uuid.NewString(),
		Code:      "4.1.1",
		Name:      "Rent expense",
		Type:      domain.Expense,
		Group:     domain.GroupAdministrativeExpenses,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	newName := "Office rent expense"

	suite.mockRepo.On("FindChartAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()
	var updated domain.ChartAccount
	suite.mockRepo.On("UpdateChartAccount", ctx, mock.AnythingOfType("domain.ChartAccount")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.ChartAccount)
		}).Return(nil).Once()

	account, err := suite.service.UpdateChartAccount(ctx, existing.AccountID, dto.UpdateChartAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.Equal("4.1.1", updated.Code)
	suite.Equal(domain.Expense, updated.Type)
	suite.Equal(domain.GroupAdministrativeExpenses, updated.Group)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartAccountServiceTestSuite) TestDeactivateChartAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("DeactivateChartAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeactivateChartAccount(ctx, accountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestChartAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartAccountServiceTestSuite))
}
