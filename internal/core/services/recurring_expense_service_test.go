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
	"github.com/ldmoraes/contas_app/internal/core/services"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
	"github.com/ldmoraes/contas_app/internal/dto"
)

// MockRecurringExpenseRepository is a mock type for the RecurringExpenseRepositoryFacade interface
type MockRecurringExpenseRepository struct {
	mock.Mock
}

func (m *MockRecurringExpenseRepository) FindRecurringExpenseByID(ctx context.Context, recurringExpenseID string) (*domain.RecurringExpense, error) {
	args := m.Called(ctx, recurringExpenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringExpense), args.Error(1)
}

func (m *MockRecurringExpenseRepository) ListRecurringExpenses(ctx context.Context, onlyActive bool) ([]domain.RecurringExpense, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringExpense), args.Error(1)
}

func (m *MockRecurringExpenseRepository) FindDueRecurringExpenses(ctx context.Context, asOf time.Time) ([]domain.RecurringExpense, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringExpense), args.Error(1)
}

func (m *MockRecurringExpenseRepository) SaveRecurringExpense(ctx context.Context, expense domain.RecurringExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockRecurringExpenseRepository) UpdateRecurringExpense(ctx context.Context, expense domain.RecurringExpense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockRecurringExpenseRepository) DeleteRecurringExpense(ctx context.Context, recurringExpenseID string) error {
	args := m.Called(ctx, recurringExpenseID)
	return args.Error(0)
}

func (m *MockRecurringExpenseRepository) MaterializePayable(ctx context.Context, templateID string, payable domain.Payable, nextDueDate time.Time) error {
	args := m.Called(ctx, templateID, payable, nextDueDate)
	return args.Error(0)
}

// --- Test Suite Setup ---

type RecurringExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo *MockRecurringExpenseRepository
	service  portssvc.RecurringExpenseSvcFacade
}

func (suite *RecurringExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockRecurringExpenseRepository)
	suite.service = services.NewRecurringExpenseService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *RecurringExpenseServiceTestSuite) TestCreateRecurringExpense_Success() {
	ctx := context.Background()
	req := dto.CreateRecurringExpenseRequest{
		Description:  "Internet",
		SupplierName: "Operadora Net",
		Category:     "Utilities",
		Amount:       decimal.NewFromFloat(299.90),
		DueDay:       5,
		Periodicity:  "MONTHLY",
		NextDueDate:  "2026-04-05",
	}

	suite.mockRepo.On("SaveRecurringExpense", ctx, mock.AnythingOfType("domain.RecurringExpense")).Return(nil).Once()

	expense, err := suite.service.CreateRecurringExpense(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.NotEmpty(expense.RecurringExpenseID)
	suite.True(expense.IsActive)
	suite.Equal(domain.Monthly, expense.Periodicity)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringExpenseServiceTestSuite) TestCreateRecurringExpense_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateRecurringExpenseRequest{
		Description:  "Broken",
		SupplierName: "X",
		Category:     "Misc",
		Amount:       decimal.Zero,
		DueDay:       1,
		Periodicity:  "MONTHLY",
		NextDueDate:  "2026-04-01",
	}

	_, err := suite.service.CreateRecurringExpense(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRecurringExpense")
}

func (suite *RecurringExpenseServiceTestSuite) TestGenerateDuePayables_AdvancesTemplate() {
	ctx := context.Background()
	asOf := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	nextDue := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	tpl := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        "Internet",
		SupplierName:       "Operadora Net",
		Category:           "Utilities",
		Amount:             decimal.NewFromFloat(299.90),
		DueDay:             5,
		Periodicity:        domain.Monthly,
		IsActive:           true,
		NextDueDate:        nextDue,
	}

	suite.mockRepo.On("FindDueRecurringExpenses", ctx, asOf).
		Return([]domain.RecurringExpense{tpl}, nil).Once()

	var materialized domain.Payable
	suite.mockRepo.On("MaterializePayable", ctx, tpl.RecurringExpenseID, mock.AnythingOfType("domain.Payable"), nextDue.AddDate(0, 1, 0)).
		Run(func(args mock.Arguments) {
			materialized = args.Get(2).(domain.Payable)
		}).Return(nil).Once()

	generated, err := suite.service.GenerateDuePayables(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(generated, 1)
	suite.Equal(tpl.Description, materialized.Description)
	suite.True(materialized.TotalAmount.Equal(tpl.Amount))
	suite.Equal(nextDue, materialized.DueDate)
	suite.True(materialized.IsRecurring)
	suite.Equal(domain.PayablePending, materialized.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringExpenseServiceTestSuite) TestGenerateDuePayables_Day31TemplateAcrossFebruary() {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	nextDue := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	tpl := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        "Aluguel",
		SupplierName:       "Imobiliaria Central",
		Category:           "Rent",
		Amount:             decimal.NewFromFloat(4500.00),
		DueDay:             31,
		Periodicity:        domain.Monthly,
		IsActive:           true,
		NextDueDate:        nextDue,
	}

	suite.mockRepo.On("FindDueRecurringExpenses", ctx, asOf).
		Return([]domain.RecurringExpense{tpl}, nil).Once()
	// February 2026 has 28 days; the template must land there, not in March.
	suite.mockRepo.On("MaterializePayable", ctx, tpl.RecurringExpenseID, mock.AnythingOfType("domain.Payable"), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)).
		Return(nil).Once()

	_, err := suite.service.GenerateDuePayables(ctx, asOf)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringExpenseServiceTestSuite) TestGenerateDuePayables_Day31TemplateReturnsTo31AfterFebruary() {
	ctx := context.Background()
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	nextDue := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	tpl := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        "Aluguel",
		SupplierName:       "Imobiliaria Central",
		Category:           "Rent",
		Amount:             decimal.NewFromFloat(4500.00),
		DueDay:             31,
		Periodicity:        domain.Monthly,
		IsActive:           true,
		NextDueDate:        nextDue,
	}

	suite.mockRepo.On("FindDueRecurringExpenses", ctx, asOf).
		Return([]domain.RecurringExpense{tpl}, nil).Once()
	suite.mockRepo.On("MaterializePayable", ctx, tpl.RecurringExpenseID, mock.AnythingOfType("domain.Payable"), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)).
		Return(nil).Once()

	_, err := suite.service.GenerateDuePayables(ctx, asOf)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringExpenseServiceTestSuite) TestGenerateDuePayables_QuarterlyAdvancesThreeMonths() {
	ctx := context.Background()
	asOf := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	nextDue := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	tpl := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        "Accounting retainer",
		SupplierName:       "Contabilidade Silva",
		Category:           "Professional services",
		Amount:             decimal.NewFromFloat(1800.00),
		DueDay:             1,
		Periodicity:        domain.Quarterly,
		IsActive:           true,
		NextDueDate:        nextDue,
	}

	suite.mockRepo.On("FindDueRecurringExpenses", ctx, asOf).
		Return([]domain.RecurringExpense{tpl}, nil).Once()
	suite.mockRepo.On("MaterializePayable", ctx, tpl.RecurringExpenseID, mock.AnythingOfType("domain.Payable"), nextDue.AddDate(0, 3, 0)).
		Return(nil).Once()

	_, err := suite.service.GenerateDuePayables(ctx, asOf)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringExpenseServiceTestSuite) TestGenerateDuePayables_StopsOnFirstFailure() {
	ctx := context.Background()
	asOf := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	first := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        "Internet",
		Amount:             decimal.NewFromFloat(299.90),
		Periodicity:        domain.Monthly,
		IsActive:           true,
		NextDueDate:        asOf,
	}
	second := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        "Water",
		Amount:             decimal.NewFromFloat(120.00),
		Periodicity:        domain.Monthly,
		IsActive:           true,
		NextDueDate:        asOf,
	}

	suite.mockRepo.On("FindDueRecurringExpenses", ctx, asOf).
		Return([]domain.RecurringExpense{first, second}, nil).Once()
	suite.mockRepo.On("MaterializePayable", ctx, first.RecurringExpenseID, mock.Anything, mock.Anything).
		Return(nil).Once()
	suite.mockRepo.On("MaterializePayable", ctx, second.RecurringExpenseID, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: template gone", apperrors.ErrNotFound)).Once()

	generated, err := suite.service.GenerateDuePayables(ctx, asOf)

	suite.Require().Error(err)
	// the first payable was still materialized
	suite.Len(generated, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurringExpenseServiceTestSuite) TestUpdateRecurringExpense_InvalidDueDay() {
	ctx := context.Background()
	tpl := &domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        "Internet",
		Amount:             decimal.NewFromFloat(299.90),
		DueDay:             5,
		Periodicity:        domain.Monthly,
		IsActive:           true,
		NextDueDate:        time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
	}
	badDay := 32

	suite.mockRepo.On("FindRecurringExpenseByID", ctx, tpl.RecurringExpenseID).Return(tpl, nil).Once()

	_, err := suite.service.UpdateRecurringExpense(ctx, tpl.RecurringExpenseID, dto.UpdateRecurringExpenseRequest{DueDay: &badDay})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateRecurringExpense")
}

func TestRecurringExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringExpenseServiceTestSuite))
}
