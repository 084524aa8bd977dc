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

// MockPayableRepository is a mock type for the PayableRepositoryFacade interface
type MockPayableRepository struct {
	mock.Mock
}

func (m *MockPayableRepository) FindPayableByID(ctx context.Context, payableID string) (*domain.Payable, error) {
	args := m.Called(ctx, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) ListPayables(ctx context.Context, filter portsrepo.PayableFilter) ([]domain.Payable, string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Payable), args.String(1), args.Error(2)
}

func (m *MockPayableRepository) ListPayments(ctx context.Context, payableID string) ([]domain.Payment, error) {
	args := m.Called(ctx, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPayableRepository) SavePayable(ctx context.Context, payable domain.Payable, installments []domain.Installment) error {
	args := m.Called(ctx, payable, installments)
	return args.Error(0)
}

func (m *MockPayableRepository) UpdatePayable(ctx context.Context, payable domain.Payable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockPayableRepository) DeletePayable(ctx context.Context, payableID string) error {
	args := m.Called(ctx, payableID)
	return args.Error(0)
}

func (m *MockPayableRepository) RecordPayment(ctx context.Context, payment domain.Payment, paidInstallment *domain.Installment, payableStatus *domain.PayableStatus, now time.Time) error {
	args := m.Called(ctx, payment, paidInstallment, payableStatus, now)
	return args.Error(0)
}

func (m *MockPayableRepository) MarkOverduePayables(ctx context.Context, asOf time.Time, now time.Time) (int64, error) {
	args := m.Called(ctx, asOf, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---

type PayableServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockPayableRepository
	mockInvoiceRepo *MockInvoiceRepository
	service         portssvc.PayableSvcFacade
}

func (suite *PayableServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPayableRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewPayableService(suite.mockRepo, suite.mockInvoiceRepo)
}

// --- Test Cases ---

func (suite *PayableServiceTestSuite) TestCreatePayable_Success() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		Description:  "Office rent",
		SupplierName: "Imobiliaria Central",
		ExpenseType:  "ADMINISTRATIVE",
		Category:     "Rent",
		TotalAmount:  decimal.NewFromFloat(2500.00),
		IssueDate:    "2026-03-01",
		DueDate:      "2026-03-10",
	}

	suite.mockRepo.On("SavePayable", ctx, mock.AnythingOfType("domain.Payable"), mock.Anything).Return(nil).Once()

	payable, err := suite.service.CreatePayable(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payable)
	suite.NotEmpty(payable.PayableID)
	suite.Equal(domain.PayablePending, payable.Status)
	suite.Equal(domain.ExpenseAdministrative, payable.ExpenseType)
	suite.True(payable.TotalAmount.Equal(decimal.NewFromFloat(2500.00)))
	suite.Empty(payable.Installments)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestCreatePayable_SplitsInstallmentsEvenly() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		Description:      "Machine maintenance",
		SupplierName:     "TecnoService",
		ExpenseType:      "OPERATIONAL",
		Category:         "Maintenance",
		TotalAmount:      decimal.NewFromFloat(100.00),
		IssueDate:        "2026-03-01",
		DueDate:          "2026-03-15",
		InstallmentCount: 3,
	}

	var saved []domain.Installment
	suite.mockRepo.On("SavePayable", ctx, mock.AnythingOfType("domain.Payable"), mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).([]domain.Installment)
		}).Return(nil).Once()

	payable, err := suite.service.CreatePayable(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(saved, 3)
	// 100.00 / 3 leaves the extra cent on the first part
	suite.True(saved[0].Amount.Equal(decimal.NewFromFloat(33.34)))
	suite.True(saved[1].Amount.Equal(decimal.NewFromFloat(33.33)))
	suite.True(saved[2].Amount.Equal(decimal.NewFromFloat(33.33)))
	suite.Equal(1, saved[0].Number)
	suite.Equal(payable.DueDate, saved[0].DueDate)
	suite.Equal(payable.DueDate.AddDate(0, 1, 0), saved[1].DueDate)
	suite.Equal(payable.DueDate.AddDate(0, 2, 0), saved[2].DueDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestCreatePayable_InstallmentSumMismatch() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		Description:  "Supplies",
		SupplierName: "Papelaria Boa",
		ExpenseType:  "OPERATIONAL",
		Category:     "Supplies",
		TotalAmount:  decimal.NewFromFloat(300.00),
		IssueDate:    "2026-03-01",
		DueDate:      "2026-03-10",
		Installments: []dto.CreateInstallmentRequest{
			{Number: 1, DueDate: "2026-03-10", Amount: decimal.NewFromFloat(150.00)},
			{Number: 2, DueDate: "2026-04-10", Amount: decimal.NewFromFloat(100.00)},
		},
	}

	payable, err := suite.service.CreatePayable(ctx, req)

	suite.Require().Error(err)
	suite.Nil(payable)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePayable")
}

func (suite *PayableServiceTestSuite) TestCreatePayable_CountAndExplicitInstallmentsRejected() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		Description:      "Supplies",
		SupplierName:     "Papelaria Boa",
		ExpenseType:      "OPERATIONAL",
		Category:         "Supplies",
		TotalAmount:      decimal.NewFromFloat(300.00),
		IssueDate:        "2026-03-01",
		DueDate:          "2026-03-10",
		InstallmentCount: 2,
		Installments: []dto.CreateInstallmentRequest{
			{Number: 1, DueDate: "2026-03-10", Amount: decimal.NewFromFloat(300.00)},
		},
	}

	_, err := suite.service.CreatePayable(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayableServiceTestSuite) TestCreatePayable_DueBeforeIssueRejected() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		Description:  "Backdated",
		SupplierName: "Fornecedor X",
		ExpenseType:  "OPERATIONAL",
		Category:     "Misc",
		TotalAmount:  decimal.NewFromFloat(50.00),
		IssueDate:    "2026-03-10",
		DueDate:      "2026-03-01",
	}

	_, err := suite.service.CreatePayable(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayableServiceTestSuite) TestCreatePayable_RecurringNeedsPeriodicity() {
	ctx := context.Background()
	req := dto.CreatePayableRequest{
		Description:  "Hosting",
		SupplierName: "Cloud Provider",
		ExpenseType:  "ADMINISTRATIVE",
		Category:     "IT",
		TotalAmount:  decimal.NewFromFloat(200.00),
		IssueDate:    "2026-03-01",
		DueDate:      "2026-03-10",
		IsRecurring:  true,
	}

	_, err := suite.service.CreatePayable(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// twoInstallmentPayable builds a 300.00 payable split into two 150.00
// installments, the first one optionally already paid.
func twoInstallmentPayable(firstPaid bool) *domain.Payable {
	payableID := uuid.NewString()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	p := &domain.Payable{
		PayableID:    payableID,
		Description:  "Raw material",
		SupplierName: "Fornecedor Alfa",
		ExpenseType:  domain.ExpenseOperational,
		Category:     "Materials",
		TotalAmount:  decimal.NewFromFloat(300.00),
		IssueDate:    issue,
		DueDate:      due,
		Status:       domain.PayablePending,
		Installments: []domain.Installment{
			{
				InstallmentID: uuid.NewString(),
				PayableID:     payableID,
				Number:        1,
				DueDate:       due,
				Amount:        decimal.NewFromFloat(150.00),
				Status:        domain.InstallmentPending,
			},
			{
				InstallmentID: uuid.NewString(),
				PayableID:     payableID,
				Number:        2,
				DueDate:       due.AddDate(0, 1, 0),
				Amount:        decimal.NewFromFloat(150.00),
				Status:        domain.InstallmentPending,
			},
		},
	}
	if firstPaid {
		paidAt := due
		p.Installments[0].Status = domain.InstallmentPaid
		p.Installments[0].PaymentDate = &paidAt
		p.Installments[0].PaidAmount = decimal.NewFromFloat(150.00)
	}
	return p
}

func (suite *PayableServiceTestSuite) TestRecordPayment_FirstInstallmentKeepsPayablePending() {
	ctx := context.Background()
	payable := twoInstallmentPayable(false)
	req := dto.RecordPaymentRequest{
		InstallmentID: payable.Installments[0].InstallmentID,
		PaymentDate:   "2026-03-10",
		AmountPaid:    decimal.NewFromFloat(150.00),
		Method:        "PIX",
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()
	suite.mockRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			paidInstallment := args.Get(2).(*domain.Installment)
			suite.Require().NotNil(paidInstallment)
			suite.Equal(domain.InstallmentPaid, paidInstallment.Status)
			// payable not settled yet, no status change
			suite.Nil(args.Get(3))
		}).Return(nil).Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	result, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRecordPayment_LastInstallmentSettlesPayable() {
	ctx := context.Background()
	payable := twoInstallmentPayable(true)
	req := dto.RecordPaymentRequest{
		InstallmentID: payable.Installments[1].InstallmentID,
		PaymentDate:   "2026-04-10",
		AmountPaid:    decimal.NewFromFloat(150.00),
		Method:        "BOLETO",
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()
	suite.mockRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			newStatus := args.Get(3).(*domain.PayableStatus)
			suite.Require().NotNil(newStatus)
			suite.Equal(domain.PayablePaid, *newStatus)
		}).Return(nil).Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRecordPayment_FullAmountWithoutInstallmentsSettles() {
	ctx := context.Background()
	payable := twoInstallmentPayable(false)
	payable.Installments = nil
	req := dto.RecordPaymentRequest{
		PaymentDate: "2026-03-10",
		AmountPaid:  decimal.NewFromFloat(300.00),
		Method:      "BANK_TRANSFER",
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()
	suite.mockRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			suite.Nil(args.Get(2))
			newStatus := args.Get(3).(*domain.PayableStatus)
			suite.Require().NotNil(newStatus)
			suite.Equal(domain.PayablePaid, *newStatus)
		}).Return(nil).Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRecordPayment_UnknownInstallmentRejected() {
	ctx := context.Background()
	payable := twoInstallmentPayable(false)
	req := dto.RecordPaymentRequest{
		InstallmentID: uuid.NewString(),
		PaymentDate:   "2026-03-10",
		AmountPaid:    decimal.NewFromFloat(150.00),
		Method:        "PIX",
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecordPayment")
}

func (suite *PayableServiceTestSuite) TestRecordPayment_AlreadyPaidInstallmentRejected() {
	ctx := context.Background()
	payable := twoInstallmentPayable(true)
	req := dto.RecordPaymentRequest{
		InstallmentID: payable.Installments[0].InstallmentID,
		PaymentDate:   "2026-03-11",
		AmountPaid:    decimal.NewFromFloat(150.00),
		Method:        "PIX",
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayableServiceTestSuite) TestRecordPayment_PartialAmountOnInstallmentRejected() {
	ctx := context.Background()
	payable := twoInstallmentPayable(false)
	req := dto.RecordPaymentRequest{
		InstallmentID: payable.Installments[0].InstallmentID,
		PaymentDate:   "2026-03-10",
		AmountPaid:    decimal.NewFromFloat(10.00),
		Method:        "PIX",
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(domain.InstallmentPending, payable.Installments[0].Status)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecordPayment")
}

func (suite *PayableServiceTestSuite) TestRecordPayment_InstallmentWithChargesAccepted() {
	ctx := context.Background()
	payable := twoInstallmentPayable(false)
	// 150.00 + 3.00 interest + 7.50 penalty - 0.50 discount
	req := dto.RecordPaymentRequest{
		InstallmentID: payable.Installments[0].InstallmentID,
		PaymentDate:   "2026-03-20",
		AmountPaid:    decimal.NewFromFloat(160.00),
		Method:        "BOLETO",
		Interest:      decimal.NewFromFloat(3.00),
		Penalty:       decimal.NewFromFloat(7.50),
		Discount:      decimal.NewFromFloat(0.50),
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()
	suite.mockRepo.On("RecordPayment", ctx, mock.AnythingOfType("domain.Payment"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			paidInstallment := args.Get(2).(*domain.Installment)
			suite.Require().NotNil(paidInstallment)
			suite.Equal(domain.InstallmentPaid, paidInstallment.Status)
			suite.True(paidInstallment.PaidAmount.Equal(decimal.NewFromFloat(160.00)))
		}).Return(nil).Once()
	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestRecordPayment_CancelledPayableRejected() {
	ctx := context.Background()
	payable := twoInstallmentPayable(false)
	payable.Status = domain.PayableCancelled
	req := dto.RecordPaymentRequest{
		PaymentDate: "2026-03-10",
		AmountPaid:  decimal.NewFromFloat(150.00),
		Method:      "CASH",
	}

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.RecordPayment(ctx, payable.PayableID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayableServiceTestSuite) TestUpdatePayable_NotFound() {
	ctx := context.Background()
	payableID := uuid.NewString()
	newDescription := "does not matter"

	suite.mockRepo.On("FindPayableByID", ctx, payableID).
		Return(nil, fmt.Errorf("%w: payable not found", apperrors.ErrNotFound)).Once()

	_, err := suite.service.UpdatePayable(ctx, payableID, dto.UpdatePayableRequest{Description: &newDescription})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePayable")
}

func (suite *PayableServiceTestSuite) TestUpdatePayable_TotalMustMatchInstallments() {
	ctx := context.Background()
	payable := twoInstallmentPayable(false)
	newTotal := decimal.NewFromFloat(400.00)

	suite.mockRepo.On("FindPayableByID", ctx, payable.PayableID).Return(payable, nil).Once()

	_, err := suite.service.UpdatePayable(ctx, payable.PayableID, dto.UpdatePayableRequest{TotalAmount: &newTotal})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayableServiceTestSuite) TestCreatePayableFromInvoice_CopiesScheduleAndNet() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issue := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	invoice := &domain.Invoice{
		InvoiceID:      invoiceID,
		Number:         "12345",
		SupplierTaxID:  "11222333000181",
		SupplierName:   "Distribuidora Beta",
		IssueDate:      issue,
		DueDate:        &due,
		TotalAmount:    decimal.NewFromFloat(1000.00),
		DiscountAmount: decimal.NewFromFloat(100.00),
		NetAmount:      decimal.NewFromFloat(900.00),
		Status:         domain.InvoicePending,
		Installments: []domain.InvoiceInstallment{
			{InstallmentID: uuid.NewString(), InvoiceID: invoiceID, Number: 1, DueDate: due, Amount: decimal.NewFromFloat(450.00), Status: domain.InstallmentPending},
			{InstallmentID: uuid.NewString(), InvoiceID: invoiceID, Number: 2, DueDate: due.AddDate(0, 1, 0), Amount: decimal.NewFromFloat(450.00), Status: domain.InstallmentPending},
		},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()

	var savedPayable domain.Payable
	var savedInstallments []domain.Installment
	suite.mockRepo.On("SavePayable", ctx, mock.AnythingOfType("domain.Payable"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedPayable = args.Get(1).(domain.Payable)
			savedInstallments = args.Get(2).([]domain.Installment)
		}).Return(nil).Once()

	payable, err := suite.service.CreatePayableFromInvoice(ctx, invoiceID, dto.CreatePayableFromInvoiceRequest{
		ExpenseType: "OPERATIONAL",
		Category:    "Materials",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(payable)
	suite.True(savedPayable.TotalAmount.Equal(invoice.NetAmount))
	suite.Equal(invoiceID, savedPayable.InvoiceID)
	suite.Equal("NF 12345 - Distribuidora Beta", savedPayable.Description)
	suite.Require().Len(savedInstallments, 2)
	suite.True(savedInstallments[0].Amount.Equal(decimal.NewFromFloat(450.00)))
	suite.Equal(due, savedInstallments[0].DueDate)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PayableServiceTestSuite) TestSweepOverduePayables() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("MarkOverduePayables", ctx, asOf, mock.AnythingOfType("time.Time")).
		Return(int64(4), nil).Once()

	affected, err := suite.service.SweepOverduePayables(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(4), affected)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPayableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayableServiceTestSuite))
}
