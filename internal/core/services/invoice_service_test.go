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

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.String(1), args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lineItems []domain.InvoiceLineItem, installments []domain.InvoiceInstallment) error {
	args := m.Called(ctx, invoice, lineItems, installments)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkOverdueInvoices(ctx context.Context, asOf time.Time, now time.Time) (int64, error) {
	args := m.Called(ctx, asOf, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInvoiceRepository
	service  portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.service = services.NewInvoiceService(suite.mockRepo)
}

func validInvoiceRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Number:         "98765",
		Series:         "1",
		SupplierTaxID:  "11222333000181",
		SupplierName:   "Distribuidora Beta",
		IssueDate:      "2026-03-01",
		DueDate:        "2026-03-31",
		TotalAmount:    decimal.NewFromFloat(1000.00),
		DiscountAmount: decimal.NewFromFloat(100.00),
		LineItems: []dto.CreateInvoiceLineItemRequest{
			{
				Description: "Widget A",
				Quantity:    decimal.NewFromInt(10),
				Unit:        "UN",
				UnitPrice:   decimal.NewFromFloat(60.00),
				LineTotal:   decimal.NewFromFloat(600.00),
			},
			{
				Description: "Widget B",
				Quantity:    decimal.NewFromInt(4),
				Unit:        "UN",
				UnitPrice:   decimal.NewFromFloat(100.00),
				LineTotal:   decimal.NewFromFloat(400.00),
			},
		},
		Installments: []dto.CreateInvoiceInstallmentRequest{
			{Number: 1, DueDate: "2026-03-31", Amount: decimal.NewFromFloat(450.00)},
			{Number: 2, DueDate: "2026-04-30", Amount: decimal.NewFromFloat(450.00)},
		},
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := validInvoiceRequest()

	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.Anything, mock.Anything).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.NotEmpty(invoice.InvoiceID)
	suite.Equal(domain.InvoicePending, invoice.Status)
	suite.True(invoice.NetAmount.Equal(decimal.NewFromFloat(900.00)))
	suite.Len(invoice.LineItems, 2)
	suite.Len(invoice.Installments, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DiscountExceedsTotal() {
	ctx := context.Background()
	req := validInvoiceRequest()
	req.DiscountAmount = decimal.NewFromFloat(1500.00)

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_BadLineTotal() {
	ctx := context.Background()
	req := validInvoiceRequest()
	// 10 * 60.00 is 600.00, not 555.00
	req.LineItems[0].LineTotal = decimal.NewFromFloat(555.00)
	req.LineItems[1].LineTotal = decimal.NewFromFloat(445.00)

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_InstallmentsMustSumToNet() {
	ctx := context.Background()
	req := validInvoiceRequest()
	req.Installments[1].Amount = decimal.NewFromFloat(400.00)

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateNumber() {
	ctx := context.Background()
	req := validInvoiceRequest()

	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: invoice number %s already registered", apperrors.ErrDuplicate, req.Number)).Once()

	_, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RecomputesNetAmount() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Invoice{
		InvoiceID:      invoiceID,
		Number:         "55555",
		SupplierTaxID:  "11222333000181",
		SupplierName:   "Distribuidora Beta",
		IssueDate:      issue,
		TotalAmount:    decimal.NewFromFloat(500.00),
		DiscountAmount: decimal.Zero,
		NetAmount:      decimal.NewFromFloat(500.00),
		Status:         domain.InvoicePending,
	}
	newDiscount := decimal.NewFromFloat(50.00)

	suite.mockRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	var updated domain.Invoice
	suite.mockRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Invoice)
		}).Return(nil).Once()

	invoice, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{DiscountAmount: &newDiscount})

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.True(updated.NetAmount.Equal(decimal.NewFromFloat(450.00)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockRepo.On("DeleteInvoice", ctx, invoiceID).
		Return(fmt.Errorf("%w: invoice not found", apperrors.ErrNotFound)).Once()

	err := suite.service.DeleteInvoice(ctx, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestSweepOverdueInvoices() {
	ctx := context.Background()
	asOf := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("MarkOverdueInvoices", ctx, asOf, mock.AnythingOfType("time.Time")).
		Return(int64(2), nil).Once()

	affected, err := suite.service.SweepOverdueInvoices(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(int64(2), affected)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
