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
	"github.com/ldmoraes/contas_app/internal/utils/accounting"
)

// payableService provides the core accounts-payable operations.
type payableService struct {
	BaseService
	payableRepo portsrepo.PayableRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
}

// NewPayableService creates a new PayableService.
func NewPayableService(payableRepo portsrepo.PayableRepositoryFacade, invoiceRepo portsrepo.InvoiceReader) portssvc.PayableSvcFacade {
	return &payableService{
		payableRepo: payableRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Ensure payableService implements the portssvc.PayableSvcFacade interface
var _ portssvc.PayableSvcFacade = (*payableService)(nil)

// CreatePayable validates and persists a new payable with its installments.
func (s *payableService) CreatePayable(ctx context.Context, req dto.CreatePayableRequest) (*domain.Payable, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	issueDate, err := dto.ParseDate(req.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid issue date", apperrors.ErrValidation)
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
	}
	if dueDate.Before(issueDate) {
		return nil, fmt.Errorf("%w: due date precedes issue date", apperrors.ErrValidation)
	}
	periodicity := domain.Periodicity(req.Periodicity)
	if req.IsRecurring {
		if !periodicity.IsValid() {
			return nil, fmt.Errorf("%w: recurring payable requires a valid periodicity", apperrors.ErrValidation)
		}
	} else if req.Periodicity != "" {
		return nil, fmt.Errorf("%w: periodicity only applies to recurring payables", apperrors.ErrValidation)
	}
	if req.InstallmentCount > 0 && len(req.Installments) > 0 {
		return nil, fmt.Errorf("%w: give either an installment count or explicit installments, not both", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	payable := domain.Payable{
		PayableID:     uuid.NewString(),
		Description:   req.Description,
		SupplierName:  req.SupplierName,
		SupplierTaxID: req.SupplierTaxID,
		ExpenseType:   domain.ExpenseType(req.ExpenseType),
		Category:      req.Category,
		TotalAmount:   req.TotalAmount,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Status:        domain.PayablePending,
		IsRecurring:   req.IsRecurring,
		Periodicity:   periodicity,
		Notes:         req.Notes,
		InvoiceID:     req.InvoiceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	installments, err := s.buildInstallments(payable, req.Installments, req.InstallmentCount)
	if err != nil {
		return nil, err
	}

	if err := s.payableRepo.SavePayable(ctx, payable, installments); err != nil {
		s.LogError(ctx, err, "failed to save payable", slog.String("payable_id", payable.PayableID))
		return nil, err
	}
	payable.Installments = installments

	s.LogInfo(ctx, "payable created",
		slog.String("payable_id", payable.PayableID),
		slog.String("supplier", payable.SupplierName),
		slog.String("total", payable.TotalAmount.String()))
	return &payable, nil
}

// buildInstallments assembles the installment rows from either an explicit
// list or an even split of the total into count parts due monthly.
func (s *payableService) buildInstallments(payable domain.Payable, explicit []dto.CreateInstallmentRequest, count int) ([]domain.Installment, error) {
	if len(explicit) > 0 {
		installments := make([]domain.Installment, len(explicit))
		seen := make(map[int]bool, len(explicit))
		for i, in := range explicit {
			if seen[in.Number] {
				return nil, fmt.Errorf("%w: duplicate installment number %d", apperrors.ErrValidation, in.Number)
			}
			seen[in.Number] = true
			if !in.Amount.IsPositive() {
				return nil, fmt.Errorf("%w: installment %d amount must be positive", apperrors.ErrValidation, in.Number)
			}
			instDueDate, err := dto.ParseDate(in.DueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid due date on installment %d", apperrors.ErrValidation, in.Number)
			}
			installments[i] = domain.Installment{
				InstallmentID: uuid.NewString(),
				PayableID:     payable.PayableID,
				Number:        in.Number,
				DueDate:       instDueDate,
				Amount:        in.Amount,
				Status:        domain.InstallmentPending,
				Notes:         in.Notes,
			}
		}
		if err := accounting.ValidateInstallmentSum(payable.TotalAmount, installments); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return installments, nil
	}

	if count <= 0 {
		return nil, nil
	}
	parts, err := accounting.SplitAmount(payable.TotalAmount, count)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	installments := make([]domain.Installment, count)
	instDueDate := payable.DueDate
	for i := range installments {
		installments[i] = domain.Installment{
			InstallmentID: uuid.NewString(),
			PayableID:     payable.PayableID,
			Number:        i + 1,
			DueDate:       instDueDate,
			Amount:        parts[i],
			Status:        domain.InstallmentPending,
		}
		instDueDate = domain.Monthly.AdvanceDate(instDueDate)
	}
	return installments, nil
}

// CreatePayableFromInvoice derives a payable from an already registered
// fiscal document, carrying the invoice's net amount and schedule.
func (s *payableService) CreatePayableFromInvoice(ctx context.Context, invoiceID string, req dto.CreatePayableFromInvoiceRequest) (*domain.Payable, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dueDate := invoice.IssueDate
	if invoice.DueDate != nil {
		dueDate = *invoice.DueDate
	}
	payable := domain.Payable{
		PayableID:     uuid.NewString(),
		Description:   fmt.Sprintf("NF %s - %s", invoice.Number, invoice.SupplierName),
		SupplierName:  invoice.SupplierName,
		SupplierTaxID: invoice.SupplierTaxID,
		ExpenseType:   domain.ExpenseType(req.ExpenseType),
		Category:      req.Category,
		TotalAmount:   invoice.NetAmount,
		IssueDate:     invoice.IssueDate,
		DueDate:       dueDate,
		Status:        domain.PayablePending,
		Notes:         req.Notes,
		InvoiceID:     invoice.InvoiceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	var installments []domain.Installment
	if len(invoice.Installments) > 0 {
		installments = make([]domain.Installment, len(invoice.Installments))
		for i, in := range invoice.Installments {
			installments[i] = domain.Installment{
				InstallmentID: uuid.NewString(),
				PayableID:     payable.PayableID,
				Number:        in.Number,
				DueDate:       in.DueDate,
				Amount:        in.Amount,
				Status:        domain.InstallmentPending,
				Notes:         in.Notes,
			}
		}
	} else if req.InstallmentCount > 0 {
		installments, err = s.buildInstallments(payable, nil, req.InstallmentCount)
		if err != nil {
			return nil, err
		}
	}

	if err := s.payableRepo.SavePayable(ctx, payable, installments); err != nil {
		s.LogError(ctx, err, "failed to save payable from invoice",
			slog.String("invoice_id", invoiceID))
		return nil, err
	}
	payable.Installments = installments

	s.LogInfo(ctx, "payable created from invoice",
		slog.String("payable_id", payable.PayableID),
		slog.String("invoice_id", invoice.InvoiceID))
	return &payable, nil
}

// GetPayableByID retrieves a payable with its installments and payments.
func (s *payableService) GetPayableByID(ctx context.Context, payableID string) (*domain.Payable, error) {
	return s.payableRepo.FindPayableByID(ctx, payableID)
}

// ListPayables retrieves a page of payables matching the filter.
func (s *payableService) ListPayables(ctx context.Context, filter portsrepo.PayableFilter) ([]domain.Payable, string, error) {
	return s.payableRepo.ListPayables(ctx, filter)
}

// ListPayments retrieves the payments recorded against a payable.
func (s *payableService) ListPayments(ctx context.Context, payableID string) ([]domain.Payment, error) {
	if _, err := s.payableRepo.FindPayableByID(ctx, payableID); err != nil {
		return nil, err
	}
	return s.payableRepo.ListPayments(ctx, payableID)
}

// UpdatePayable applies a partial change set to an existing payable.
func (s *payableService) UpdatePayable(ctx context.Context, payableID string, req dto.UpdatePayableRequest) (*domain.Payable, error) {
	payable, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		payable.Description = *req.Description
	}
	if req.SupplierName != nil {
		payable.SupplierName = *req.SupplierName
	}
	if req.SupplierTaxID != nil {
		payable.SupplierTaxID = *req.SupplierTaxID
	}
	if req.ExpenseType != nil {
		et := domain.ExpenseType(*req.ExpenseType)
		if !et.IsValid() {
			return nil, fmt.Errorf("%w: invalid expense type %q", apperrors.ErrValidation, *req.ExpenseType)
		}
		payable.ExpenseType = et
	}
	if req.Category != nil {
		payable.Category = *req.Category
	}
	if req.TotalAmount != nil {
		if !req.TotalAmount.IsPositive() {
			return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
		}
		if err := accounting.ValidateInstallmentSum(*req.TotalAmount, payable.Installments); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		payable.TotalAmount = *req.TotalAmount
	}
	if req.IssueDate != nil {
		issueDate, err := dto.ParseDate(*req.IssueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid issue date", apperrors.ErrValidation)
		}
		payable.IssueDate = issueDate
	}
	if req.DueDate != nil {
		dueDate, err := dto.ParseDate(*req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
		}
		payable.DueDate = dueDate
	}
	if req.Status != nil {
		status := domain.PayableStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, *req.Status)
		}
		payable.Status = status
	}
	if req.IsRecurring != nil {
		payable.IsRecurring = *req.IsRecurring
	}
	if req.Periodicity != nil {
		p := domain.Periodicity(*req.Periodicity)
		if *req.Periodicity != "" && !p.IsValid() {
			return nil, fmt.Errorf("%w: invalid periodicity %q", apperrors.ErrValidation, *req.Periodicity)
		}
		payable.Periodicity = p
	}
	if req.Notes != nil {
		payable.Notes = *req.Notes
	}
	if payable.DueDate.Before(payable.IssueDate) {
		return nil, fmt.Errorf("%w: due date precedes issue date", apperrors.ErrValidation)
	}
	if payable.IsRecurring && !payable.Periodicity.IsValid() {
		return nil, fmt.Errorf("%w: recurring payable requires a valid periodicity", apperrors.ErrValidation)
	}

	payable.LastUpdatedAt = time.Now().UTC()
	if err := s.payableRepo.UpdatePayable(ctx, *payable); err != nil {
		s.LogError(ctx, err, "failed to update payable", slog.String("payable_id", payableID))
		return nil, err
	}
	return payable, nil
}

// DeletePayable removes a payable with its installments and payments.
func (s *payableService) DeletePayable(ctx context.Context, payableID string) error {
	if err := s.payableRepo.DeletePayable(ctx, payableID); err != nil {
		return err
	}
	s.LogInfo(ctx, "payable deleted", slog.String("payable_id", payableID))
	return nil
}

// RecordPayment registers a disbursement against a payable. When the payment
// settles an installment, the installment is marked paid; when every
// installment (or the full total) is settled, the payable itself becomes paid.
func (s *payableService) RecordPayment(ctx context.Context, payableID string, req dto.RecordPaymentRequest) (*domain.Payable, error) {
	payable, err := s.payableRepo.FindPayableByID(ctx, payableID)
	if err != nil {
		return nil, err
	}
	if payable.Status == domain.PayableCancelled {
		return nil, fmt.Errorf("%w: payable %s is cancelled", apperrors.ErrValidation, payableID)
	}
	if payable.Status == domain.PayablePaid {
		return nil, fmt.Errorf("%w: payable %s is already paid", apperrors.ErrValidation, payableID)
	}
	if !req.AmountPaid.IsPositive() {
		return nil, fmt.Errorf("%w: amount paid must be positive", apperrors.ErrValidation)
	}
	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		PayableID:     payableID,
		InstallmentID: req.InstallmentID,
		PaymentDate:   paymentDate,
		AmountPaid:    req.AmountPaid,
		Method:        domain.PaymentMethod(req.Method),
		ReceiptPath:   req.ReceiptPath,
		Notes:         req.Notes,
		CreatedAt:     now,
	}

	var paidInstallment *domain.Installment
	if req.InstallmentID != "" {
		for i := range payable.Installments {
			if payable.Installments[i].InstallmentID == req.InstallmentID {
				paidInstallment = &payable.Installments[i]
				break
			}
		}
		if paidInstallment == nil {
			return nil, fmt.Errorf("%w: installment %s does not belong to payable %s", apperrors.ErrNotFound, req.InstallmentID, payableID)
		}
		if paidInstallment.Status == domain.InstallmentPaid {
			return nil, fmt.Errorf("%w: installment %s is already paid", apperrors.ErrValidation, req.InstallmentID)
		}
		expected := paidInstallment.Amount.Add(req.Interest).Add(req.Penalty).Sub(req.Discount)
		if req.AmountPaid.Sub(expected).Abs().GreaterThan(accounting.RoundingTolerance) {
			return nil, fmt.Errorf("%w: amount paid %s does not settle installment %s (expected %s)",
				apperrors.ErrValidation, req.AmountPaid.String(), req.InstallmentID, expected.String())
		}
		paidInstallment.Status = domain.InstallmentPaid
		paidInstallment.PaymentDate = &paymentDate
		paidInstallment.PaidAmount = req.AmountPaid
		paidInstallment.Interest = req.Interest
		paidInstallment.Penalty = req.Penalty
		paidInstallment.Discount = req.Discount
	}

	var newStatus *domain.PayableStatus
	if s.settlesPayable(payable, payment, paidInstallment) {
		paid := domain.PayablePaid
		newStatus = &paid
	}

	if err := s.payableRepo.RecordPayment(ctx, payment, paidInstallment, newStatus, now); err != nil {
		s.LogError(ctx, err, "failed to record payment",
			slog.String("payable_id", payableID),
			slog.String("payment_id", payment.PaymentID))
		return nil, err
	}

	s.LogInfo(ctx, "payment recorded",
		slog.String("payable_id", payableID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.AmountPaid.String()))
	return s.payableRepo.FindPayableByID(ctx, payableID)
}

// settlesPayable reports whether the payable is fully settled after this
// payment. With installments every installment must be paid; without them the
// cumulative payments must reach the total within the rounding tolerance.
func (s *payableService) settlesPayable(payable *domain.Payable, payment domain.Payment, paidInstallment *domain.Installment) bool {
	if len(payable.Installments) > 0 {
		if paidInstallment == nil {
			return false
		}
		for _, inst := range payable.Installments {
			if inst.Status != domain.InstallmentPaid {
				return false
			}
		}
		return true
	}

	total := payment.AmountPaid
	for _, p := range payable.Payments {
		total = total.Add(p.AmountPaid)
	}
	return payable.TotalAmount.Sub(total).LessThanOrEqual(accounting.RoundingTolerance)
}

// SweepOverduePayables transitions pending payables and installments whose due
// date has passed into overdue.
func (s *payableService) SweepOverduePayables(ctx context.Context, asOf time.Time) (int64, error) {
	affected, err := s.payableRepo.MarkOverduePayables(ctx, asOf, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "failed to sweep overdue payables")
		return 0, err
	}
	if affected > 0 {
		s.LogInfo(ctx, "overdue sweep finished", slog.Int64("payables_affected", affected))
	}
	return affected, nil
}
