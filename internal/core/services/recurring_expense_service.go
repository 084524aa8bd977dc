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

// recurringExpenseService manages recurring-expense templates and turns the
// due ones into concrete payables.
type recurringExpenseService struct {
	BaseService
	recurringRepo portsrepo.RecurringExpenseRepositoryFacade
}

// NewRecurringExpenseService creates a new RecurringExpenseService.
func NewRecurringExpenseService(recurringRepo portsrepo.RecurringExpenseRepositoryFacade) portssvc.RecurringExpenseSvcFacade {
	return &recurringExpenseService{
		recurringRepo: recurringRepo,
	}
}

// Ensure recurringExpenseService implements the facade interface
var _ portssvc.RecurringExpenseSvcFacade = (*recurringExpenseService)(nil)

// CreateRecurringExpense validates and persists a new template.
func (s *recurringExpenseService) CreateRecurringExpense(ctx context.Context, req dto.CreateRecurringExpenseRequest) (*domain.RecurringExpense, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	periodicity := domain.Periodicity(req.Periodicity)
	if !periodicity.IsValid() {
		return nil, fmt.Errorf("%w: invalid periodicity %q", apperrors.ErrValidation, req.Periodicity)
	}
	nextDueDate, err := dto.ParseDate(req.NextDueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid next due date", apperrors.ErrValidation)
	}

	expense := domain.RecurringExpense{
		RecurringExpenseID: uuid.NewString(),
		Description:        req.Description,
		SupplierName:       req.SupplierName,
		Category:           req.Category,
		Amount:             req.Amount,
		DueDay:             req.DueDay,
		Periodicity:        periodicity,
		IsActive:           true,
		NextDueDate:        nextDueDate,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.recurringRepo.SaveRecurringExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to save recurring expense",
			slog.String("recurring_expense_id", expense.RecurringExpenseID))
		return nil, err
	}
	return &expense, nil
}

// GetRecurringExpenseByID retrieves a template by its ID.
func (s *recurringExpenseService) GetRecurringExpenseByID(ctx context.Context, recurringExpenseID string) (*domain.RecurringExpense, error) {
	return s.recurringRepo.FindRecurringExpenseByID(ctx, recurringExpenseID)
}

// ListRecurringExpenses retrieves templates, optionally only active ones.
func (s *recurringExpenseService) ListRecurringExpenses(ctx context.Context, onlyActive bool) ([]domain.RecurringExpense, error) {
	return s.recurringRepo.ListRecurringExpenses(ctx, onlyActive)
}

// UpdateRecurringExpense applies a partial change set to an existing template.
func (s *recurringExpenseService) UpdateRecurringExpense(ctx context.Context, recurringExpenseID string, req dto.UpdateRecurringExpenseRequest) (*domain.RecurringExpense, error) {
	expense, err := s.recurringRepo.FindRecurringExpenseByID(ctx, recurringExpenseID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.SupplierName != nil {
		expense.SupplierName = *req.SupplierName
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.DueDay != nil {
		if *req.DueDay < 1 || *req.DueDay > 31 {
			return nil, fmt.Errorf("%w: due day must be between 1 and 31", apperrors.ErrValidation)
		}
		expense.DueDay = *req.DueDay
	}
	if req.Periodicity != nil {
		p := domain.Periodicity(*req.Periodicity)
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: invalid periodicity %q", apperrors.ErrValidation, *req.Periodicity)
		}
		expense.Periodicity = p
	}
	if req.IsActive != nil {
		expense.IsActive = *req.IsActive
	}
	if req.NextDueDate != nil {
		nextDueDate, err := dto.ParseDate(*req.NextDueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid next due date", apperrors.ErrValidation)
		}
		expense.NextDueDate = nextDueDate
	}

	if err := s.recurringRepo.UpdateRecurringExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "failed to update recurring expense",
			slog.String("recurring_expense_id", recurringExpenseID))
		return nil, err
	}
	return expense, nil
}

// DeleteRecurringExpense removes a template. Already generated payables stay.
func (s *recurringExpenseService) DeleteRecurringExpense(ctx context.Context, recurringExpenseID string) error {
	return s.recurringRepo.DeleteRecurringExpense(ctx, recurringExpenseID)
}

// GenerateDuePayables materializes one payable per active template whose next
// due date has arrived. Each materialization advances the template by its
// periodicity in the same transaction, so a re-run never duplicates a month.
func (s *recurringExpenseService) GenerateDuePayables(ctx context.Context, asOf time.Time) ([]domain.Payable, error) {
	due, err := s.recurringRepo.FindDueRecurringExpenses(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "failed to find due recurring expenses")
		return nil, err
	}

	now := time.Now().UTC()
	generated := make([]domain.Payable, 0, len(due))
	for _, tpl := range due {
		payable := domain.Payable{
			PayableID:    uuid.NewString(),
			Description:  tpl.Description,
			SupplierName: tpl.SupplierName,
			ExpenseType:  domain.ExpenseOperational,
			Category:     tpl.Category,
			TotalAmount:  tpl.Amount,
			IssueDate:    tpl.NextDueDate,
			DueDate:      tpl.NextDueDate,
			Status:       domain.PayablePending,
			IsRecurring:  true,
			Periodicity:  tpl.Periodicity,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		nextDueDate := tpl.Periodicity.AdvanceDateAnchored(tpl.NextDueDate, tpl.DueDay)

		if err := s.recurringRepo.MaterializePayable(ctx, tpl.RecurringExpenseID, payable, nextDueDate); err != nil {
			s.LogError(ctx, err, "failed to materialize payable",
				slog.String("recurring_expense_id", tpl.RecurringExpenseID))
			return generated, err
		}
		generated = append(generated, payable)
	}

	if len(generated) > 0 {
		s.LogInfo(ctx, "recurring payables generated", slog.Int("count", len(generated)))
	}
	return generated, nil
}
