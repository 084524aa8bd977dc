package mapping

import (
	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/models"
)

// ToModelRecurringExpense converts a domain.RecurringExpense to its DB row representation.
func ToModelRecurringExpense(d domain.RecurringExpense) models.RecurringExpense {
	return models.RecurringExpense{
		RecurringExpenseID: d.RecurringExpenseID,
		Description:        d.Description,
		SupplierName:       d.SupplierName,
		Category:           d.Category,
		Amount:             d.Amount,
		DueDay:             d.DueDay,
		Periodicity:        string(d.Periodicity),
		IsActive:           d.IsActive,
		NextDueDate:        d.NextDueDate,
		CreatedAt:          d.CreatedAt,
	}
}

// ToDomainRecurringExpense converts a recurring_expenses row back to the domain representation.
func ToDomainRecurringExpense(m models.RecurringExpense) domain.RecurringExpense {
	return domain.RecurringExpense{
		RecurringExpenseID: m.RecurringExpenseID,
		Description:        m.Description,
		SupplierName:       m.SupplierName,
		Category:           m.Category,
		Amount:             m.Amount,
		DueDay:             m.DueDay,
		Periodicity:        domain.Periodicity(m.Periodicity),
		IsActive:           m.IsActive,
		NextDueDate:        m.NextDueDate,
		CreatedAt:          m.CreatedAt,
	}
}
