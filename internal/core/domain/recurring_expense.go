package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringExpense is a template that materializes future payables on a fixed
// day of the month.
type RecurringExpense struct {
	RecurringExpenseID string          `json:"recurringExpenseID"` // Primary Key (UUID)
	Description        string          `json:"description"`
	SupplierName       string          `json:"supplierName"`
	Category           string          `json:"category"`
	Amount             decimal.Decimal `json:"amount"`
	DueDay             int             `json:"dueDay"` // Day of month, 1-31
	Periodicity        Periodicity     `json:"periodicity"`
	IsActive           bool            `json:"isActive"`
	NextDueDate        time.Time       `json:"nextDueDate"`
	CreatedAt          time.Time       `json:"createdAt"`
}
