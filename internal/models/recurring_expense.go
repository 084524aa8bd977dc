package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringExpense is the row shape of the recurring_expenses table.
type RecurringExpense struct {
	RecurringExpenseID string          `db:"recurring_expense_id"`
	Description        string          `db:"description"`
	SupplierName       string          `db:"supplier_name"`
	Category           string          `db:"category"`
	Amount             decimal.Decimal `db:"amount"`
	DueDay             int             `db:"due_day"`
	Periodicity        string          `db:"periodicity"`
	IsActive           bool            `db:"is_active"`
	NextDueDate        time.Time       `db:"next_due_date"`
	CreatedAt          time.Time       `db:"created_at"`
}
