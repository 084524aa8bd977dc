package models

import "time"

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// ChartAccount is the row shape of the chart_accounts table.
type ChartAccount struct {
	AccountID string      `db:"account_id"`
	Code      string      `db:"code"` // Unique
	Name      string      `db:"name"`
	Type      AccountType `db:"account_type"`
	Group     string      `db:"account_group"`
	Subgroup  string      `db:"subgroup"`
	IsActive  bool        `db:"is_active"`
	CreatedAt time.Time   `db:"created_at"`
}
