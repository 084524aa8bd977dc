package dto

import (
	"time"

	"github.com/ldmoraes/contas_app/internal/core/domain"
)

// CreateChartAccountRequest defines the data needed to create a chart account.
type CreateChartAccountRequest struct {
	Code     string `json:"code" binding:"required,max=20"`
	Name     string `json:"name" binding:"required,max=200"`
	Type     string `json:"type" binding:"required,oneof=REVENUE COST EXPENSE"`
	Group    string `json:"group" binding:"required,oneof=GROSS_REVENUE REVENUE_DEDUCTIONS COST_OF_SALES OPERATING_EXPENSES ADMINISTRATIVE_EXPENSES SELLING_EXPENSES OTHER_REVENUE OTHER_EXPENSES FINANCIAL_RESULT TAX_PROVISION"`
	Subgroup string `json:"subgroup" binding:"omitempty,max=100"`
}

// UpdateChartAccountRequest defines the partial change set for a chart account.
// Code, type and group are immutable once postings may reference the account.
type UpdateChartAccountRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Subgroup *string `json:"subgroup" binding:"omitempty,max=100"`
	IsActive *bool   `json:"isActive"`
}

// ChartAccountResponse defines the data returned for a chart account.
type ChartAccountResponse struct {
	AccountID string    `json:"accountID"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Group     string    `json:"group"`
	Subgroup  string    `json:"subgroup,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToChartAccountResponse converts a domain.ChartAccount to its response DTO.
func ToChartAccountResponse(a *domain.ChartAccount) ChartAccountResponse {
	return ChartAccountResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		Group:     string(a.Group),
		Subgroup:  a.Subgroup,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// ToListChartAccountsResponse converts chart accounts to response DTOs.
func ToListChartAccountsResponse(accounts []domain.ChartAccount) []ChartAccountResponse {
	res := make([]ChartAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToChartAccountResponse(&accounts[i])
	}
	return res
}
