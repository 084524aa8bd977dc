package mapping

import (
	"github.com/ldmoraes/contas_app/internal/core/domain"
	"github.com/ldmoraes/contas_app/internal/models"
)

// ToModelChartAccount converts a domain.ChartAccount to its DB row representation.
func ToModelChartAccount(d domain.ChartAccount) models.ChartAccount {
	return models.ChartAccount{
		AccountID: d.AccountID,
		Code:      d.Code,
		Name:      d.Name,
		Type:      models.AccountType(d.Type),
		Group:     string(d.Group),
		Subgroup:  d.Subgroup,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainChartAccount converts a chart_accounts row back to the domain representation.
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		AccountID: m.AccountID,
		Code:      m.Code,
		Name:      m.Name,
		Type:      domain.AccountType(m.Type),
		Group:     domain.AccountGroup(m.Group),
		Subgroup:  m.Subgroup,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}
