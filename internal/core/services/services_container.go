package services

import (
	portsrepo "github.com/ldmoraes/contas_app/internal/core/ports/repositories"
	portssvc "github.com/ldmoraes/contas_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Payable = NewPayableService(repos.PayableRepo, repos.InvoiceRepo)
	container.RecurringExpense = NewRecurringExpenseService(repos.RecurringExpenseRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo)
	container.ChartAccount = NewChartAccountService(repos.ChartAccountRepo)
	container.DRE = NewDREService(repos.DRERepo, repos.ChartAccountRepo)

	return container
}
