package services

// ServiceContainer holds all service facades needed by the handlers.
type ServiceContainer struct {
	Payable          PayableSvcFacade
	RecurringExpense RecurringExpenseSvcFacade
	Invoice          InvoiceSvcFacade
	ChartAccount     ChartAccountSvcFacade
	DRE              DRESvcFacade
}
