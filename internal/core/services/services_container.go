package services

import (
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
)

// NewServiceContainer wires all application services on the given
// repositories.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.ChartRepo, repos.AccountRepo)
	contactSvc := NewContactService(repos.ContactRepo)
	ledgerSvc := NewLedgerService(repos.ChartRepo, repos.AccountRepo, repos.LedgerRepo)
	reportingSvc := NewReportingService(repos.ChartRepo, repos.AccountRepo, repos.LedgerRepo, accountSvc)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Contact:   contactSvc,
		Ledger:    ledgerSvc,
		Reporting: reportingSvc,
	}
}
