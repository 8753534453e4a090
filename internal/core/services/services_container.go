package services

import (
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
)

// NewServiceContainer wires all application services against the repository
// provider. Called once at startup.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	idGen := NewUUIDGenerator()
	return &portssvc.ServiceContainer{
		Organization: NewOrganizationService(repos.OrganizationRepo, idGen),
		Chart:        NewChartService(repos.AccountRepo, repos.OrganizationRepo, repos.BalanceRepo, idGen),
		Posting:      NewPostingService(repos.EntryRepo, repos.AccountRepo, repos.OrganizationRepo, idGen),
		Balance:      NewBalanceService(repos.BalanceRepo, repos.OrganizationRepo, repos.AccountRepo),
	}
}
