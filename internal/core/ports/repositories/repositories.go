package repositories

// RepositoryProvider holds instances of all repositories, wired once at
// startup and handed to the service container.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepository
	AccountRepo      AccountRepository
	EntryRepo        EntryRepository
	BalanceRepo      BalanceRepository
}
