package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all PostgreSQL-backed repositories sharing
// one connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(pool),
		AccountRepo:      newPgxAccountRepository(pool),
		EntryRepo:        newPgxEntryRepository(pool),
		BalanceRepo:      newPgxBalanceRepository(pool),
	}
}
