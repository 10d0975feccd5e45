package pgsql

import (
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		OrganisationRepo: newPgxOrganisationRepository(dbPool),
		OrderRepo:        newPgxOrderRepository(dbPool),
		BeneficiaryRepo:  newPgxBeneficiaryRepository(dbPool),
		DocumentRepo:     newPgxDocumentRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
	}
}
