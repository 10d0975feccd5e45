package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	OrganisationRepo OrganisationRepositoryFacade
	OrderRepo        OrderRepositoryFacade
	BeneficiaryRepo  BeneficiaryRepositoryFacade
	DocumentRepo     DocumentRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
}
