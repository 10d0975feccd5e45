package services

import (
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	portsrepo "github.com/fxdesk/remittance_backend/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/platform/config"
	"github.com/fxdesk/remittance_backend/internal/utils/pricing"
)

// Dependencies groups the outbound adapters the services talk to.
type Dependencies struct {
	RateSource gateways.RateSource
	Storage    gateways.ObjectStorage
	Transfer   gateways.ObjectTransfer
	Mailer     gateways.Mailer
	Renderer   gateways.A2Renderer
	Events     gateways.EventTracker
	// GoogleValidator replaces Google's ID token verification, mainly in tests.
	GoogleValidator IDTokenValidator
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, repos.OrganisationRepo)
	container.Token = NewTokenService(cfg, container.User)
	if deps.GoogleValidator != nil {
		container.Google = NewGoogleIDTokenServiceWithValidator(cfg.GoogleClientID, deps.GoogleValidator)
	} else {
		container.Google = NewGoogleIDTokenService(cfg)
	}
	container.Organisation = NewOrganisationService(repos.OrganisationRepo)
	container.Rate = NewRateService(deps.RateSource, repos.ExchangeRateRepo, pricing.NewTCSPolicy(cfg.TCSThreshold))
	container.Beneficiary = NewBeneficiaryService(repos.BeneficiaryRepo, repos.OrganisationRepo)

	// Settlement is built before orders since confirmation runs the A2 pipeline
	container.Settlement = NewSettlementService(
		SettlementConfig{
			OpsEmail:        cfg.OpsEmail,
			PartnerEmail:    cfg.PartnerEmail,
			DownloadTimeout: cfg.DownloadTimeout,
			CDNBaseURL:      cfg.CloudFrontBaseURL,
		},
		repos.OrderRepo,
		repos.BeneficiaryRepo,
		repos.DocumentRepo,
		SettlementDeps{
			Renderer: deps.Renderer,
			Storage:  deps.Storage,
			Transfer: deps.Transfer,
			Mailer:   deps.Mailer,
			Events:   deps.Events,
		},
	)
	container.Order = NewOrderService(
		repos.OrderRepo,
		repos.BeneficiaryRepo,
		repos.OrganisationRepo,
		container.Rate,
		container.Settlement,
		deps.Events,
	)
	container.Document = NewDocumentService(repos.DocumentRepo, container.Order, deps.Storage, cfg.CloudFrontBaseURL)

	return container
}
