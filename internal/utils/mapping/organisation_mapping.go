package mapping

import (
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/models"
)

// ToModelOrganisation converts a domain Organisation to a model Organisation
func ToModelOrganisation(d domain.Organisation) models.Organisation {
	return models.Organisation{
		OrganisationID: d.OrganisationID,
		Name:           d.Name,
		ContactEmail:   d.ContactEmail,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganisation converts a model Organisation to a domain Organisation
func ToDomainOrganisation(m models.Organisation) domain.Organisation {
	return domain.Organisation{
		OrganisationID: m.OrganisationID,
		Name:           m.Name,
		ContactEmail:   m.ContactEmail,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
