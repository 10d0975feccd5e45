package domain

// Organisation is an agent firm that originates orders on behalf of its customers.
type Organisation struct {
	OrganisationID string `json:"organisationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	ContactEmail   string `json:"contactEmail"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
