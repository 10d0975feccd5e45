package models

// Organisation is the organisations table row.
type Organisation struct {
	OrganisationID string `db:"organisation_id"`
	Name           string `db:"name"`
	ContactEmail   string `db:"contact_email"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
