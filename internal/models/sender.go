package models

// Sender is the senders table row.
type Sender struct {
	SenderID              string `db:"sender_id"`
	OrderID               string `db:"order_id"`
	Name                  string `db:"name"`
	PAN                   string `db:"pan"`
	Address               string `db:"address"`
	City                  string `db:"city"`
	State                 string `db:"state"`
	PostalCode            string `db:"postal_code"`
	Phone                 string `db:"phone"`
	Email                 string `db:"email"`
	SourceOfFunds         string `db:"source_of_funds"`
	RelationshipToStudent string `db:"relationship_to_student"`
	AuditFields
}
