package domain

// Sender holds the paying party's identity and compliance fields. One per order.
type Sender struct {
	SenderID              string `json:"senderID"`
	OrderID               string `json:"orderID"`
	Name                  string `json:"name"`
	PAN                   string `json:"pan"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	PostalCode            string `json:"postalCode"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email"`
	SourceOfFunds         string `json:"sourceOfFunds"`
	RelationshipToStudent string `json:"relationshipToStudent"`
	AuditFields
}
