package domain

// Beneficiary holds the receiving bank and account details. Beneficiaries are reusable across orders.
type Beneficiary struct {
	BeneficiaryID        string  `json:"beneficiaryID"`
	OrganisationID       *string `json:"organisationID,omitempty"`
	Name                 string  `json:"name"`
	Address              string  `json:"address"`
	Country              string  `json:"country"`
	BankName             string  `json:"bankName"`
	BankAddress          string  `json:"bankAddress"`
	AccountNumber        string  `json:"accountNumber"`
	SwiftCode            string  `json:"swiftCode"`
	IBAN                 *string `json:"iban,omitempty"`
	RoutingCode          *string `json:"routingCode,omitempty"` // ABA, sort code, BSB or transit number
	IntermediaryBankName *string `json:"intermediaryBankName,omitempty"`
	IntermediarySwift    *string `json:"intermediarySwift,omitempty"`
	IntermediaryAccount  *string `json:"intermediaryAccount,omitempty"`
	AuditFields
}

// ClearIntermediary drops the intermediary bank fields.
func (b *Beneficiary) ClearIntermediary() {
	b.IntermediaryBankName = nil
	b.IntermediarySwift = nil
	b.IntermediaryAccount = nil
}

// HasIntermediary reports whether any intermediary bank field is set.
func (b Beneficiary) HasIntermediary() bool {
	return b.IntermediaryBankName != nil || b.IntermediarySwift != nil || b.IntermediaryAccount != nil
}

// VisibleTo reports whether p may use the beneficiary.
func (b Beneficiary) VisibleTo(p Principal) bool {
	if !p.IsAgent() {
		return true
	}
	return p.OrganisationID != nil && b.OrganisationID != nil && *p.OrganisationID == *b.OrganisationID
}
