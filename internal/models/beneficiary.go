package models

// Beneficiary is the beneficiaries table row.
type Beneficiary struct {
	BeneficiaryID        string  `db:"beneficiary_id"`
	OrganisationID       *string `db:"organisation_id"`
	Name                 string  `db:"name"`
	Address              string  `db:"address"`
	Country              string  `db:"country"`
	BankName             string  `db:"bank_name"`
	BankAddress          string  `db:"bank_address"`
	AccountNumber        string  `db:"account_number"`
	SwiftCode            string  `db:"swift_code"`
	IBAN                 *string `db:"iban"`
	RoutingCode          *string `db:"routing_code"`
	IntermediaryBankName *string `db:"intermediary_bank_name"`
	IntermediarySwift    *string `db:"intermediary_swift"`
	IntermediaryAccount  *string `db:"intermediary_account"`
	AuditFields
}
