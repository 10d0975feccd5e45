// Package forms derives the text placed on regulatory forms.
package forms

import (
	"strings"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/core/ports/gateways"
	"github.com/fxdesk/remittance_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// BuildA2Fields derives the form text from the order, its sender and its beneficiary.
// The result depends only on its arguments; beneficiary may be nil.
func BuildA2Fields(order domain.Order, sender domain.Sender, beneficiary *domain.Beneficiary) []gateways.FieldValue {
	fields := []gateways.FieldValue{
		{Name: "order_id", Value: order.OrderID},
		{Name: "sender_name", Value: sender.Name},
		{Name: "sender_pan", Value: strings.ToUpper(sender.PAN)},
		{Name: "sender_address", Value: joinNonEmpty(", ", sender.Address, sender.City, sender.State, sender.PostalCode)},
		{Name: "sender_phone", Value: sender.Phone},
		{Name: "sender_email", Value: sender.Email},
		{Name: "purpose_code", Value: order.PurposeCode},
		{Name: "currency_code", Value: order.CurrencyCode},
		{Name: "foreign_amount", Value: utils.FormatWithPrecision(order.ForeignAmount, 2)},
		{Name: "customer_rate", Value: optionalAmount(order.CustomerRate, false)},
		{Name: "inr_amount", Value: optionalAmount(order.InrAmount, true)},
		{Name: "source_of_funds", Value: sender.SourceOfFunds},
		{Name: "relationship", Value: sender.RelationshipToStudent},
		{Name: "declarant_name", Value: sender.Name},
		{Name: "declarant_place", Value: sender.City},
		{Name: "declaration_date", Value: order.CreatedAt.Format("02-01-2006")},
	}

	if beneficiary == nil {
		return fields
	}
	b := beneficiary
	return append(fields,
		gateways.FieldValue{Name: "beneficiary_name", Value: b.Name},
		gateways.FieldValue{Name: "beneficiary_address", Value: b.Address},
		gateways.FieldValue{Name: "beneficiary_country", Value: b.Country},
		gateways.FieldValue{Name: "bank_name", Value: b.BankName},
		gateways.FieldValue{Name: "bank_address", Value: b.BankAddress},
		gateways.FieldValue{Name: "account_number", Value: b.AccountNumber},
		gateways.FieldValue{Name: "swift_code", Value: b.SwiftCode},
		gateways.FieldValue{Name: "iban", Value: deref(b.IBAN)},
		gateways.FieldValue{Name: "routing_code", Value: deref(b.RoutingCode)},
		gateways.FieldValue{Name: "intermediary_bank_name", Value: deref(b.IntermediaryBankName)},
		gateways.FieldValue{Name: "intermediary_swift", Value: deref(b.IntermediarySwift)},
		gateways.FieldValue{Name: "intermediary_account", Value: deref(b.IntermediaryAccount)},
	)
}

// optionalAmount renders a computed figure, or nothing while the order is unpriced.
func optionalAmount(d *decimal.Decimal, inr bool) string {
	if d == nil {
		return ""
	}
	if inr {
		return utils.FormatINR(*d)
	}
	return utils.FormatWithPrecision(*d, 2)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
