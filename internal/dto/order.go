package dto

import (
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SenderRequest carries the sender's identity and compliance fields.
type SenderRequest struct {
	Name                  string `json:"name" binding:"required"`
	PAN                   string `json:"pan" binding:"required,pan"`
	Address               string `json:"address" binding:"required"`
	City                  string `json:"city" binding:"required"`
	State                 string `json:"state" binding:"required"`
	PostalCode            string `json:"postalCode" binding:"required,numeric,len=6"`
	Phone                 string `json:"phone" binding:"required,e164|numeric"`
	Email                 string `json:"email" binding:"required,email"`
	SourceOfFunds         string `json:"sourceOfFunds" binding:"required"`
	RelationshipToStudent string `json:"relationshipToStudent"`
}

// CreateOrderRequest is the order intake form. The sender is created together with the order.
type CreateOrderRequest struct {
	ForeignAmount      decimal.Decimal `json:"foreignAmount"`
	CurrencyCode       string          `json:"currencyCode" binding:"required,len=3,supported_currency"`
	DestinationCountry string          `json:"destinationCountry" binding:"required,iso3166_1_alpha2"`
	PurposeCode        string          `json:"purposeCode" binding:"required,max=32"`
	Margin             decimal.Decimal `json:"margin"`
	ForeignBankCharges int             `json:"foreignBankCharges" binding:"oneof=0 1"`
	EducationLoan      bool            `json:"educationLoan"`
	BeneficiaryID      *string         `json:"beneficiaryID" binding:"omitempty,uuid"`
	OrganisationID     *string         `json:"organisationID" binding:"omitempty,uuid"`
	Status             string          `json:"status"`
	Sender             SenderRequest   `json:"sender" binding:"required"`
}

// UpdateOrderRequest carries editable order fields. Omitted fields are left unchanged.
type UpdateOrderRequest struct {
	ForeignAmount      *decimal.Decimal `json:"foreignAmount"`
	CurrencyCode       *string          `json:"currencyCode" binding:"omitempty,len=3,supported_currency"`
	DestinationCountry *string          `json:"destinationCountry" binding:"omitempty,iso3166_1_alpha2"`
	PurposeCode        *string          `json:"purposeCode" binding:"omitempty,max=32"`
	Margin             *decimal.Decimal `json:"margin"`
	ForeignBankCharges *int             `json:"foreignBankCharges" binding:"omitempty,oneof=0 1"`
	EducationLoan      *bool            `json:"educationLoan"`
	BeneficiaryID      *string          `json:"beneficiaryID" binding:"omitempty,uuid"`
}

// UpdateOrderStatusRequest sets the free-text workflow label.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,max=64"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Status    string `form:"status"`
	Limit     int    `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken string `form:"nextToken"`
}

// OrderResponse defines data returned for an order.
type OrderResponse struct {
	OrderID            string           `json:"orderID"`
	OrganisationID     *string          `json:"organisationID,omitempty"`
	ForeignAmount      decimal.Decimal  `json:"foreignAmount"`
	CurrencyCode       string           `json:"currencyCode"`
	DestinationCountry string           `json:"destinationCountry"`
	PurposeCode        string           `json:"purposeCode"`
	Margin             decimal.Decimal  `json:"margin"`
	ForeignBankCharges int              `json:"foreignBankCharges"`
	EducationLoan      bool             `json:"educationLoan"`
	Status             string           `json:"status"`
	BeneficiaryID      *string          `json:"beneficiaryID,omitempty"`
	MarketRate         *decimal.Decimal `json:"marketRate,omitempty"`
	CustomerRate       *decimal.Decimal `json:"customerRate,omitempty"`
	InrAmount          *decimal.Decimal `json:"inrAmount,omitempty"`
	BankFee            *decimal.Decimal `json:"bankFee,omitempty"`
	GST                *decimal.Decimal `json:"gst,omitempty"`
	TCS                *decimal.Decimal `json:"tcs,omitempty"`
	TotalPayable       *decimal.Decimal `json:"totalPayable,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	CreatedBy          string           `json:"createdBy"`
	LastUpdatedAt      time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy      string           `json:"lastUpdatedBy"`
}

// ToOrderResponse converts domain.Order to DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:            o.OrderID,
		OrganisationID:     o.OrganisationID,
		ForeignAmount:      o.ForeignAmount,
		CurrencyCode:       o.CurrencyCode,
		DestinationCountry: o.DestinationCountry,
		PurposeCode:        o.PurposeCode,
		Margin:             o.Margin,
		ForeignBankCharges: o.ForeignBankCharges,
		EducationLoan:      o.EducationLoan,
		Status:             o.Status,
		BeneficiaryID:      o.BeneficiaryID,
		MarketRate:         o.MarketRate,
		CustomerRate:       o.CustomerRate,
		InrAmount:          o.InrAmount,
		BankFee:            o.BankFee,
		GST:                o.GST,
		TCS:                o.TCS,
		TotalPayable:       o.TotalPayable,
		CreatedAt:          o.CreatedAt,
		CreatedBy:          o.CreatedBy,
		LastUpdatedAt:      o.LastUpdatedAt,
		LastUpdatedBy:      o.LastUpdatedBy,
	}
}

// CreateOrderResponse returns the new order and its sender.
type CreateOrderResponse struct {
	Order  OrderResponse  `json:"order"`
	Sender SenderResponse `json:"sender"`
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListOrdersResponse converts a page of orders to DTO.
func ToListOrdersResponse(orders []domain.Order, nextToken *string) ListOrdersResponse {
	list := make([]OrderResponse, len(orders))
	for i := range orders {
		list[i] = ToOrderResponse(&orders[i])
	}
	return ListOrdersResponse{Orders: list, NextToken: nextToken}
}

// SenderResponse defines data returned for a sender.
type SenderResponse struct {
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
}

// ToSenderResponse converts domain.Sender to DTO.
func ToSenderResponse(s *domain.Sender) SenderResponse {
	return SenderResponse{
		SenderID:              s.SenderID,
		OrderID:               s.OrderID,
		Name:                  s.Name,
		PAN:                   s.PAN,
		Address:               s.Address,
		City:                  s.City,
		State:                 s.State,
		PostalCode:            s.PostalCode,
		Phone:                 s.Phone,
		Email:                 s.Email,
		SourceOfFunds:         s.SourceOfFunds,
		RelationshipToStudent: s.RelationshipToStudent,
	}
}

// QuoteRequest prices an order without persisting anything.
type QuoteRequest struct {
	ForeignAmount      decimal.Decimal `json:"foreignAmount"`
	CurrencyCode       string          `json:"currencyCode" binding:"required,len=3,supported_currency"`
	DestinationCountry string          `json:"destinationCountry" binding:"required,iso3166_1_alpha2"`
	PurposeCode        string          `json:"purposeCode"`
	Margin             decimal.Decimal `json:"margin"`
	ForeignBankCharges int             `json:"foreignBankCharges" binding:"oneof=0 1"`
	EducationLoan      bool            `json:"educationLoan"`
}

// ToFinancialInput converts the request into calculator input.
func (r QuoteRequest) ToFinancialInput() domain.FinancialInput {
	return domain.FinancialInput{
		ForeignAmount:      r.ForeignAmount,
		CurrencyCode:       r.CurrencyCode,
		DestinationCountry: r.DestinationCountry,
		PurposeCode:        r.PurposeCode,
		Margin:             r.Margin,
		ForeignBankCharges: r.ForeignBankCharges,
		EducationLoan:      r.EducationLoan,
	}
}

// QuoteResponse is the computed pricing breakdown.
type QuoteResponse struct {
	MarketRate          decimal.Decimal `json:"marketRate"`
	Margin              decimal.Decimal `json:"margin"`
	CustomerRate        decimal.Decimal `json:"customerRate"`
	CustomerRateDisplay string          `json:"customerRateDisplay"`
	InrAmount           decimal.Decimal `json:"inrAmount"`
	BankFee             decimal.Decimal `json:"bankFee"`
	GST                 decimal.Decimal `json:"gst"`
	TCS                 decimal.Decimal `json:"tcs"`
	TotalPayable        decimal.Decimal `json:"totalPayable"`
}

// ToQuoteResponse converts calculated values to DTO.
func ToQuoteResponse(v domain.CalculatedValues) QuoteResponse {
	return QuoteResponse(v)
}

// ConfirmOrderResponse returns the priced order and the A2 pipeline outcome.
type ConfirmOrderResponse struct {
	Order      OrderResponse           `json:"order"`
	Settlement domain.SettlementResult `json:"settlement"`
}
