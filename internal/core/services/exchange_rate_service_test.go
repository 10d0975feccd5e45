package services_test

import (
	"context"
	"testing"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/fxdesk/remittance_backend/internal/core/domain"
	portssvc "github.com/fxdesk/remittance_backend/internal/core/ports/services"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/fxdesk/remittance_backend/internal/utils/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockSource   *MockRateSource
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewRateService(suite.mockSource, suite.mockRateRepo, pricing.DefaultTCSPolicy())
}

func (suite *RateServiceTestSuite) TestGetLiveRate_RecordsSnapshot() {
	ctx := context.Background()
	rate := decimal.RequireFromString("110.5")
	suite.mockSource.On("GetLiveRate", ctx, "USD", "INR").Return(rate, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "USD" && r.ToCurrencyCode == "INR" && r.Rate.Equal(rate) && r.Source == "mock"
	})).Return(nil).Once()

	got, err := suite.service.GetLiveRate(ctx, "usd", " inr ")

	suite.Require().NoError(err)
	suite.True(got.Equal(rate))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetLiveRate_SnapshotFailureIsNotFatal() {
	ctx := context.Background()
	suite.mockSource.On("GetLiveRate", ctx, "EUR", "INR").Return(decimal.NewFromInt(90), nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.Anything).Return(assert.AnError).Once()

	got, err := suite.service.GetLiveRate(ctx, "EUR", "INR")

	suite.Require().NoError(err)
	suite.True(got.Equal(decimal.NewFromInt(90)))
}

func (suite *RateServiceTestSuite) TestGetLiveRate_InvalidCodes() {
	ctx := context.Background()
	for _, pair := range [][2]string{{"US", "INR"}, {"USD", "USD"}, {"", "INR"}} {
		_, err := suite.service.GetLiveRate(ctx, pair[0], pair[1])
		suite.ErrorIs(err, apperrors.ErrValidation, "pair %v", pair)
	}
	suite.mockSource.AssertNotCalled(suite.T(), "GetLiveRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestQuote_ScenarioValues() {
	ctx := context.Background()
	suite.mockSource.On("GetLiveRate", ctx, "USD", "INR").Return(decimal.RequireFromString("110.5"), nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.Anything).Return(nil).Once()

	values, err := suite.service.Quote(ctx, domain.FinancialInput{
		ForeignAmount:      decimal.NewFromInt(7500),
		CurrencyCode:       "USD",
		DestinationCountry: "US",
		PurposeCode:        "EDUCATION",
		Margin:             decimal.RequireFromString("2.68"),
		ForeignBankCharges: 0,
	})

	suite.Require().NoError(err)
	suite.Equal("113.18", values.CustomerRate.StringFixed(2))
	suite.Equal("848850.00", values.InrAmount.StringFixed(2))
	suite.Equal("1500.00", values.BankFee.StringFixed(2))
	suite.Equal("270.00", values.GST.StringFixed(2))
	suite.True(values.TCS.IsZero())
	suite.Equal("850620.00", values.TotalPayable.StringFixed(2))
}

func (suite *RateServiceTestSuite) TestQuote_RateFailureNeverPrices() {
	ctx := context.Background()
	suite.mockSource.On("GetLiveRate", ctx, "GBP", "INR").Return(decimal.Zero, apperrors.NewUpstreamError("rate source unavailable", nil)).Once()

	values, err := suite.service.Quote(ctx, domain.FinancialInput{
		ForeignAmount: decimal.NewFromInt(100),
		CurrencyCode:  "GBP",
	})

	suite.Nil(values)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestListSnapshots() {
	ctx := context.Background()
	suite.mockRateRepo.On("ListExchangeRates", ctx, "USD", "INR", 30).Return(nil, nil).Once()

	rates, err := suite.service.ListSnapshots(ctx, "usd", 30)

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

// --- Run Test Suite ---
func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
