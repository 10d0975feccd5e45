package mapping

import (
	"testing"
	"time"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderMapping_NullableFinancials(t *testing.T) {
	unpriced := domain.Order{OrderID: "o1", ForeignAmount: decimal.NewFromInt(10)}
	m := ToModelOrder(unpriced)
	assert.False(t, m.TotalPayable.Valid)
	assert.Nil(t, ToDomainOrder(m).TotalPayable)

	total := decimal.RequireFromString("850620.00")
	unpriced.TotalPayable = &total
	back := ToDomainOrder(ToModelOrder(unpriced))
	if assert.NotNil(t, back.TotalPayable) {
		assert.True(t, back.TotalPayable.Equal(total))
	}
}

func TestUserMapping_RefreshToken(t *testing.T) {
	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u := domain.User{UserID: "u1", Role: domain.RoleAgent, RefreshTokenHash: "abc", RefreshTokenExpiryTime: &exp}

	m := ToModelUser(u)
	assert.True(t, m.RefreshTokenHash.Valid)
	assert.Equal(t, "AGENT", m.Role)

	back := ToDomainUser(m)
	assert.Equal(t, "abc", back.RefreshTokenHash)
	assert.Equal(t, exp, *back.RefreshTokenExpiryTime)

	m = ToModelUser(domain.User{UserID: "u2"})
	assert.False(t, m.RefreshTokenHash.Valid)
	assert.False(t, m.RefreshTokenExpiryTime.Valid)
}
