package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	PAN      string `validate:"pan"`
	Currency string `validate:"supported_currency"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidators(v))

	assert.NoError(t, v.Struct(sample{PAN: "ABCDE1234F", Currency: "USD"}))
	assert.NoError(t, v.Struct(sample{PAN: "abcde1234f", Currency: "gbp"}))
	assert.Error(t, v.Struct(sample{PAN: "ABCD1234F", Currency: "USD"}))
	assert.Error(t, v.Struct(sample{PAN: "ABCDE1234F", Currency: "XYZ"}))
}

func TestIsValidPAN(t *testing.T) {
	assert.True(t, IsValidPAN(" AAAAA9999A "))
	assert.False(t, IsValidPAN("AAAAA99999"))
	assert.False(t, IsValidPAN(""))
}

func TestSanitizeText(t *testing.T) {
	tests := map[string]string{
		"  plain note ":                       "plain note",
		"<b>urgent</b> please":                "urgent please",
		`<script>alert("x")</script>checked`:  "checked",
		"R&amp;D fees":                        "R&D fees",
		`<a href="javascript:alert(1)">x</a>`: "x",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeText(in), in)
	}

	assert.Nil(t, SanitizeTextPtr(nil))
	in := "<i>ok</i>"
	assert.Equal(t, "ok", *SanitizeTextPtr(&in))
}
