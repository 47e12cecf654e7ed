package validation

import (
	"testing"
	"time"

	"campuswallet/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"known valid visa", "4111111111111111", true},
		{"luhn failure", "4111111111111112", false},
		{"valid with spaces", "4111 1111 1111 1111", true},
		{"valid with dashes", "4111-1111-1111-1111", true},
		{"valid mastercard", "5500005555555559", true},
		{"valid amex 15 digits", "378282246310005", true},
		{"too short", "411111111111", false},
		{"too long", "41111111111111111111", false},
		{"empty", "", false},
		{"letters only", "abcdefghijklmn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCardNumber(tt.number))
		})
	}
}

func TestCardBrand(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"4111111111111111", models.BrandVisa},
		{"5111111111111111", models.BrandMastercard},
		{"5511111111111111", models.BrandMastercard},
		{"5611111111111111", models.BrandUnknown},
		{"341111111111111", models.BrandAmex},
		{"371111111111111", models.BrandAmex},
		{"6011111111111117", models.BrandDiscover},
		{"6511111111111111", models.BrandDiscover},
		{"9111111111111111", models.BrandUnknown},
		{"", models.BrandUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, CardBrand(tt.number))
		})
	}
}

func TestValidExpiry(t *testing.T) {
	// Fixed clock: June 2025.
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		month string
		year  string
		want  bool
	}{
		{"current month", "06", "25", true},
		{"previous month same year", "05", "25", false},
		{"next year", "01", "26", true},
		{"bad month", "13", "25", false},
		{"zero month", "00", "25", false},
		{"past year", "12", "24", false},
		{"four digit year", "06", "2025", true},
		{"non-numeric month", "ab", "25", false},
		{"non-numeric year", "06", "xx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidExpiry(tt.month, tt.year, now))
		})
	}
}

func TestValidCVV(t *testing.T) {
	assert.True(t, ValidCVV("123"))
	assert.True(t, ValidCVV("1234"))
	assert.False(t, ValidCVV("12"))
	assert.False(t, ValidCVV("12345"))
	assert.False(t, ValidCVV(""))
}

func TestValidateCardDetails(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("valid card has no errors", func(t *testing.T) {
		ok, errs := ValidateCardDetails(models.CardDetails{
			CardNumber:     "4111111111111111",
			ExpiryMonth:    "12",
			ExpiryYear:     "26",
			CVV:            "123",
			CardholderName: "Ada Lovelace",
		}, now)
		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("collects every violation", func(t *testing.T) {
		ok, errs := ValidateCardDetails(models.CardDetails{
			CardNumber:     "1234",
			ExpiryMonth:    "13",
			ExpiryYear:     "20",
			CVV:            "1",
			CardholderName: "A",
		}, now)
		assert.False(t, ok)
		assert.Len(t, errs, 4)
		assert.Contains(t, errs, "Invalid card number")
		assert.Contains(t, errs, "Card has expired or invalid expiry date")
		assert.Contains(t, errs, "Invalid CVV")
		assert.Contains(t, errs, "Cardholder name is required")
	})

	t.Run("whitespace name rejected", func(t *testing.T) {
		ok, errs := ValidateCardDetails(models.CardDetails{
			CardNumber:     "4111111111111111",
			ExpiryMonth:    "12",
			ExpiryYear:     "26",
			CVV:            "123",
			CardholderName: "   ",
		}, now)
		assert.False(t, ok)
		assert.Equal(t, []string{"Cardholder name is required"}, errs)
	})
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111111111111111"))
	assert.Equal(t, "3782 8224 6310 005", FormatCardNumber("378282246310005"))
	assert.Equal(t, "4111", FormatCardNumber("4111"))
	assert.Equal(t, "", FormatCardNumber(""))
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "•••• •••• •••• 1111", MaskCardNumber("4111111111111111"))
	assert.Equal(t, "•••• •••• •••• 0005", MaskCardNumber("378282246310005"))
}

func TestLast4(t *testing.T) {
	assert.Equal(t, "1111", Last4("4111111111111111"))
	assert.Equal(t, "123", Last4("123"))
}
