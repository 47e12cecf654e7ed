package walletclient

import (
	"time"

	"campuswallet/internal/models"
	"campuswallet/internal/validation"
)

// ValidCardNumber reports whether a card number passes the Luhn check.
// Non-digits are stripped; lengths outside [13,19] are rejected.
func ValidCardNumber(number string) bool {
	return validation.ValidCardNumber(number)
}

// CardBrand classifies a card number by its prefix: visa, mastercard,
// amex, discover or unknown.
func CardBrand(number string) string {
	return validation.CardBrand(number)
}

// ValidExpiry reports whether a month/year pair is a valid, unexpired
// expiry date. Years are compared on their last two digits.
func ValidExpiry(month, year string) bool {
	return validation.ValidExpiry(month, year, time.Now())
}

// ValidCVV reports whether the CVV has an acceptable length.
func ValidCVV(cvv string) bool {
	return validation.ValidCVV(cvv)
}

// ValidateCardDetails runs every card check and returns all violated
// rules, not just the first.
func ValidateCardDetails(d CardDetails) (bool, []string) {
	return validation.ValidateCardDetails(toModelCard(d), time.Now())
}

// FormatCardNumber groups digits into 4-character chunks for display.
func FormatCardNumber(number string) string {
	return validation.FormatCardNumber(number)
}

// MaskCardNumber hides all but the last 4 digits.
func MaskCardNumber(number string) string {
	return validation.MaskCardNumber(number)
}

func toModelCard(d CardDetails) models.CardDetails {
	card := models.CardDetails{
		CardNumber:     d.CardNumber,
		ExpiryMonth:    d.ExpiryMonth,
		ExpiryYear:     d.ExpiryYear,
		CVV:            d.CVV,
		CardholderName: d.CardholderName,
	}
	if d.BillingAddress != nil {
		card.BillingAddress = &models.BillingAddress{
			Line1:      d.BillingAddress.Line1,
			Line2:      d.BillingAddress.Line2,
			City:       d.BillingAddress.City,
			State:      d.BillingAddress.State,
			PostalCode: d.BillingAddress.PostalCode,
			Country:    d.BillingAddress.Country,
		}
	}
	return card
}
