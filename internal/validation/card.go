// Package validation implements card and request payload validation.
// Card checks are pure functions over input strings; the current time
// is passed in explicitly so expiry checks stay deterministic in tests.
package validation

import (
	"strconv"
	"strings"
	"time"

	"campuswallet/internal/models"
)

const (
	minCardLength = 13
	maxCardLength = 19
)

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCardNumber reports whether a card number passes the Luhn check.
// Non-digits are stripped first; lengths outside [13,19] are rejected.
func ValidCardNumber(number string) bool {
	cleaned := digitsOnly(number)
	if len(cleaned) < minCardLength || len(cleaned) > maxCardLength {
		return false
	}

	var sum int
	shouldDouble := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}

	return sum%10 == 0
}

// CardBrand classifies a card number by its prefix.
func CardBrand(number string) string {
	cleaned := digitsOnly(number)

	switch {
	case strings.HasPrefix(cleaned, "4"):
		return models.BrandVisa
	case len(cleaned) >= 2 && cleaned[0] == '5' && cleaned[1] >= '1' && cleaned[1] <= '5':
		return models.BrandMastercard
	case strings.HasPrefix(cleaned, "34"), strings.HasPrefix(cleaned, "37"):
		return models.BrandAmex
	case strings.HasPrefix(cleaned, "60"), strings.HasPrefix(cleaned, "65"):
		return models.BrandDiscover
	default:
		return models.BrandUnknown
	}
}

// ValidExpiry reports whether a month/year pair is a valid, unexpired
// expiry date relative to now. Years are compared on their last two
// digits, so the comparison breaks at the turn of each century; this is
// a known limitation of the card-entry format, kept as-is.
func ValidExpiry(month, year string, now time.Time) bool {
	expMonth, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || expMonth < 1 || expMonth > 12 {
		return false
	}

	expYear, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return false
	}
	expYear %= 100

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if expYear < currentYear {
		return false
	}
	if expYear == currentYear && expMonth < currentMonth {
		return false
	}
	return true
}

// ValidCVV reports whether the CVV has an acceptable length.
func ValidCVV(cvv string) bool {
	return len(cvv) >= 3 && len(cvv) <= 4
}

// ValidateCardDetails runs every card check and returns all violated
// rules, not just the first.
func ValidateCardDetails(d models.CardDetails, now time.Time) (bool, []string) {
	var errs []string

	if !ValidCardNumber(d.CardNumber) {
		errs = append(errs, "Invalid card number")
	}
	if !ValidExpiry(d.ExpiryMonth, d.ExpiryYear, now) {
		errs = append(errs, "Card has expired or invalid expiry date")
	}
	if !ValidCVV(d.CVV) {
		errs = append(errs, "Invalid CVV")
	}
	if len(strings.TrimSpace(d.CardholderName)) < 3 {
		errs = append(errs, "Cardholder name is required")
	}

	return len(errs) == 0, errs
}

// FormatCardNumber groups digits into 4-character chunks for display.
func FormatCardNumber(number string) string {
	cleaned := digitsOnly(number)
	var groups []string
	for len(cleaned) > 4 {
		groups = append(groups, cleaned[:4])
		cleaned = cleaned[4:]
	}
	if cleaned != "" {
		groups = append(groups, cleaned)
	}
	return strings.Join(groups, " ")
}

// MaskCardNumber hides all but the last 4 digits.
func MaskCardNumber(number string) string {
	cleaned := digitsOnly(number)
	last4 := cleaned
	if len(cleaned) > 4 {
		last4 = cleaned[len(cleaned)-4:]
	}
	return "•••• •••• •••• " + last4
}

// Last4 returns the trailing four digits of a card number.
func Last4(number string) string {
	cleaned := digitsOnly(number)
	if len(cleaned) <= 4 {
		return cleaned
	}
	return cleaned[len(cleaned)-4:]
}
