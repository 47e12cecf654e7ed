package validation

// Request payload validators. Each one inspects the decoded JSON body
// and collects every violation before the caller responds; none of
// them fail fast on the first error.

// stringField returns the value of a non-empty string field.
func stringField(body map[string]any, key string) (string, bool) {
	v, ok := body[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// PaymentRequestErrors validates a charge payload. Exactly one of
// cardToken and cardDetails must be present.
func PaymentRequestErrors(body map[string]any) []string {
	var errs []string

	amount, ok := body["amount"].(float64)
	if !ok || amount <= 0 {
		errs = append(errs, "Amount must be a positive number")
	}
	if _, ok := stringField(body, "currency"); !ok {
		errs = append(errs, "Currency is required")
	}
	if _, ok := stringField(body, "userId"); !ok {
		errs = append(errs, "User ID is required")
	}
	if _, ok := stringField(body, "merchantName"); !ok {
		errs = append(errs, "Merchant name is required")
	}

	_, hasToken := stringField(body, "cardToken")
	_, hasDetails := body["cardDetails"]
	switch {
	case !hasToken && !hasDetails:
		errs = append(errs, "Either cardToken or cardDetails must be provided")
	case hasToken && hasDetails:
		errs = append(errs, "Only one of cardToken or cardDetails may be provided")
	}

	return errs
}

// CardDetailsFieldErrors validates the shape of a cardDetails object.
// All five fields are required strings.
func CardDetailsFieldErrors(card map[string]any) []string {
	var errs []string

	required := []struct {
		key     string
		message string
	}{
		{"cardNumber", "Card number is required"},
		{"expiryMonth", "Expiry month is required"},
		{"expiryYear", "Expiry year is required"},
		{"cvv", "CVV is required"},
		{"cardholderName", "Cardholder name is required"},
	}
	for _, field := range required {
		if _, ok := stringField(card, field.key); !ok {
			errs = append(errs, field.message)
		}
	}

	return errs
}

// RefundRequestErrors validates a refund payload.
func RefundRequestErrors(body map[string]any) []string {
	var errs []string

	if _, ok := stringField(body, "transactionId"); !ok {
		errs = append(errs, "Transaction ID is required")
	}
	if _, ok := stringField(body, "reason"); !ok {
		errs = append(errs, "Refund reason is required")
	}

	return errs
}
