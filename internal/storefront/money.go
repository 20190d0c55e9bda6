package storefront

import (
	"fmt"
	"strconv"
	"strings"
)

var currencySymbols = map[rune]string{
	'€': "EUR",
	'$': "USD",
	'£': "GBP",
}

// ParseMoney extracts an amount and currency from storefront price text.
// It accepts both comma and dot decimal separators, leading or trailing
// currency symbols, and treats "free" as a zero price.
func ParseMoney(text string) (float64, string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, " ", " "))
	if cleaned == "" {
		return 0, "", fmt.Errorf("empty price text")
	}
	if strings.EqualFold(cleaned, "free") || strings.EqualFold(cleaned, "gratuit") {
		return 0, "", nil
	}

	currency := ""
	var digits strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			digits.WriteRune(r)
		default:
			if code, ok := currencySymbols[r]; ok && currency == "" {
				currency = code
			}
		}
	}
	if currency == "" {
		for _, code := range []string{"EUR", "USD", "GBP"} {
			if strings.Contains(strings.ToUpper(cleaned), code) {
				currency = code
				break
			}
		}
	}

	raw := digits.String()
	if raw == "" {
		return 0, "", fmt.Errorf("no amount in price text %q", text)
	}

	// With both separators present, the last one is the decimal point.
	// A lone comma is a European decimal separator.
	lastComma := strings.LastIndex(raw, ",")
	lastDot := strings.LastIndex(raw, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.Replace(raw, ",", ".", 1)
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(raw, ",") > 1 {
			raw = strings.ReplaceAll(raw, ",", "")
		} else {
			raw = strings.Replace(raw, ",", ".", 1)
		}
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse amount %q: %w", text, err)
	}
	if amount < 0 {
		return 0, "", fmt.Errorf("negative amount in price text %q", text)
	}
	return amount, currency, nil
}
