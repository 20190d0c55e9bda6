package storefront

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input    string
		amount   float64
		currency string
	}{
		{"19,99€", 19.99, "EUR"},
		{"€19.99", 19.99, "EUR"},
		{"$59.99", 59.99, "USD"},
		{"£4.49", 4.49, "GBP"},
		{"1.299,00€", 1299.00, "EUR"},
		{"1,299.00 USD", 1299.00, "USD"},
		{"Free", 0, ""},
		{"  9,99 €  ", 9.99, "EUR"},
		{"12", 12, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, currency, err := ParseMoney(tt.input)
			if err != nil {
				t.Fatalf("ParseMoney(%q): %v", tt.input, err)
			}
			if amount != tt.amount {
				t.Errorf("amount = %v, want %v", amount, tt.amount)
			}
			if currency != tt.currency {
				t.Errorf("currency = %q, want %q", currency, tt.currency)
			}
		})
	}
}

func TestParseMoneyErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "coming soon", "€"} {
		if _, _, err := ParseMoney(input); err == nil {
			t.Errorf("ParseMoney(%q): expected error", input)
		}
	}
}
