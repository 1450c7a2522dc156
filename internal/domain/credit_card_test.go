package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateCardNumber(t *testing.T) {
	for i := 0; i < 50; i++ {
		visa := GenerateCardNumber(Visa)
		if !strings.HasPrefix(visa, "4") {
			t.Errorf("visa number %q does not lead with 4", visa)
		}
		if !ValidateCardNumber(visa) {
			t.Errorf("visa number %q fails the mod 10 check", visa)
		}

		mc := GenerateCardNumber(Mastercard)
		if mc[0] != '5' || mc[1] < '1' || mc[1] > '5' {
			t.Errorf("mastercard number %q does not lead with 51-55", mc)
		}
		if !ValidateCardNumber(mc) {
			t.Errorf("mastercard number %q fails the mod 10 check", mc)
		}
	}
}

func TestGenerateCardNumberFormat(t *testing.T) {
	n := GenerateCardNumber(Visa)
	parts := strings.Split(n, "-")
	if len(parts) != 4 {
		t.Fatalf("number %q not in four groups", n)
	}
	for _, p := range parts {
		if len(p) != 4 {
			t.Errorf("group %q length = %d, want 4", p, len(p))
		}
	}
}

func TestValidateCardNumber(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"4532-0151-1283-0366", true},
		{"4532 0151 1283 0366", true},
		{"4532015112830366", true},
		{"4532015112830367", false}, // bad check digit
		{"1234", false},             // too short
		{"abcd-efgh-ijkl-mnop", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateCardNumber(tc.in); got != tc.ok {
			t.Errorf("ValidateCardNumber(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestCharge(t *testing.T) {
	card := &CreditCard{
		Active:           true,
		CreditLimit:      decimal.RequireFromString("1000.00"),
		AvailableBalance: decimal.RequireFromString("100.00"),
	}

	if err := card.Charge(decimal.RequireFromString("40.00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !card.AvailableBalance.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("available = %s, want 60.00", card.AvailableBalance)
	}

	if err := card.Charge(decimal.RequireFromString("60.01")); !errors.Is(err, ErrInsufficientCredit) {
		t.Fatalf("expected ErrInsufficientCredit, got %v", err)
	}

	card.Active = false
	if err := card.Charge(decimal.RequireFromString("1.00")); !errors.Is(err, ErrCardNotActive) {
		t.Fatalf("expected ErrCardNotActive, got %v", err)
	}
}
