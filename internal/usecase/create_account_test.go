package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

func TestCreateAccount(t *testing.T) {
	e := newEnv()
	uc := NewCreateAccount(e.accounts, e.cache)

	out, err := uc.Execute(context.Background(), CreateAccountInput{
		UserID:      7,
		AccountName: "Checking",
		Currency:    "USD",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Balance.Equal(decimal.Zero) {
		t.Errorf("balance = %s, new accounts open at zero", out.Balance)
	}
	if out.Status != string(domain.AccountActive) {
		t.Errorf("status = %s, want ACTIVE", out.Status)
	}
	if len(out.AccountNumber) != 12 {
		t.Errorf("account number %q length = %d, want 12", out.AccountNumber, len(out.AccountNumber))
	}
	if out.UserID != 7 {
		t.Errorf("user id = %d, want 7", out.UserID)
	}
}

func TestCreateAccountInvalidCurrency(t *testing.T) {
	e := newEnv()
	uc := NewCreateAccount(e.accounts, e.cache)

	for _, code := range []string{"", "US", "DOLLARS", "U5D"} {
		_, err := uc.Execute(context.Background(), CreateAccountInput{
			UserID:      1,
			AccountName: "Checking",
			Currency:    code,
		})
		if !errors.Is(err, domain.ErrInvalidCurrency) {
			t.Errorf("%q: expected ErrInvalidCurrency, got %v", code, err)
		}
	}
	if len(e.accounts.byID) != 0 {
		t.Error("account persisted despite invalid currency")
	}
}

func TestCreateAccountUniqueNumbers(t *testing.T) {
	e := newEnv()
	uc := NewCreateAccount(e.accounts, e.cache)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		out, err := uc.Execute(context.Background(), CreateAccountInput{
			UserID:      1,
			AccountName: "Checking",
			Currency:    "USD",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[out.AccountNumber] {
			t.Fatalf("duplicate account number %s", out.AccountNumber)
		}
		seen[out.AccountNumber] = true
	}
}
