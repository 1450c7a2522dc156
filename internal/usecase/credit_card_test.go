package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

func newCardUC(e *env) *CreditCardUseCase {
	return NewCreditCard(e.accounts, e.cards, e.cache)
}

func issueCard(t *testing.T, e *env, uc *CreditCardUseCase, accountID int64, limit string) *CreditCardOutput {
	t.Helper()
	out, err := uc.Issue(context.Background(), IssueCardInput{
		AccountID:      accountID,
		CardHolderName: "Jordan Doe",
		CardType:       domain.Visa,
		CreditLimit:    decimal.RequireFromString(limit),
	})
	if err != nil {
		t.Fatalf("issuing card: %v", err)
	}
	return out
}

func TestIssueCard(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "0.00", "USD", domain.AccountActive)

	out := issueCard(t, e, newCardUC(e), acc.ID, "5000.00")

	if !domain.ValidateCardNumber(out.CardNumber) {
		t.Errorf("card number %q fails the mod 10 check", out.CardNumber)
	}
	if !out.AvailableBalance.Equal(out.CreditLimit) {
		t.Errorf("available = %s, want the full limit %s", out.AvailableBalance, out.CreditLimit)
	}
	if !out.Active {
		t.Error("new card not active")
	}
	if out.ExpiryDate.Before(time.Now().AddDate(2, 11, 0)) {
		t.Errorf("expiry %s, want about three years out", out.ExpiryDate)
	}
}

func TestIssueCardRejections(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "0.00", "USD", domain.AccountActive)
	uc := newCardUC(e)

	_, err := uc.Issue(context.Background(), IssueCardInput{
		AccountID:      acc.ID,
		CardHolderName: "Jordan Doe",
		CardType:       domain.Visa,
		CreditLimit:    decimal.Zero,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero limit, got %v", err)
	}

	_, err = uc.Issue(context.Background(), IssueCardInput{
		AccountID:      999,
		CardHolderName: "Jordan Doe",
		CardType:       domain.Visa,
		CreditLimit:    decimal.RequireFromString("1000.00"),
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestChargeCard(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "250.00", "USD", domain.AccountActive)
	uc := newCardUC(e)
	card := issueCard(t, e, uc, acc.ID, "1000.00")

	out, err := uc.Charge(context.Background(), card.ID, decimal.RequireFromString("300.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.AvailableBalance.Equal(decimal.RequireFromString("700.00")) {
		t.Errorf("available = %s, want 700.00", out.AvailableBalance)
	}
	// The linked account's balance is a separate line of credit.
	if got := e.accounts.get(acc.ID).Balance; !got.Equal(decimal.RequireFromString("250.00")) {
		t.Errorf("card charge touched the account balance: %s", got)
	}

	if _, err := uc.Charge(context.Background(), card.ID, decimal.RequireFromString("700.01")); !errors.Is(err, domain.ErrInsufficientCredit) {
		t.Fatalf("expected ErrInsufficientCredit, got %v", err)
	}
}

func TestChargeDeactivatedCard(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "0.00", "USD", domain.AccountActive)
	uc := newCardUC(e)
	card := issueCard(t, e, uc, acc.ID, "1000.00")

	if err := uc.Deactivate(context.Background(), card.ID); err != nil {
		t.Fatalf("deactivating: %v", err)
	}
	if _, err := uc.Charge(context.Background(), card.ID, decimal.RequireFromString("10.00")); !errors.Is(err, domain.ErrCardNotActive) {
		t.Fatalf("expected ErrCardNotActive, got %v", err)
	}
}

func TestActiveCardsExcludesDeactivated(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "0.00", "USD", domain.AccountActive)
	uc := newCardUC(e)

	kept := issueCard(t, e, uc, acc.ID, "1000.00")
	dropped := issueCard(t, e, uc, acc.ID, "2000.00")
	if err := uc.Deactivate(context.Background(), dropped.ID); err != nil {
		t.Fatalf("deactivating: %v", err)
	}

	cards, err := uc.ActiveCards(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != kept.ID {
		t.Errorf("active cards = %+v, want only card %d", cards, kept.ID)
	}
}
