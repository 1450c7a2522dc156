package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

type IssueCardInput struct {
	AccountID      int64
	CardHolderName string
	CardType       domain.CardType
	CreditLimit    decimal.Decimal
}

// CreditCardUseCase manages the card line of credit. Card charges consume
// the card's own available balance and never touch the linked account.
type CreditCardUseCase struct {
	accounts gateway.AccountRepository
	cards    gateway.CreditCardRepository
	cache    gateway.Cache
}

func NewCreditCard(
	accounts gateway.AccountRepository,
	cards gateway.CreditCardRepository,
	cache gateway.Cache,
) *CreditCardUseCase {
	return &CreditCardUseCase{
		accounts: accounts,
		cards:    cards,
		cache:    cache,
	}
}

func (u *CreditCardUseCase) Issue(ctx context.Context, input IssueCardInput) (*CreditCardOutput, error) {
	if err := domain.ValidateAmount(input.CreditLimit); err != nil {
		return nil, err
	}
	account, err := u.accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	card := &domain.CreditCard{
		CardNumber:       domain.GenerateCardNumber(input.CardType),
		CardHolderName:   input.CardHolderName,
		ExpiryDate:       time.Now().AddDate(3, 0, 0),
		CardType:         input.CardType,
		AccountID:        account.ID,
		Active:           true,
		CreditLimit:      input.CreditLimit,
		AvailableBalance: input.CreditLimit,
	}
	if err := u.cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("creating credit card: %w", err)
	}

	invalidate(ctx, u.cache, gateway.ActiveCardsKey(account.ID))
	log.Info().Int64("card_id", card.ID).Int64("account_id", account.ID).Msg("issued credit card")
	return toCreditCardOutput(card), nil
}

// Charge consumes available credit on an active card.
func (u *CreditCardUseCase) Charge(ctx context.Context, cardID int64, amount decimal.Decimal) (*CreditCardOutput, error) {
	card, err := u.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := card.Charge(amount); err != nil {
		return nil, err
	}
	if err := u.cards.Save(ctx, card); err != nil {
		return nil, fmt.Errorf("saving credit card: %w", err)
	}

	invalidate(ctx, u.cache, gateway.ActiveCardsKey(card.AccountID))
	log.Info().
		Int64("card_id", card.ID).
		Str("amount", amount.StringFixed(2)).
		Msg("processed card charge")
	return toCreditCardOutput(card), nil
}

func (u *CreditCardUseCase) Deactivate(ctx context.Context, cardID int64) error {
	card, err := u.cards.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	card.Active = false
	if err := u.cards.Save(ctx, card); err != nil {
		return fmt.Errorf("saving credit card: %w", err)
	}
	invalidate(ctx, u.cache, gateway.ActiveCardsKey(card.AccountID))
	return nil
}

func (u *CreditCardUseCase) ActiveCards(ctx context.Context, accountID int64) ([]CreditCardOutput, error) {
	key := gateway.ActiveCardsKey(accountID)
	var cached []CreditCardOutput
	if cacheLookup(ctx, u.cache, key, &cached) {
		return cached, nil
	}

	cards, err := u.cards.ListActiveByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]CreditCardOutput, 0, len(cards))
	for i := range cards {
		out = append(out, *toCreditCardOutput(&cards[i]))
	}
	cacheStore(ctx, u.cache, key, out, gateway.ActiveCardsTTL)
	return out, nil
}
