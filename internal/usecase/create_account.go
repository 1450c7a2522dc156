package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

type CreateAccountInput struct {
	UserID      int64
	AccountName string
	Currency    string
}

type CreateAccountUseCase struct {
	accounts gateway.AccountRepository
	cache    gateway.Cache
}

func NewCreateAccount(accounts gateway.AccountRepository, cache gateway.Cache) *CreateAccountUseCase {
	return &CreateAccountUseCase{accounts: accounts, cache: cache}
}

// Execute opens an account with a zero balance, ACTIVE status and a freshly
// generated account number. The store's unique constraint is the final word
// on number collisions.
func (u *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*AccountOutput, error) {
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	number, err := u.pickNumber(ctx)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		AccountNumber: number,
		AccountName:   input.AccountName,
		Balance:       decimal.Zero,
		Currency:      input.Currency,
		UserID:        input.UserID,
		Status:        domain.AccountActive,
	}
	if err := u.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	invalidate(ctx, u.cache, gateway.UserAccountsKey(input.UserID))
	log.Info().
		Int64("account_id", account.ID).
		Str("account_number", account.AccountNumber).
		Msg("created account")
	return toAccountOutput(account), nil
}

func (u *CreateAccountUseCase) pickNumber(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		number := domain.NewAccountNumber()
		taken, err := u.accounts.ExistsByNumber(ctx, number)
		if err != nil {
			return "", fmt.Errorf("checking account number: %w", err)
		}
		if !taken {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate an unused account number")
}
