package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

// AccountStatusUseCase toggles accounts between ACTIVE and INACTIVE.
// Accounts are never deleted.
type AccountStatusUseCase struct {
	accounts gateway.AccountRepository
	cache    gateway.Cache
}

func NewAccountStatus(accounts gateway.AccountRepository, cache gateway.Cache) *AccountStatusUseCase {
	return &AccountStatusUseCase{accounts: accounts, cache: cache}
}

func (u *AccountStatusUseCase) Activate(ctx context.Context, accountID int64) error {
	return u.set(ctx, accountID, domain.AccountActive)
}

func (u *AccountStatusUseCase) Deactivate(ctx context.Context, accountID int64) error {
	return u.set(ctx, accountID, domain.AccountInactive)
}

func (u *AccountStatusUseCase) set(ctx context.Context, accountID int64, status domain.AccountStatus) error {
	var account *domain.Account
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		acc, err := u.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		acc.Status = status
		if err := u.accounts.Save(ctx, acc); err != nil {
			return fmt.Errorf("saving account %d: %w", acc.ID, err)
		}
		account = acc
		return nil
	})
	if err != nil {
		return err
	}

	invalidateAccount(ctx, u.cache, account)
	log.Info().Int64("account_id", accountID).Str("status", string(status)).Msg("updated account status")
	return nil
}
