package gateway

import (
	"context"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

// AccountRepository is the persistence contract for accounts. Save performs
// an optimistic compare-and-swap on the version counter and must return
// domain.ErrVersionConflict when a concurrent writer won; the caller decides
// whether to refetch and retry.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	ExistsByNumber(ctx context.Context, accountNumber string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)

	// Save persists balance and status. The account number is never updated.
	Save(ctx context.Context, account *domain.Account) error

	// WithTx returns a copy of the repository bound to an open transaction,
	// so a use case can enlist it in a unit of work.
	WithTx(tx TransactionObject) AccountRepository
}
