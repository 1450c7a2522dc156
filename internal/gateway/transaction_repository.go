package gateway

import (
	"context"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

// TransactionRepository owns the immutable ledger records. Rows are append
// only; the single permitted mutation is flipping a reversed original's
// status to REVERSED, which UpdateStatus exists for.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ListRecent(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error)
	SearchByReference(ctx context.Context, reference string) ([]domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error

	WithTx(tx TransactionObject) TransactionRepository
}
