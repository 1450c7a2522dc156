package gateway

import (
	"context"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

type WireTransferRepository interface {
	Create(ctx context.Context, transfer *domain.WireTransfer) error
	GetByReference(ctx context.Context, referenceNumber string) (*domain.WireTransfer, error)
	ListBySender(ctx context.Context, senderAccountID int64) ([]domain.WireTransfer, error)
	ListByStatus(ctx context.Context, status domain.TransferStatus) ([]domain.WireTransfer, error)

	// Update persists status and completion timestamp changes.
	Update(ctx context.Context, transfer *domain.WireTransfer) error

	WithTx(tx TransactionObject) WireTransferRepository
}
