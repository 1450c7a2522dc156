package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

const wireTransferColumns = `id, sender_account_id, recipient_bank_code, recipient_account_number, recipient_name, amount::text, currency, reference_number, status, initiated_at, completed_at`

type WireTransferRepository struct {
	db dbtx
}

func NewWireTransferRepository(pool *pgxpool.Pool) *WireTransferRepository {
	return &WireTransferRepository{db: pool}
}

func (r *WireTransferRepository) Create(ctx context.Context, transfer *domain.WireTransfer) error {
	query := `
		INSERT INTO wire_transfers
			(sender_account_id, recipient_bank_code, recipient_account_number, recipient_name, amount, currency, reference_number, status, initiated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		transfer.SenderAccountID,
		transfer.RecipientBankCode,
		transfer.RecipientAccountNumber,
		transfer.RecipientName,
		transfer.Amount.StringFixed(2),
		transfer.Currency,
		transfer.ReferenceNumber,
		string(transfer.Status),
		transfer.InitiatedAt,
	).Scan(&transfer.ID)
	if err != nil {
		return fmt.Errorf("failed to create wire transfer: %w", err)
	}
	return nil
}

func (r *WireTransferRepository) GetByReference(ctx context.Context, referenceNumber string) (*domain.WireTransfer, error) {
	query := `SELECT ` + wireTransferColumns + ` FROM wire_transfers WHERE reference_number = $1`
	return r.scanTransfer(r.db.QueryRow(ctx, query, referenceNumber))
}

func (r *WireTransferRepository) ListBySender(ctx context.Context, senderAccountID int64) ([]domain.WireTransfer, error) {
	query := `SELECT ` + wireTransferColumns + ` FROM wire_transfers WHERE sender_account_id = $1 ORDER BY initiated_at DESC`
	return r.queryTransfers(ctx, query, senderAccountID)
}

func (r *WireTransferRepository) ListByStatus(ctx context.Context, status domain.TransferStatus) ([]domain.WireTransfer, error) {
	query := `SELECT ` + wireTransferColumns + ` FROM wire_transfers WHERE status = $1 ORDER BY initiated_at DESC`
	return r.queryTransfers(ctx, query, string(status))
}

func (r *WireTransferRepository) Update(ctx context.Context, transfer *domain.WireTransfer) error {
	query := `UPDATE wire_transfers SET status = $2, completed_at = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, transfer.ID, string(transfer.Status), transfer.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update wire transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}
	return nil
}

func (r *WireTransferRepository) WithTx(tx gateway.TransactionObject) gateway.WireTransferRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &WireTransferRepository{db: pgTx}
}

func (r *WireTransferRepository) queryTransfers(ctx context.Context, query string, args ...any) ([]domain.WireTransfer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wire transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.WireTransfer
	for rows.Next() {
		transfer, err := r.scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *transfer)
	}
	return transfers, rows.Err()
}

func (r *WireTransferRepository) scanTransfer(row pgx.Row) (*domain.WireTransfer, error) {
	var (
		transfer domain.WireTransfer
		amount   string
		status   string
	)
	err := row.Scan(
		&transfer.ID,
		&transfer.SenderAccountID,
		&transfer.RecipientBankCode,
		&transfer.RecipientAccountNumber,
		&transfer.RecipientName,
		&amount,
		&transfer.Currency,
		&transfer.ReferenceNumber,
		&status,
		&transfer.InitiatedAt,
		&transfer.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wire transfer: %w", err)
	}
	transfer.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount for wire transfer %d: %w", transfer.ID, err)
	}
	transfer.Status = domain.TransferStatus(status)
	return &transfer, nil
}
