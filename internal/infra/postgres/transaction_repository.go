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

const transactionColumns = `id, amount::text, type, status, reference, source_account_id, target_account_id, description, created_at`

type TransactionRepository struct {
	db dbtx
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: pool}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (amount, type, status, reference, source_account_id, target_account_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		transaction.Amount.StringFixed(2),
		string(transaction.Type),
		string(transaction.Status),
		transaction.Reference,
		transaction.SourceAccountID,
		transaction.TargetAccountID,
		transaction.Description,
	).Scan(&transaction.ID, &transaction.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.db.QueryRow(ctx, query, id))
}

// ListRecent returns the newest movements touching the account, as source or
// target, newest first.
func (r *TransactionRepository) ListRecent(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + qualifiedTransactionColumns + `
		FROM transactions t
		JOIN accounts s ON s.id = t.source_account_id
		LEFT JOIN accounts tg ON tg.id = t.target_account_id
		WHERE s.account_number = $1 OR tg.account_number = $1
		ORDER BY t.created_at DESC
		LIMIT $2
	`
	return r.queryTransactions(ctx, query, accountNumber, limit)
}

func (r *TransactionRepository) SearchByReference(ctx context.Context, reference string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`
	return r.queryTransactions(ctx, query, reference)
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE transactions SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) WithTx(tx gateway.TransactionObject) gateway.TransactionRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &TransactionRepository{db: pgTx}
}

const qualifiedTransactionColumns = `t.id, t.amount::text, t.type, t.status, t.reference, t.source_account_id, t.target_account_id, t.description, t.created_at`

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		amount      string
		txType      string
		status      string
	)
	err := row.Scan(
		&transaction.ID,
		&amount,
		&txType,
		&status,
		&transaction.Reference,
		&transaction.SourceAccountID,
		&transaction.TargetAccountID,
		&transaction.Description,
		&transaction.Timestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	transaction.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount for transaction %d: %w", transaction.ID, err)
	}
	transaction.Type = domain.TransactionType(txType)
	transaction.Status = domain.TransactionStatus(status)
	return &transaction, nil
}
