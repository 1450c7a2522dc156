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

const accountColumns = `id, account_number, account_name, balance::text, currency, user_id, status, version, created_at, updated_at`

// AccountRepository implements gateway.AccountRepository using pgx/v5.
type AccountRepository struct {
	db dbtx
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: pool}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (account_number, account_name, balance, currency, user_id, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
		RETURNING id, version, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		account.AccountNumber,
		account.AccountName,
		account.Balance.StringFixed(2),
		account.Currency,
		account.UserID,
		string(account.Status),
	).Scan(&account.ID, &account.Version, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return r.scanAccount(r.db.QueryRow(ctx, query, accountNumber))
}

func (r *AccountRepository) ExistsByNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// Save persists balance and status with a compare-and-swap on the version
// column. Zero rows affected means a concurrent writer won; the caller gets
// a conflict error and decides whether to refetch and retry.
func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $1, status = $2, version = version + 1, updated_at = now()
		WHERE id = $3 AND version = $4
	`
	tag, err := r.db.Exec(ctx, query,
		account.Balance.StringFixed(2),
		string(account.Status),
		account.ID,
		account.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	account.Version++
	return nil
}

func (r *AccountRepository) WithTx(tx gateway.TransactionObject) gateway.AccountRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &AccountRepository{db: pgTx}
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance string
		status  string
	)
	err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.AccountName,
		&balance,
		&account.Currency,
		&account.UserID,
		&status,
		&account.Version,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	account.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance for account %d: %w", account.ID, err)
	}
	account.Status = domain.AccountStatus(status)
	return &account, nil
}
