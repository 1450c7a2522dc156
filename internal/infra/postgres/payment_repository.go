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

const billPaymentColumns = `id, payer_account_id, biller_code, customer_reference, amount::text, receipt_number, payment_date`

type BillPaymentRepository struct {
	db dbtx
}

func NewBillPaymentRepository(pool *pgxpool.Pool) *BillPaymentRepository {
	return &BillPaymentRepository{db: pool}
}

func (r *BillPaymentRepository) Create(ctx context.Context, payment *domain.BillPayment) error {
	query := `
		INSERT INTO bill_payments (payer_account_id, biller_code, customer_reference, amount, receipt_number, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		payment.PayerAccountID,
		payment.BillerCode,
		payment.CustomerReference,
		payment.Amount.StringFixed(2),
		payment.ReceiptNumber,
		payment.PaymentDate,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("failed to create bill payment: %w", err)
	}
	return nil
}

func (r *BillPaymentRepository) GetByReceipt(ctx context.Context, receiptNumber string) (*domain.BillPayment, error) {
	query := `SELECT ` + billPaymentColumns + ` FROM bill_payments WHERE receipt_number = $1`
	return r.scanPayment(r.db.QueryRow(ctx, query, receiptNumber))
}

func (r *BillPaymentRepository) ListByAccount(ctx context.Context, payerAccountID int64) ([]domain.BillPayment, error) {
	query := `SELECT ` + billPaymentColumns + ` FROM bill_payments WHERE payer_account_id = $1 ORDER BY payment_date DESC`
	rows, err := r.db.Query(ctx, query, payerAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.BillPayment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

func (r *BillPaymentRepository) WithTx(tx gateway.TransactionObject) gateway.BillPaymentRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &BillPaymentRepository{db: pgTx}
}

func (r *BillPaymentRepository) scanPayment(row pgx.Row) (*domain.BillPayment, error) {
	var (
		payment domain.BillPayment
		amount  string
	)
	err := row.Scan(
		&payment.ID,
		&payment.PayerAccountID,
		&payment.BillerCode,
		&payment.CustomerReference,
		&amount,
		&payment.ReceiptNumber,
		&payment.PaymentDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill payment: %w", err)
	}
	payment.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount for bill payment %d: %w", payment.ID, err)
	}
	return &payment, nil
}

const creditCardColumns = `id, card_number, card_holder_name, expiry_date, card_type, account_id, active, credit_limit::text, available_balance::text`

type CreditCardRepository struct {
	db dbtx
}

func NewCreditCardRepository(pool *pgxpool.Pool) *CreditCardRepository {
	return &CreditCardRepository{db: pool}
}

func (r *CreditCardRepository) Create(ctx context.Context, card *domain.CreditCard) error {
	query := `
		INSERT INTO credit_cards (card_number, card_holder_name, expiry_date, card_type, account_id, active, credit_limit, available_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		card.CardNumber,
		card.CardHolderName,
		card.ExpiryDate,
		string(card.CardType),
		card.AccountID,
		card.Active,
		card.CreditLimit.StringFixed(2),
		card.AvailableBalance.StringFixed(2),
	).Scan(&card.ID)
	if err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}
	return nil
}

func (r *CreditCardRepository) GetByID(ctx context.Context, id int64) (*domain.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE id = $1`
	return r.scanCard(r.db.QueryRow(ctx, query, id))
}

func (r *CreditCardRepository) ListActiveByAccount(ctx context.Context, accountID int64) ([]domain.CreditCard, error) {
	query := `SELECT ` + creditCardColumns + ` FROM credit_cards WHERE account_id = $1 AND active ORDER BY id`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.CreditCard
	for rows.Next() {
		card, err := r.scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func (r *CreditCardRepository) Save(ctx context.Context, card *domain.CreditCard) error {
	query := `
		UPDATE credit_cards
		SET card_holder_name = $2, active = $3, credit_limit = $4, available_balance = $5
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		card.ID,
		card.CardHolderName,
		card.Active,
		card.CreditLimit.StringFixed(2),
		card.AvailableBalance.StringFixed(2),
	)
	if err != nil {
		return fmt.Errorf("failed to save credit card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *CreditCardRepository) WithTx(tx gateway.TransactionObject) gateway.CreditCardRepository {
	pgTx, ok := tx.(pgx.Tx)
	if !ok {
		return r
	}
	return &CreditCardRepository{db: pgTx}
}

func (r *CreditCardRepository) scanCard(row pgx.Row) (*domain.CreditCard, error) {
	var (
		card             domain.CreditCard
		cardType         string
		creditLimit      string
		availableBalance string
	)
	err := row.Scan(
		&card.ID,
		&card.CardNumber,
		&card.CardHolderName,
		&card.ExpiryDate,
		&cardType,
		&card.AccountID,
		&card.Active,
		&creditLimit,
		&availableBalance,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}
	card.CardType = domain.CardType(cardType)
	card.CreditLimit, err = decimal.NewFromString(creditLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid credit limit for card %d: %w", card.ID, err)
	}
	card.AvailableBalance, err = decimal.NewFromString(availableBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid available balance for card %d: %w", card.ID, err)
	}
	return &card, nil
}
