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

type InitiateWireInput struct {
	SenderAccountID        int64
	RecipientBankCode      string
	RecipientAccountNumber string
	RecipientName          string
	Amount                 decimal.Decimal
	Currency               string
}

// WireTransferUseCase owns the deferred-debit lifecycle: initiation only
// validates and records intent; the sender is debited at completion, within
// the eligibility window. The recipient side belongs to the external rail.
type WireTransferUseCase struct {
	accounts  gateway.AccountRepository
	transfers gateway.WireTransferRepository
	txManager gateway.TransactionManager
	cache     gateway.Cache
	publisher gateway.EventPublisher
}

func NewWireTransfer(
	accounts gateway.AccountRepository,
	transfers gateway.WireTransferRepository,
	txManager gateway.TransactionManager,
	cache gateway.Cache,
	publisher gateway.EventPublisher,
) *WireTransferUseCase {
	return &WireTransferUseCase{
		accounts:  accounts,
		transfers: transfers,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
	}
}

// Initiate validates balance, status and currency, then records a PENDING
// transfer. No funds move and nothing is persisted when validation fails.
func (u *WireTransferUseCase) Initiate(ctx context.Context, input InitiateWireInput) (*WireTransferOutput, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	sender, err := u.accounts.GetByID(ctx, input.SenderAccountID)
	if err != nil {
		return nil, err
	}
	if !sender.IsActive() {
		return nil, domain.ErrAccountNotActive
	}
	if !domain.SameCurrency(sender.Currency, input.Currency) {
		return nil, domain.ErrCurrencyMismatch
	}
	if sender.Balance.LessThan(input.Amount) {
		return nil, domain.ErrInsufficientBalance
	}

	transfer := &domain.WireTransfer{
		SenderAccountID:        sender.ID,
		RecipientBankCode:      input.RecipientBankCode,
		RecipientAccountNumber: input.RecipientAccountNumber,
		RecipientName:          input.RecipientName,
		Amount:                 input.Amount,
		Currency:               input.Currency,
		ReferenceNumber:        domain.NewReference(domain.RefWire),
		Status:                 domain.TransferPending,
		InitiatedAt:            time.Now(),
	}
	if err := u.transfers.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("recording wire transfer: %w", err)
	}

	log.Info().
		Str("reference", transfer.ReferenceNumber).
		Int64("sender_id", sender.ID).
		Str("amount", input.Amount.StringFixed(2)).
		Msg("initiated wire transfer")
	return toWireTransferOutput(transfer), nil
}

// Complete debits the sender and marks the transfer COMPLETED. A transfer
// past its window is rejected as expired and left PENDING.
func (u *WireTransferUseCase) Complete(ctx context.Context, referenceNumber string) (*WireTransferOutput, error) {
	var (
		transfer *domain.WireTransfer
		sender   *domain.Account
	)
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		return u.txManager.Run(ctx, func(txCtx context.Context) error {
			tx, err := txObjectFrom(txCtx)
			if err != nil {
				return err
			}
			accounts := u.accounts.WithTx(tx)
			transfers := u.transfers.WithTx(tx)

			wt, err := transfers.GetByReference(txCtx, referenceNumber)
			if err != nil {
				return err
			}
			if err := wt.CanComplete(time.Now()); err != nil {
				return err
			}

			acc, err := accounts.GetByID(txCtx, wt.SenderAccountID)
			if err != nil {
				return err
			}
			// Funds were only reserved as intent at initiation; the balance
			// is re-checked here.
			if err := acc.Debit(wt.Amount); err != nil {
				return err
			}
			if err := accounts.Save(txCtx, acc); err != nil {
				return fmt.Errorf("saving account %d: %w", acc.ID, err)
			}

			now := time.Now()
			wt.Status = domain.TransferCompleted
			wt.CompletedAt = &now
			if err := transfers.Update(txCtx, wt); err != nil {
				return fmt.Errorf("updating wire transfer: %w", err)
			}

			transfer, sender = wt, acc
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateAccount(ctx, u.cache, sender)
	log.Info().Str("reference", transfer.ReferenceNumber).Msg("completed wire transfer")
	publishEvent(ctx, u.publisher, gateway.EventWireTransferCompleted, map[string]interface{}{
		"reference":    transfer.ReferenceNumber,
		"type":         "WIRE_TRANSFER",
		"from_account": sender.AccountNumber,
		"amount":       transfer.Amount.StringFixed(2),
		"status":       string(transfer.Status),
	})
	return toWireTransferOutput(transfer), nil
}

// Cancel is valid only while the transfer is PENDING.
func (u *WireTransferUseCase) Cancel(ctx context.Context, referenceNumber string) (*WireTransferOutput, error) {
	transfer, err := u.transfers.GetByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}
	if err := transfer.CanCancel(); err != nil {
		return nil, err
	}

	transfer.Status = domain.TransferCanceled
	if err := u.transfers.Update(ctx, transfer); err != nil {
		return nil, fmt.Errorf("updating wire transfer: %w", err)
	}

	log.Info().Str("reference", transfer.ReferenceNumber).Msg("canceled wire transfer")
	return toWireTransferOutput(transfer), nil
}

func (u *WireTransferUseCase) GetByReference(ctx context.Context, referenceNumber string) (*WireTransferOutput, error) {
	transfer, err := u.transfers.GetByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}
	return toWireTransferOutput(transfer), nil
}

func (u *WireTransferUseCase) ListBySender(ctx context.Context, senderAccountID int64) ([]WireTransferOutput, error) {
	transfers, err := u.transfers.ListBySender(ctx, senderAccountID)
	if err != nil {
		return nil, err
	}
	out := make([]WireTransferOutput, 0, len(transfers))
	for i := range transfers {
		out = append(out, *toWireTransferOutput(&transfers[i]))
	}
	return out, nil
}

func (u *WireTransferUseCase) ListPending(ctx context.Context) ([]WireTransferOutput, error) {
	transfers, err := u.transfers.ListByStatus(ctx, domain.TransferPending)
	if err != nil {
		return nil, err
	}
	out := make([]WireTransferOutput, 0, len(transfers))
	for i := range transfers {
		out = append(out, *toWireTransferOutput(&transfers[i]))
	}
	return out, nil
}
