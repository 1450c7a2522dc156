package gateway

import (
	"context"
	"fmt"
	"time"
)

// Cache is a best-effort key-value store holding copies of account state.
// It is never authoritative: a read failure degrades to a store read and a
// write failure is logged, not surfaced. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TTLs differ by volatility of the cached value.
const (
	BalanceTTL      = 5 * time.Minute
	DetailsTTL      = 30 * time.Minute
	UserAccountsTTL = time.Hour
	RecentTxnsTTL   = 15 * time.Minute
	TransactionTTL  = time.Hour
	ReceiptTTL      = 30 * time.Minute
	ActiveCardsTTL  = 2 * time.Hour
)

// Cache keys are namespaced by entity and operation.

func BalanceKey(accountID int64) string {
	return fmt.Sprintf("account:balance:%d", accountID)
}

func DetailsKey(accountID int64) string {
	return fmt.Sprintf("account:details:%d", accountID)
}

func UserAccountsKey(userID int64) string {
	return fmt.Sprintf("user:accounts:%d", userID)
}

func RecentTxnsKey(accountNumber string) string {
	return "account:recent-txns:" + accountNumber
}

func TransactionKeyFor(transactionID int64) string {
	return fmt.Sprintf("transaction:%d", transactionID)
}

func ReceiptKey(receiptNumber string) string {
	return "bill:receipt:" + receiptNumber
}

func BillHistoryKey(accountID int64) string {
	return fmt.Sprintf("bill:history:%d", accountID)
}

func ActiveCardsKey(accountID int64) string {
	return fmt.Sprintf("account:active-cards:%d", accountID)
}
