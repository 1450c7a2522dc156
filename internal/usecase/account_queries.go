package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

// AccountQueriesUseCase serves the read side cache-aside: check the cache,
// fall back to the store on a miss, repopulate with the key's TTL.
type AccountQueriesUseCase struct {
	accounts     gateway.AccountRepository
	transactions gateway.TransactionRepository
	cache        gateway.Cache
}

func NewAccountQueries(
	accounts gateway.AccountRepository,
	transactions gateway.TransactionRepository,
	cache gateway.Cache,
) *AccountQueriesUseCase {
	return &AccountQueriesUseCase{
		accounts:     accounts,
		transactions: transactions,
		cache:        cache,
	}
}

func (u *AccountQueriesUseCase) Balance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	key := gateway.BalanceKey(accountID)
	var cached decimal.Decimal
	if cacheLookup(ctx, u.cache, key, &cached) {
		return cached, nil
	}

	account, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	cacheStore(ctx, u.cache, key, account.Balance, gateway.BalanceTTL)
	return account.Balance, nil
}

func (u *AccountQueriesUseCase) Details(ctx context.Context, accountID int64) (*AccountOutput, error) {
	key := gateway.DetailsKey(accountID)
	var cached AccountOutput
	if cacheLookup(ctx, u.cache, key, &cached) {
		return &cached, nil
	}

	account, err := u.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := toAccountOutput(account)
	cacheStore(ctx, u.cache, key, out, gateway.DetailsTTL)
	return out, nil
}

func (u *AccountQueriesUseCase) UserAccounts(ctx context.Context, userID int64) ([]AccountOutput, error) {
	key := gateway.UserAccountsKey(userID)
	var cached []AccountOutput
	if cacheLookup(ctx, u.cache, key, &cached) {
		return cached, nil
	}

	accounts, err := u.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]AccountOutput, 0, len(accounts))
	for i := range accounts {
		out = append(out, *toAccountOutput(&accounts[i]))
	}
	cacheStore(ctx, u.cache, key, out, gateway.UserAccountsTTL)
	return out, nil
}

func (u *AccountQueriesUseCase) RecentTransactions(ctx context.Context, accountNumber string, count int) ([]TransactionOutput, error) {
	key := gateway.RecentTxnsKey(accountNumber)
	var cached []TransactionOutput
	if cacheLookup(ctx, u.cache, key, &cached) {
		return cached, nil
	}

	transactions, err := u.transactions.ListRecent(ctx, accountNumber, count)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionOutput, 0, len(transactions))
	for i := range transactions {
		out = append(out, *toTransactionOutput(&transactions[i]))
	}
	cacheStore(ctx, u.cache, key, out, gateway.RecentTxnsTTL)
	return out, nil
}

func (u *AccountQueriesUseCase) Transaction(ctx context.Context, transactionID int64) (*TransactionOutput, error) {
	key := gateway.TransactionKeyFor(transactionID)
	var cached TransactionOutput
	if cacheLookup(ctx, u.cache, key, &cached) {
		return &cached, nil
	}

	transaction, err := u.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	out := toTransactionOutput(transaction)
	cacheStore(ctx, u.cache, key, out, gateway.TransactionTTL)
	return out, nil
}

func (u *AccountQueriesUseCase) SearchByReference(ctx context.Context, reference string) ([]TransactionOutput, error) {
	transactions, err := u.transactions.SearchByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionOutput, 0, len(transactions))
	for i := range transactions {
		out = append(out, *toTransactionOutput(&transactions[i]))
	}
	return out, nil
}
