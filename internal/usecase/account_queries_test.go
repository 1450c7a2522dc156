package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
)

func newQueriesUC(e *env) *AccountQueriesUseCase {
	return NewAccountQueries(e.accounts, e.transactions, e.cache)
}

func TestBalanceCacheAside(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "321.00", "USD", domain.AccountActive)
	uc := newQueriesUC(e)

	got, err := uc.Balance(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("321.00")) {
		t.Errorf("balance = %s, want 321.00", got)
	}

	// Mutate the store behind the cache's back: the second read still
	// serves the cached copy inside the TTL.
	e.accounts.byID[acc.ID].Balance = decimal.RequireFromString("999.00")

	got, err = uc.Balance(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("321.00")) {
		t.Errorf("cached balance = %s, want 321.00", got)
	}
}

func TestBalanceFreshAfterInvalidation(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "100.00", "USD", domain.AccountActive)
	uc := newQueriesUC(e)

	if _, err := uc.Balance(context.Background(), acc.ID); err != nil {
		t.Fatalf("warming cache: %v", err)
	}

	// A deposit invalidates the account's keys after the durable write.
	depositUC := NewDeposit(e.accounts, e.transactions, e.tx, e.cache, e.publisher)
	if _, err := depositUC.Execute(context.Background(), DepositInput{
		AccountID: acc.ID,
		Amount:    decimal.RequireFromString("50.00"),
	}); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	got, err := uc.Balance(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("read after deposit: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("balance = %s, stale cache survived the mutation", got)
	}
}

func TestReadsDegradeWhenCacheDown(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "42.00", "USD", domain.AccountActive)
	uc := NewAccountQueries(e.accounts, e.transactions, brokenCache{})

	got, err := uc.Balance(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("broken cache must not fail the read: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("42.00")) {
		t.Errorf("balance = %s, want 42.00", got)
	}

	details, err := uc.Details(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("details with broken cache: %v", err)
	}
	if details.AccountNumber != acc.AccountNumber {
		t.Errorf("details = %+v", details)
	}
}

func TestMutationsSucceedWhenCacheDown(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "100.00", "USD", domain.AccountActive)
	uc := NewDeposit(e.accounts, e.transactions, e.tx, brokenCache{}, e.publisher)

	if _, err := uc.Execute(context.Background(), DepositInput{
		AccountID: acc.ID,
		Amount:    decimal.RequireFromString("10.00"),
	}); err != nil {
		t.Fatalf("broken cache must not fail the deposit: %v", err)
	}
	if got := e.accounts.get(acc.ID).Balance; !got.Equal(decimal.RequireFromString("110.00")) {
		t.Errorf("balance = %s, want 110.00", got)
	}
}

func TestUserAccounts(t *testing.T) {
	e := newEnv()
	e.accounts.add("100000000001", "10.00", "USD", domain.AccountActive)
	e.accounts.add("100000000002", "20.00", "USD", domain.AccountActive)
	uc := newQueriesUC(e)

	accounts, err := uc.UserAccounts(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("listed %d accounts, want 2", len(accounts))
	}
}

func TestTransactionLookupAndSearch(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "100.00", "USD", domain.AccountActive)
	depositUC := NewDeposit(e.accounts, e.transactions, e.tx, e.cache, e.publisher)
	dep, err := depositUC.Execute(context.Background(), DepositInput{
		AccountID: acc.ID,
		Amount:    decimal.RequireFromString("10.00"),
	})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	uc := newQueriesUC(e)
	got, err := uc.Transaction(context.Background(), dep.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Reference != dep.Reference {
		t.Errorf("reference = %s, want %s", got.Reference, dep.Reference)
	}

	matches, err := uc.SearchByReference(context.Background(), dep.Reference)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != dep.ID {
		t.Errorf("search results = %+v", matches)
	}
}

func TestAccountStatusToggle(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "100.00", "USD", domain.AccountActive)
	uc := NewAccountStatus(e.accounts, e.cache)

	if err := uc.Deactivate(context.Background(), acc.ID); err != nil {
		t.Fatalf("deactivating: %v", err)
	}
	if status := e.accounts.get(acc.ID).Status; status != domain.AccountInactive {
		t.Errorf("status = %s, want INACTIVE", status)
	}

	if err := uc.Activate(context.Background(), acc.ID); err != nil {
		t.Fatalf("activating: %v", err)
	}
	if status := e.accounts.get(acc.ID).Status; status != domain.AccountActive {
		t.Errorf("status = %s, want ACTIVE", status)
	}
}

func TestInvalidateAccountEvictsAllKeys(t *testing.T) {
	e := newEnv()
	acc := e.accounts.add("100000000001", "100.00", "USD", domain.AccountActive)
	ctx := context.Background()

	for _, key := range []string{
		gateway.BalanceKey(acc.ID),
		gateway.DetailsKey(acc.ID),
		gateway.UserAccountsKey(acc.UserID),
		gateway.RecentTxnsKey(acc.AccountNumber),
	} {
		if err := e.cache.Set(ctx, key, []byte(`{}`), gateway.BalanceTTL); err != nil {
			t.Fatalf("seeding cache: %v", err)
		}
	}

	invalidateAccount(ctx, e.cache, acc)

	if e.cache.Size() != 0 {
		t.Errorf("%d cache entries survived invalidation", e.cache.Size())
	}
}
