package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
	"github.com/mohmad-Awadallah/e-bank/internal/infra/memory"
)

// In-memory fakes mirroring the store contracts: account saves do the same
// version compare-and-swap the SQL repository does, and getters hand out
// copies so uncommitted entity mutation never leaks into stored state.

type fakeTxManager struct {
	runs int
}

func (m *fakeTxManager) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	txCtx := context.WithValue(ctx, gateway.TransactionKey, struct{}{})
	return fn(txCtx)
}

type fakeAccounts struct {
	mu        sync.Mutex
	byID      map[int64]*domain.Account
	nextID    int64
	conflicts int // pending Save calls that lose the version race
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: make(map[int64]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func (f *fakeAccounts) add(number, balance, currency string, status domain.AccountStatus) *domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a := &domain.Account{
		ID:            f.nextID,
		AccountNumber: number,
		AccountName:   "Account " + number,
		Balance:       decimal.RequireFromString(balance),
		Currency:      currency,
		UserID:        1,
		Status:        status,
		Version:       1,
		CreatedAt:     time.Now(),
	}
	f.byID[a.ID] = a
	return cloneAccount(a)
}

func (f *fakeAccounts) get(id int64) *domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneAccount(f.byID[id])
}

func (f *fakeAccounts) Create(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	account.ID = f.nextID
	account.Version = 1
	account.CreatedAt = time.Now()
	f.byID[account.ID] = cloneAccount(account)
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (f *fakeAccounts) GetByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.AccountNumber == accountNumber {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccounts) ExistsByNumber(_ context.Context, accountNumber string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccounts) ListByUser(_ context.Context, userID int64) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Account
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, *cloneAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAccounts) Save(_ context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflicts > 0 {
		f.conflicts--
		return domain.ErrVersionConflict
	}
	stored, ok := f.byID[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if stored.Version != account.Version {
		return domain.ErrVersionConflict
	}
	account.Version++
	f.byID[account.ID] = cloneAccount(account)
	return nil
}

func (f *fakeAccounts) WithTx(_ gateway.TransactionObject) gateway.AccountRepository { return f }

type fakeTransactions struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Transaction
	nextID int64
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{byID: make(map[int64]*domain.Transaction)}
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	if t.TargetAccountID != nil {
		id := *t.TargetAccountID
		c.TargetAccountID = &id
	}
	return &c
}

func (f *fakeTransactions) Create(_ context.Context, transaction *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	transaction.ID = f.nextID
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now()
	}
	f.byID[transaction.ID] = cloneTransaction(transaction)
	return nil
}

func (f *fakeTransactions) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return cloneTransaction(t), nil
}

func (f *fakeTransactions) ListRecent(_ context.Context, _ string, limit int) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Transaction
	for _, t := range f.byID {
		out = append(out, *cloneTransaction(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTransactions) SearchByReference(_ context.Context, reference string) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Transaction
	for _, t := range f.byID {
		if strings.Contains(t.Reference, reference) {
			out = append(out, *cloneTransaction(t))
		}
	}
	return out, nil
}

func (f *fakeTransactions) UpdateStatus(_ context.Context, id int64, status domain.TransactionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeTransactions) WithTx(_ gateway.TransactionObject) gateway.TransactionRepository {
	return f
}

type fakeTransfers struct {
	mu     sync.Mutex
	byRef  map[string]*domain.WireTransfer
	nextID int64
}

func newFakeTransfers() *fakeTransfers {
	return &fakeTransfers{byRef: make(map[string]*domain.WireTransfer)}
}

func cloneTransfer(w *domain.WireTransfer) *domain.WireTransfer {
	c := *w
	if w.CompletedAt != nil {
		at := *w.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func (f *fakeTransfers) Create(_ context.Context, transfer *domain.WireTransfer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	transfer.ID = f.nextID
	f.byRef[transfer.ReferenceNumber] = cloneTransfer(transfer)
	return nil
}

func (f *fakeTransfers) GetByReference(_ context.Context, referenceNumber string) (*domain.WireTransfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.byRef[referenceNumber]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	return cloneTransfer(w), nil
}

func (f *fakeTransfers) ListBySender(_ context.Context, senderAccountID int64) ([]domain.WireTransfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.WireTransfer
	for _, w := range f.byRef {
		if w.SenderAccountID == senderAccountID {
			out = append(out, *cloneTransfer(w))
		}
	}
	return out, nil
}

func (f *fakeTransfers) ListByStatus(_ context.Context, status domain.TransferStatus) ([]domain.WireTransfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.WireTransfer
	for _, w := range f.byRef {
		if w.Status == status {
			out = append(out, *cloneTransfer(w))
		}
	}
	return out, nil
}

func (f *fakeTransfers) Update(_ context.Context, transfer *domain.WireTransfer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byRef[transfer.ReferenceNumber]; !ok {
		return domain.ErrTransferNotFound
	}
	f.byRef[transfer.ReferenceNumber] = cloneTransfer(transfer)
	return nil
}

func (f *fakeTransfers) WithTx(_ gateway.TransactionObject) gateway.WireTransferRepository {
	return f
}

type fakeBills struct {
	mu     sync.Mutex
	items  []*domain.BillPayment
	nextID int64
}

func (f *fakeBills) Create(_ context.Context, payment *domain.BillPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	payment.ID = f.nextID
	c := *payment
	f.items = append(f.items, &c)
	return nil
}

func (f *fakeBills) GetByReceipt(_ context.Context, receiptNumber string) (*domain.BillPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ReceiptNumber == receiptNumber {
			c := *p
			return &c, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (f *fakeBills) ListByAccount(_ context.Context, payerAccountID int64) ([]domain.BillPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BillPayment
	for _, p := range f.items {
		if p.PayerAccountID == payerAccountID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeBills) WithTx(_ gateway.TransactionObject) gateway.BillPaymentRepository { return f }

type fakeCards struct {
	mu     sync.Mutex
	byID   map[int64]*domain.CreditCard
	nextID int64
}

func newFakeCards() *fakeCards {
	return &fakeCards{byID: make(map[int64]*domain.CreditCard)}
}

func (f *fakeCards) Create(_ context.Context, card *domain.CreditCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	card.ID = f.nextID
	c := *card
	f.byID[card.ID] = &c
	return nil
}

func (f *fakeCards) GetByID(_ context.Context, id int64) (*domain.CreditCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	c := *card
	return &c, nil
}

func (f *fakeCards) ListActiveByAccount(_ context.Context, accountID int64) ([]domain.CreditCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CreditCard
	for _, card := range f.byID {
		if card.AccountID == accountID && card.Active {
			out = append(out, *card)
		}
	}
	return out, nil
}

func (f *fakeCards) Save(_ context.Context, card *domain.CreditCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[card.ID]; !ok {
		return domain.ErrCardNotFound
	}
	c := *card
	f.byID[card.ID] = &c
	return nil
}

func (f *fakeCards) WithTx(_ gateway.TransactionObject) gateway.CreditCardRepository { return f }

type publishedEvent struct {
	routingKey string
	payload    map[string]interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, _, routingKey string, body interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, _ := body.(map[string]interface{})
	f.events = append(f.events, publishedEvent{routingKey: routingKey, payload: payload})
	return nil
}

// brokenCache fails every operation, exercising the degradation paths.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("cache unavailable")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache unavailable")
}

func (brokenCache) Delete(context.Context, ...string) error {
	return errors.New("cache unavailable")
}

type env struct {
	accounts     *fakeAccounts
	transactions *fakeTransactions
	transfers    *fakeTransfers
	bills        *fakeBills
	cards        *fakeCards
	cache        *memory.Cache
	publisher    *fakePublisher
	tx           *fakeTxManager
}

func newEnv() *env {
	return &env{
		accounts:     newFakeAccounts(),
		transactions: newFakeTransactions(),
		transfers:    newFakeTransfers(),
		bills:        &fakeBills{},
		cards:        newFakeCards(),
		cache:        memory.NewCache(),
		publisher:    &fakePublisher{},
		tx:           &fakeTxManager{},
	}
}
