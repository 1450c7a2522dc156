package gateway

import "context"

// TransactionObject is the opaque handle carrying the store transaction
// between the unit of work and the repositories enlisted in it.
type TransactionObject interface{}

// TransactionManager is the unit of work: Run opens a store transaction,
// injects it into the context under TransactionKey, and commits when fn
// returns nil or rolls back when it returns an error.
type TransactionManager interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionKeyType keeps the context key collision-free.
type TransactionKeyType string

const TransactionKey TransactionKeyType = "transaction"
