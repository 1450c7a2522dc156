package gateway

import "context"

// Ledger event routing keys.
const (
	LedgerExchange = "ledger_events"

	EventTransactionCompleted   = "transaction.completed"
	EventTransactionReversed    = "transaction.reversed"
	EventWireTransferCompleted  = "wire_transfer.completed"
	EventPaymentProcessed       = "payment.processed"
	EventReconciliationRequired = "ledger.reconciliation.required"
)

type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}
