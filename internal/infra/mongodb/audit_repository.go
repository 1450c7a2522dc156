package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// AuditLog is the document persisted for every ledger event the worker
// consumes. Amount is kept as the decimal string from the event payload
// so no precision is lost in storage.
type AuditLog struct {
	ID            string    `bson:"_id,omitempty"`
	Reference     string    `bson:"reference"`
	SourceAccount string    `bson:"source_account"`
	TargetAccount string    `bson:"target_account,omitempty"`
	Amount        string    `bson:"amount"`
	Type          string    `bson:"type"`
	Status        string    `bson:"status"`
	RoutingKey    string    `bson:"routing_key"`
	ProcessedAt   time.Time `bson:"processed_at"`
}

type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	collection := client.Database(dbName).Collection("audit_logs")
	return &AuditRepository{collection: collection}
}

func (r *AuditRepository) Save(ctx context.Context, log AuditLog) error {
	log.ProcessedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}
