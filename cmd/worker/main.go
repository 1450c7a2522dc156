package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mohmad-Awadallah/e-bank/internal/config"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
	"github.com/mohmad-Awadallah/e-bank/internal/infra/mongodb"
	"github.com/mohmad-Awadallah/e-bank/internal/infra/rabbitmq"
)

// ledgerEvent is the superset of every payload published on the ledger
// exchange. Fields absent from a given event stay zero.
type ledgerEvent struct {
	Reference   string `json:"reference"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	mongoClient, err := mongo.Connect(clientOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB client")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB is not responding")
	}
	log.Info().Msg("connected to MongoDB")
	auditRepo := mongodb.NewAuditRepository(mongoClient, cfg.MongoDBName)

	conn, err := amqp.DialConfig(cfg.RabbitURL, amqp.Config{
		Properties: amqp.Table{
			"connection_name": "AuditWorker_Consumer",
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open channel")
	}
	defer ch.Close()

	// One unacked message at a time keeps the consumer from buffering
	// more than it can write to Mongo.
	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatal().Err(err).Msg("failed to set QoS")
	}

	if err := rabbitmq.DeclareExchange(ch, gateway.LedgerExchange); err != nil {
		log.Fatal().Err(err).Msg("failed to declare exchange")
	}

	q, err := ch.QueueDeclare(
		"audit_queue",
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	// Everything the ledger publishes lands in the audit trail.
	for _, pattern := range []string{"transaction.#", "wire_transfer.#", "payment.#", "ledger.#"} {
		if err := ch.QueueBind(q.Name, pattern, gateway.LedgerExchange, false, nil); err != nil {
			log.Fatal().Err(err).Str("pattern", pattern).Msg("failed to bind queue")
		}
	}

	msgs, err := ch.Consume(
		q.Name,
		"audit_worker",
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register consumer")
	}

	notifyClose := make(chan *amqp.Error)
	ch.NotifyClose(notifyClose)

	log.Info().Str("queue", q.Name).Msg("audit worker started")

	go func() {
		for {
			select {
			case err := <-notifyClose:
				if err != nil {
					log.Error().Err(err).Msg("RabbitMQ channel closed")
					os.Exit(1)
				}
				return
			case d, ok := <-msgs:
				if !ok {
					log.Error().Msg("message channel closed")
					os.Exit(1)
				}

				var event ledgerEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Error().Err(err).Msg("failed to decode event")
					if err := d.Nack(false, false); err != nil {
						log.Error().Err(err).Msg("failed to nack invalid message")
					}
					continue
				}

				auditLog := mongodb.AuditLog{
					Reference:     event.Reference,
					SourceAccount: event.FromAccount,
					TargetAccount: event.ToAccount,
					Amount:        event.Amount,
					Type:          event.Type,
					Status:        event.Status,
					RoutingKey:    d.RoutingKey,
				}

				saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := auditRepo.Save(saveCtx, auditLog); err != nil {
					log.Error().Err(err).Msg("failed to save audit log")
					if err := d.Nack(false, true); err != nil {
						log.Error().Err(err).Msg("failed to nack message")
					}
					cancel()
					continue
				}
				cancel()

				if err := d.Ack(false); err != nil {
					log.Error().Err(err).Msg("failed to ack message")
				}
				log.Info().Str("reference", event.Reference).Str("routing_key", d.RoutingKey).Msg("audit log saved")
			}
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	<-stopChan

	log.Info().Msg("shutting down worker")
}
