package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mohmad-Awadallah/e-bank/internal/config"
	"github.com/mohmad-Awadallah/e-bank/internal/gateway"
	"github.com/mohmad-Awadallah/e-bank/internal/infra/http/handler"
	internalMiddleware "github.com/mohmad-Awadallah/e-bank/internal/infra/http/middleware"
	"github.com/mohmad-Awadallah/e-bank/internal/infra/memory"
	"github.com/mohmad-Awadallah/e-bank/internal/infra/postgres"
	"github.com/mohmad-Awadallah/e-bank/internal/infra/rabbitmq"
	redisInfra "github.com/mohmad-Awadallah/e-bank/internal/infra/redis"
	"github.com/mohmad-Awadallah/e-bank/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to PostgreSQL")
	}
	defer dbPool.Close()
	log.Info().Msg("connected to PostgreSQL")

	// Redis is best-effort: when it is down the ledger runs on an
	// in-process cache and idempotency replay is disabled.
	var (
		cache           gateway.Cache
		idempotencyRepo gateway.IdempotencyRepository
	)
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("could not connect to Redis, falling back to in-process cache")
		cache = memory.NewCache()
	} else {
		log.Info().Msg("connected to Redis")
		cache = redisInfra.NewCache(redisClient)
		idempotencyRepo = redisInfra.NewIdempotencyRepository(redisClient)
	}

	var eventPublisher gateway.EventPublisher
	rabbitConn, err := amqp.DialConfig(cfg.RabbitURL, amqp.Config{
		Properties: amqp.Table{
			"connection_name": "LedgerAPI_Publisher",
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not connect to RabbitMQ, events will not be published")
	} else {
		defer rabbitConn.Close()
		log.Info().Msg("connected to RabbitMQ")

		ch, err := rabbitConn.Channel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open RabbitMQ channel")
		}
		defer ch.Close()

		if err := rabbitmq.DeclareExchange(ch, gateway.LedgerExchange); err != nil {
			log.Fatal().Err(err).Msg("failed to declare exchange")
		}
		eventPublisher = rabbitmq.NewPublisher(ch)
	}

	// Repositories.
	accountRepo := postgres.NewAccountRepository(dbPool)
	transactionRepo := postgres.NewTransactionRepository(dbPool)
	wireRepo := postgres.NewWireTransferRepository(dbPool)
	billRepo := postgres.NewBillPaymentRepository(dbPool)
	cardRepo := postgres.NewCreditCardRepository(dbPool)
	uow := postgres.NewUow(dbPool, eventPublisher)

	// Use cases.
	createAccountUC := usecase.NewCreateAccount(accountRepo, cache)
	accountStatusUC := usecase.NewAccountStatus(accountRepo, cache)
	accountQueriesUC := usecase.NewAccountQueries(accountRepo, transactionRepo, cache)
	depositUC := usecase.NewDeposit(accountRepo, transactionRepo, uow, cache, eventPublisher)
	withdrawUC := usecase.NewWithdraw(accountRepo, transactionRepo, uow, cache, eventPublisher)
	transferUC := usecase.NewTransferFunds(accountRepo, transactionRepo, uow, cache, eventPublisher)
	reverseUC := usecase.NewReverseTransaction(accountRepo, transactionRepo, uow, cache, eventPublisher)
	wireUC := usecase.NewWireTransfer(accountRepo, wireRepo, uow, cache, eventPublisher)
	billUC := usecase.NewBillPayment(accountRepo, billRepo, uow, cache, eventPublisher)
	cardUC := usecase.NewCreditCard(accountRepo, cardRepo, cache)

	// Handlers.
	accountHandler := handler.NewAccountHandler(createAccountUC, accountStatusUC, accountQueriesUC)
	transferHandler := handler.NewTransferHandler(depositUC, withdrawUC, transferUC, reverseUC)
	wireHandler := handler.NewWireTransferHandler(wireUC)
	paymentHandler := handler.NewPaymentHandler(billUC, cardUC)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})

	// Funds movements replay on a repeated Idempotency-Key.
	router.Group(func(r chi.Router) {
		if idempotencyRepo != nil {
			r.Use(internalMiddleware.Idempotency(idempotencyRepo))
		}
		r.Post("/deposits", transferHandler.Deposit)
		r.Post("/withdrawals", transferHandler.Withdraw)
		r.Post("/transfers", transferHandler.Transfer)
		r.Post("/transactions/{transactionID}/reverse", transferHandler.Reverse)
		r.Post("/wire-transfers", wireHandler.Initiate)
		r.Post("/wire-transfers/{reference}/complete", wireHandler.Complete)
		r.Post("/wire-transfers/{reference}/cancel", wireHandler.Cancel)
		r.Post("/bill-payments", paymentHandler.PayBill)
		r.Post("/credit-cards", paymentHandler.IssueCard)
		r.Post("/credit-cards/{cardID}/charges", paymentHandler.ChargeCard)
	})

	router.Post("/accounts", accountHandler.Create)
	router.Get("/accounts/{accountID}", accountHandler.Details)
	router.Get("/accounts/{accountID}/balance", accountHandler.Balance)
	router.Put("/accounts/{accountID}/activate", accountHandler.Activate)
	router.Put("/accounts/{accountID}/deactivate", accountHandler.Deactivate)
	router.Get("/accounts/{accountID}/wire-transfers", wireHandler.ListBySender)
	router.Get("/accounts/{accountID}/bill-payments", paymentHandler.BillHistory)
	router.Get("/accounts/{accountID}/credit-cards", paymentHandler.ActiveCards)
	router.Get("/accounts/number/{accountNumber}/transactions", accountHandler.RecentTransactions)
	router.Get("/users/{userID}/accounts", accountHandler.UserAccounts)
	router.Get("/transactions/{transactionID}", accountHandler.Transaction)
	router.Get("/transactions", accountHandler.SearchTransactions)
	router.Get("/wire-transfers/pending", wireHandler.ListPending)
	router.Get("/wire-transfers/{reference}", wireHandler.Get)
	router.Get("/bill-payments/{receiptNumber}", paymentHandler.GetReceipt)
	router.Delete("/credit-cards/{cardID}", paymentHandler.DeactivateCard)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("ledger API listening")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}
