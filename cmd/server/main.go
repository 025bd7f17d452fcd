// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ekoshield/internal/audit"
	authservice "ekoshield/internal/auth"
	authhandler "ekoshield/internal/auth/handler"
	cataloghandler "ekoshield/internal/catalog/handler"
	httpapi "ekoshield/internal/http"
	"ekoshield/internal/keystore"
	keystorehandler "ekoshield/internal/keystore/handler"
	"ekoshield/internal/platform/config"
	"ekoshield/internal/platform/httpserver"
	"ekoshield/internal/platform/logger"
	"ekoshield/internal/platform/metrics"
	"ekoshield/internal/platform/postgres"
	"ekoshield/internal/platform/redis"
	"ekoshield/internal/results"
	resultshandler "ekoshield/internal/results/handler"
	"ekoshield/internal/secrets"
	"ekoshield/internal/token"
	"ekoshield/internal/verification"
	verifyhandler "ekoshield/internal/verification/handler"
	"ekoshield/internal/wallet"
	wallethandler "ekoshield/internal/wallet/handler"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx := context.Background()

	// Audit events go to Kafka when brokers are configured, otherwise they
	// are dropped.
	var auditor audit.Publisher = audit.NopPublisher{}
	if kafkaPub, err := audit.NewKafkaPublisher(cfg.Kafka, log); err != nil {
		log.Warn("kafka audit publisher disabled", "error", err)
	} else if kafkaPub != nil {
		auditor = kafkaPub
	}
	defer auditor.Close()

	// Result sink: postgres when configured, in-memory otherwise.
	var resultStore results.Store = results.NewInMemoryStore()
	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("could not open postgres", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		pgStore, err := results.NewPostgresStore(ctx, db)
		if err != nil {
			log.Error("could not prepare result store schema", "error", err)
			os.Exit(1)
		}
		resultStore = pgStore
		log.Info("result store backed by postgres")
	}

	// API key store: redis when configured, in-memory otherwise.
	var keyStore keystore.Store = keystore.NewInMemoryStore(cfg.ProviderAPIKey)
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("could not connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		keyStore = keystore.NewRedisStore(redisClient)
		if cfg.ProviderAPIKey != "" {
			if existing, err := keyStore.Get(ctx); err == nil && existing == "" {
				if err := keyStore.Set(ctx, cfg.ProviderAPIKey); err != nil {
					log.Warn("could not seed api key into redis", "error", err)
				}
			}
		}
		log.Info("api key store backed by redis")
	}

	consolePassword := cfg.ConsolePassword
	if consolePassword == "" {
		generated, err := secrets.Generate()
		if err != nil {
			log.Error("could not generate console password", "error", err)
			os.Exit(1)
		}
		consolePassword = generated
		log.Warn("EKOSHIELD_CONSOLE_PASSWORD not set, generated one for this run",
			"password", consolePassword)
	}

	tokens := token.NewService(cfg.JWTSigningKey, "ekoshield", "ekoshield-console")
	authSvc, err := authservice.New(consolePassword, tokens, authservice.WithLogger(log))
	if err != nil {
		log.Error("could not initialize auth", "error", err)
		os.Exit(1)
	}

	walletSvc, err := wallet.New(wallet.NewInMemoryStore(cfg.InitialCredits),
		wallet.WithLogger(log),
		wallet.WithMetrics(m),
		wallet.WithAuditPublisher(auditor),
	)
	if err != nil {
		log.Error("could not initialize wallet", "error", err)
		os.Exit(1)
	}

	resultSvc, err := results.New(resultStore,
		results.WithLogger(log),
		results.WithMetrics(m),
		results.WithAuditPublisher(auditor),
	)
	if err != nil {
		log.Error("could not initialize result sink", "error", err)
		os.Exit(1)
	}

	verifySvc, err := verification.New(keyStore, walletSvc, resultSvc, cfg.ProviderBaseURL,
		verification.WithLogger(log),
		verification.WithMetrics(m),
		verification.WithAuditPublisher(auditor),
	)
	if err != nil {
		log.Error("could not initialize verification service", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:    log,
		Validator: authSvc,
		Auth:      authhandler.New(authSvc, log),
		Catalog:   cataloghandler.New(),
		Wallet:    wallethandler.New(walletSvc, log),
		Results:   resultshandler.New(resultSvc, log, m, auditor),
		Keystore:  keystorehandler.New(keyStore, log),
		Verify:    verifyhandler.New(verifySvc, log),
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting ekoshield console", "addr", cfg.Addr, "provider", cfg.ProviderBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
