package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/plugin-accounts/internal/config"
	"github.com/plugin-accounts/internal/infrastructure/dynamo"
	jwtinfra "github.com/plugin-accounts/internal/infrastructure/jwt"
	"github.com/plugin-accounts/internal/infrastructure/memstore"
	"github.com/plugin-accounts/internal/infrastructure/notify"
	transporthttp "github.com/plugin-accounts/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap the accounts table (creates it if missing; logs and continues
	// on failure so a locked-down environment still boots).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.AccountsTable)

	// Tokens are the only authentication mechanism; without signing keys the
	// service cannot do its job, so this one is fatal.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// Delivery channels in priority order. API channels join only when their
	// key is configured; console sits last so a code is never silently lost.
	var channels []notify.Channel
	if cfg.ResendAPIKey != "" {
		channels = append(channels, notify.NewResendChannel(cfg.ResendAPIKey, cfg.SMTPFrom))
	}
	if cfg.SendGridAPIKey != "" {
		channels = append(channels, notify.NewSendGridChannel(cfg.SendGridAPIKey, cfg.SMTPFrom))
	}
	channels = append(channels, notify.NewSMTPChannel(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword,
	))
	if cfg.SNSTopicARN != "" {
		if ch, err := notify.NewSNSChannel(context.Background(), cfg.AWSRegion, cfg.SNSTopicARN); err == nil {
			channels = append(channels, ch)
		} else {
			log.Printf("WARN: SNS channel not available: %v", err)
		}
	}
	channels = append(channels, notify.NewConsoleChannel())
	notifier := notify.NewChain(5, 10, channels...)

	deps := &transporthttp.Deps{
		AccountRepo: dynamo.NewAccountRepo(dynamoClient, cfg.AccountsTable),
		CodeStore:   memstore.NewCodeStore(),
		Notifier:    notifier,
		JWTProvider: jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
