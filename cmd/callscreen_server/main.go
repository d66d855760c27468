package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	assistantApp "github.com/treloarai/callscreen/internal/assistant/app"
	assistantDomain "github.com/treloarai/callscreen/internal/assistant/domain"
	assistantMem "github.com/treloarai/callscreen/internal/assistant/repository/memory"
	assistantPg "github.com/treloarai/callscreen/internal/assistant/repository/postgres"
	authApp "github.com/treloarai/callscreen/internal/auth/app"
	billingApp "github.com/treloarai/callscreen/internal/billing/app"
	billingDomain "github.com/treloarai/callscreen/internal/billing/domain"
	billingMem "github.com/treloarai/callscreen/internal/billing/repository/memory"
	billingPg "github.com/treloarai/callscreen/internal/billing/repository/postgres"
	"github.com/treloarai/callscreen/internal/platform/config"
	"github.com/treloarai/callscreen/internal/platform/database"
	"github.com/treloarai/callscreen/internal/platform/logger"
	"github.com/treloarai/callscreen/internal/platform/messagebroker"
	screeningApp "github.com/treloarai/callscreen/internal/screening/app"
	screeningDomain "github.com/treloarai/callscreen/internal/screening/domain"
	screeningMem "github.com/treloarai/callscreen/internal/screening/repository/memory"
	screeningPg "github.com/treloarai/callscreen/internal/screening/repository/postgres"
	httptransport "github.com/treloarai/callscreen/internal/transport/http"
)

const (
	serviceName     = "callscreen_server"
	shutdownTimeout = 15 * time.Second
)

// repositories groups one storage backend's implementations of every
// repository interface the service uses.
type repositories struct {
	contacts  screeningDomain.ContactRepository
	blocked   screeningDomain.BlockedNumberRepository
	calls     screeningDomain.CallRecordRepository
	settings  screeningDomain.SettingsRepository
	voiceCmds assistantDomain.VoiceCommandRepository
	usage     billingDomain.UsageRepository
	backend   string
}

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel).With("service", serviceName)
	appLogger.Info("Starting service...",
		"port", cfg.ServerPort,
		"environment", cfg.Environment,
		"postgres_dsn_present", cfg.PostgresDSN != "",
		"auth_required", cfg.AuthRequired,
	)

	// Select the storage backend once at startup; handlers never re-check it.
	repos, cleanup, err := buildRepositories(mainCtx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize storage backend", "error", err)
		os.Exit(1)
	}
	defer cleanup()
	appLogger.Info("Storage backend initialized", "backend", repos.backend)

	var natsClient *messagebroker.NatsClient
	if cfg.NATSUrl != "" {
		natsClient, err = messagebroker.NewNatsClient(cfg.NATSUrl, serviceName, appLogger)
		if err != nil {
			// The broker is optional bookkeeping; the service runs without it.
			appLogger.Warn("Failed to connect to NATS, continuing without broker", "url", cfg.NATSUrl, "error", err)
			natsClient = nil
		} else {
			defer natsClient.Close()
			appLogger.Info("NATS client connected", "url", cfg.NATSUrl)
		}
	}

	authService, err := authApp.NewAuthService(authApp.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		JWTExpiryHours: cfg.JWTExpiryHours,
		DemoUsername:   cfg.DemoUsername,
		DemoPassword:   cfg.DemoPassword,
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize auth service", "error", err)
		os.Exit(1)
	}

	billingService := billingApp.NewBillingService(repos.usage, appLogger)
	responder := assistantApp.NewResponder(repos.voiceCmds, billingService, natsClient, appLogger)
	screening := screeningApp.NewApplication(
		repos.contacts, repos.blocked, repos.calls, repos.settings,
		repos.voiceCmds, natsClient, appLogger,
	)

	validate := validator.New()
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Screening:    httptransport.NewScreeningHandler(screening, appLogger),
		Assistant:    httptransport.NewAssistantHandler(responder, appLogger),
		Billing:      httptransport.NewBillingHandler(billingService, appLogger),
		Auth:         httptransport.NewAuthHandler(authService, appLogger, validate),
		Dashboard:    httptransport.NewDashboardHandler(cfg.Environment, repos.backend, appLogger),
		AuthService:  authService,
		AuthRequired: cfg.AuthRequired,
		Logger:       appLogger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.KeepaliveURL != "" {
		g.Go(func() error {
			runKeepalive(gCtx, cfg.KeepaliveURL, time.Duration(cfg.KeepaliveIntervalMinutes)*time.Minute, appLogger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		appLogger.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Service stopped")
}

// buildRepositories picks the durable postgres backing when a DSN is
// configured and the seeded in-memory demo backing otherwise.
func buildRepositories(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (*repositories, func(), error) {
	if cfg.PostgresDSN == "" {
		appLogger.Info("No POSTGRES_DSN configured; running in demo mode with in-memory data")
		return &repositories{
			contacts:  screeningMem.NewContactStore(),
			blocked:   screeningMem.NewBlockedStore(),
			calls:     screeningMem.NewCallStore(),
			settings:  screeningMem.NewSettingsStore(),
			voiceCmds: assistantMem.NewVoiceLogStore(),
			usage:     billingMem.NewUsageStore(),
			backend:   "memory",
		}, func() {}, nil
	}

	dbPool, err := database.NewDBPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	return &repositories{
		contacts:  screeningPg.NewPgContactRepository(dbPool, appLogger),
		blocked:   screeningPg.NewPgBlockedRepository(dbPool, appLogger),
		calls:     screeningPg.NewPgCallRepository(dbPool, appLogger),
		settings:  screeningPg.NewPgSettingsRepository(dbPool, appLogger),
		voiceCmds: assistantPg.NewPgVoiceLogRepository(dbPool, appLogger),
		usage:     billingPg.NewPgUsageRepository(dbPool, appLogger),
		backend:   "postgres",
	}, dbPool.Close, nil
}

// runKeepalive polls url on a fixed interval until ctx is canceled. It exists
// purely to defeat idle shutdown on free hosting tiers and touches nothing in
// the data model.
func runKeepalive(ctx context.Context, url string, interval time.Duration, appLogger *slog.Logger) {
	client := &http.Client{Timeout: 10 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	appLogger.Info("Keep-alive pinger started", "url", url, "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			appLogger.Info("Keep-alive pinger stopped")
			return
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				appLogger.Warn("Keep-alive request build failed", "error", err)
				continue
			}
			resp, err := client.Do(req)
			if err != nil {
				appLogger.Warn("Keep-alive ping failed", "error", err)
				continue
			}
			resp.Body.Close()
			appLogger.Debug("Keep-alive ping", "status", resp.StatusCode)
		}
	}
}
