package app

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

	"leadway/caution_backend/internal/app/config"
	apphttp "leadway/caution_backend/internal/app/http"
	"leadway/caution_backend/internal/app/session"
	"leadway/caution_backend/internal/domain/quote"
	"leadway/caution_backend/internal/domain/quote/document"
	"leadway/caution_backend/internal/domain/quote/pdf/gofpdf"
	"leadway/caution_backend/internal/infra/db/postgres"
	"leadway/caution_backend/internal/infra/memory"
	"leadway/caution_backend/internal/infra/supabase"
	"leadway/caution_backend/internal/infra/telegram"
	"leadway/caution_backend/internal/service/caution"
)

func Run() error {
	cfg := config.MustLoad()
	logger := config.SetupLogger(cfg)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := caution.Deps{
		Store:     store,
		Sessions:  session.NewStore[*caution.Session](cfg.SessionMaxEntries, cfg.SessionTTL),
		Assembler: document.NewAssembler(document.NewDirAssets(cfg.AssetsDir), document.DefaultIssuer()),
		Renderer:  gofpdf.New(cfg.FontsDir, logger),
		Numbers:   quote.NewPolicyNumberGenerator(cfg.PolicyPrefix, cfg.PolicySuffix),
		Logger:    logger,
	}
	if cfg.DocumentsBucket != "" {
		client, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, nil)
		if err != nil {
			return fmt.Errorf("documents archive: %w", err)
		}
		deps.Archiver = supabase.NewDocumentArchive(client, cfg.DocumentsBucket)
		logger.Info("document archive enabled", "bucket", cfg.DocumentsBucket)
	}
	if cfg.TelegramEnabled() {
		deps.Notifier = telegram.NewNotifier(cfg.TelegramBaseURL, cfg.TelegramBotToken, cfg.ManagerChatID)
		logger.Info("contract notifications enabled", "chat_id", cfg.ManagerChatID)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(cfg, caution.NewService(deps), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(srv, cfg.ShutdownTimeout, logger)
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (caution.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		if cfg.MigrateOnStart {
			version, err := postgres.Migrate(cfg.DatabaseURL)
			if err != nil {
				return nil, nil, err
			}
			logger.Info("schema migrated", "version", version)
		}
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		logger.Info("store ready", "backend", cfg.StoreBackend)
		return postgres.NewStore(db), db.Close, nil

	case config.StoreMemory:
		logger.Warn("using the in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil

	default:
		client, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("supabase: %w", err)
		}
		logger.Info("store ready", "backend", cfg.StoreBackend)
		return supabase.NewStore(client), func() {}, nil
	}
}

// serve runs srv until SIGINT or SIGTERM, then drains in-flight requests.
func serve(srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
