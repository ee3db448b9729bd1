package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"invoicehero/internal/api"
	"invoicehero/internal/cache"
	"invoicehero/internal/config"
	"invoicehero/internal/log"
	"invoicehero/internal/services"
	"invoicehero/internal/storage"
	"invoicehero/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	// Missing .env is fine, the environment may carry everything.
	_ = godotenv.Load()

	a := &app{}
	cliApp := &cli.App{
		Name:  "invoicehero",
		Usage: "invoice overviews, listings, and drafting against the invoicing backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override LOG_LEVEL (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			return a.init(c.String("log-level"))
		},
		After: func(*cli.Context) error {
			return a.close()
		},
		Commands: a.commands(),
	}
	return cliApp.RunContext(ctx, args)
}

// app holds the wired components behind the CLI commands. Everything is
// built once in the Before hook so subcommands share the same store,
// snapshot database, and API client.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	client   *api.Client
	repo     *storage.SQLiteRepository
	store    *store.Store
	invoices *services.InvoiceService
	caches   *cache.Manager
}

func (a *app) init(levelOverride string) error {
	cfg := config.Load()
	if levelOverride != "" {
		cfg.LogLevel = levelOverride
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = log.New(log.ComponentApp, parseLevel(cfg.LogLevel))
	log.SetDefault(a.logger)

	a.client = api.New(cfg.APIBaseURL,
		api.WithToken(cfg.APIToken),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(a.logger),
	)

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open snapshot database: %w", err)
	}
	a.repo = repo

	a.store = store.New(a.client,
		store.WithSnapshotStore(repo),
		store.WithCache(cfg.CacheSize, cfg.CacheTTL),
		store.WithLogger(a.logger),
		store.WithPageSize(cfg.PageSize),
		store.WithNotifier(toastNotifier{}),
	)
	a.invoices = services.NewInvoiceService(a.client, repo,
		services.WithLogger(a.logger),
		services.WithNotifier(toastNotifier{}),
	)

	a.caches = cache.NewManager()
	a.caches.Register(a.store.Cleaner())
	a.caches.StartCleanup(cfg.CacheTTL)
	return nil
}

func (a *app) close() error {
	if a.caches != nil {
		a.caches.Stop()
	}
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}

// toastNotifier prints the messages a mobile client would toast.
type toastNotifier struct{}

func (toastNotifier) Success(msg string) { fmt.Println(msg) }
func (toastNotifier) Failure(msg string) { fmt.Fprintln(os.Stderr, msg) }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
