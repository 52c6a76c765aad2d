package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"payslip/assets"
	"payslip/internal/domain/auth"
	"payslip/internal/domain/directory"
	"payslip/internal/domain/export"
	"payslip/internal/domain/form"
	"payslip/internal/platform/config"
	"payslip/internal/platform/crypto"
	"payslip/internal/platform/db"
	"payslip/internal/platform/email"
	"payslip/internal/platform/jobs"
	"payslip/internal/platform/kv"
	"payslip/internal/platform/metrics"
	"payslip/internal/platform/share"
	"payslip/internal/transport/http/api"
	authhandler "payslip/internal/transport/http/handlers/auth"
	directoryhandler "payslip/internal/transport/http/handlers/directory"
	formhandler "payslip/internal/transport/http/handlers/form"
	"payslip/internal/transport/http/middleware"
)

// staleTempAge is how old an export temp file must be before the sweeper
// treats it as abandoned.
const staleTempAge = 10 * time.Minute

type App struct {
	Config config.Config
	Router http.Handler
	Jobs   *jobs.Service

	closers []func()
}

func Run() {
	cfg := config.Load()
	SetupLogging(cfg)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Serve(ctx, cfg)
	stop()
	if err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// Serve runs the HTTP server and background jobs until ctx is done or the
// listener fails. Jobs are stopped before it returns on either path.
func Serve(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app, err := New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("payslip server listening", "addr", cfg.Addr, "storage", cfg.StorageDriver, "auth", cfg.AuthEnabled())
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown incomplete", "err", err)
		}
	}
	cancel()
	app.Jobs.Wait()
	return serveErr
}

// SetupLogging installs the default slog handler: JSON in production, text
// otherwise.
func SetupLogging(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New wires storage, export and the HTTP surface from cfg.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	store, err := app.openStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	var sealer directory.Sealer
	if cfg.DataEncryptionKey != "" {
		svc, err := crypto.New(cfg.DataEncryptionKey)
		if err != nil {
			app.Close()
			return nil, err
		}
		sealer = svc
	}
	dir := directory.NewStore(store, sealer)

	var assetFS fs.FS = assets.FS
	if cfg.AssetsDir != "" {
		assetFS = os.DirFS(cfg.AssetsDir)
	}

	collector := metrics.New()
	exporter := &export.Exporter{
		Assets: assetFS,
		Writer: export.PDFWriter{FontPath: cfg.PDFFontPath},
		Dir:    cfg.DocumentsDir,
		Sharer: share.Folder{Dir: cfg.ShareDir},
		Mailer: email.New(cfg),
	}
	controller := form.New(form.Deps{
		Directory: dir,
		Exporter:  exporter,
		Settings: form.Settings{
			CompanyName:    cfg.CompanyName,
			CompanyAddress: cfg.CompanyAddress,
			CurrencySymbol: cfg.CurrencySymbol,
			Watermark:      cfg.WatermarkEnabled,
		},
		Metrics: collector,
	})

	secret := cfg.JWTSecret
	if secret == "" {
		if secret, err = randomSecret(); err != nil {
			app.Close()
			return nil, err
		}
	}
	operator := &auth.Operator{
		PasscodeHash: cfg.OperatorPasscodeHash,
		TOTPSecret:   cfg.OperatorTOTPSecret,
		Secret:       secret,
		SessionTTL:   cfg.SessionTTL,
		LinkTTL:      cfg.DownloadLinkTTL,
	}

	app.Jobs = jobs.New(jobs.Task{
		Name:     "sweep_export_temp",
		Interval: cfg.TempSweepInterval,
		Run: func(ctx context.Context) error {
			removed, err := export.SweepTemp(cfg.DocumentsDir, staleTempAge, time.Now())
			if removed > 0 {
				slog.Info("removed stale export temp files", "count", removed)
			}
			return err
		},
	})

	app.Router = newRouter(cfg, routerDeps{
		collector: collector,
		operator:  operator,
		form:      formhandler.NewHandler(controller, assetFS, cfg.DocumentsDir, operator),
		directory: directoryhandler.NewHandler(dir),
		auth:      authhandler.NewHandler(operator),
	})
	return app, nil
}

// Close releases storage handles in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStore(ctx context.Context) (kv.Store, error) {
	cfg := a.Config
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return kv.NewMemory(), nil
	case config.StorageSQLite:
		store, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := store.Close(); err != nil {
				slog.Warn("sqlite close failed", "err", err)
			}
		})
		return store, nil
	case config.StoragePostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect failed: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		return kv.NewPostgres(ctx, pool)
	default:
		return kv.NewFile(filepath.Join(cfg.DataDir, "store.json"))
	}
}

type routerDeps struct {
	collector *metrics.Collector
	operator  *auth.Operator
	form      *formhandler.Handler
	directory *directoryhandler.Handler
	auth      *authhandler.Handler
}

func newRouter(cfg config.Config, deps routerDeps) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.collector))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled {
		router.With(middleware.RequireOperator(deps.operator)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, deps.collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.LoginRateLimit, time.Minute))
			deps.auth.RegisterRoutes(r)
		})
		deps.form.RegisterDownloads(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOperator(deps.operator))
			deps.form.RegisterRoutes(r)
			deps.directory.RegisterRoutes(r)
		})
	})
	return router
}

// randomSecret signs download links when no JWT_SECRET is configured. Links
// then stop working after a restart.
func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
