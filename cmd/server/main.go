package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/juju/gnuflag"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/receiptbook/internal/config"
	"github.com/mmynk/receiptbook/internal/metrics"
	"github.com/mmynk/receiptbook/internal/middleware"
	"github.com/mmynk/receiptbook/internal/printing"
	"github.com/mmynk/receiptbook/internal/service"
	"github.com/mmynk/receiptbook/internal/storage/sqlite"
	"github.com/mmynk/receiptbook/pkg/api/apiconnect"
	"github.com/mmynk/receiptbook/pkg/logging"
)

func main() {
	var configPath string
	fs := gnuflag.NewFlagSet("server", gnuflag.ExitOnError)
	fs.StringVar(&configPath, "config", config.PathFromEnv(), "path to a YAML config file")
	fs.Parse(true, os.Args[1:])

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Options{Level: cfg.Logger.Level, Format: cfg.Logger.Format})

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.Path)

	var m *metrics.Metrics
	if !cfg.Metrics.Disabled {
		m = metrics.New()
	}

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	policy := service.Policy{
		MaxRangeWidth:     cfg.Policy.MaxRangeWidth,
		DefaultCommission: cfg.Policy.DefaultCommission,
	}
	reports := service.NewReportService(store)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewSellerServiceHandler(service.NewSellerService(store, policy), interceptors))
	mux.Handle(apiconnect.NewReceiptServiceHandler(service.NewReceiptService(store, m), interceptors))
	mux.Handle(apiconnect.NewReportServiceHandler(reports, interceptors))

	mux.Handle("/print/", printing.NewHandler(store, reports))

	if m != nil {
		mux.Handle(cfg.Metrics.Path, m.Handler())
		slog.Info("Metrics enabled", "path", cfg.Metrics.Path)
	}

	if cfg.Static.Path != "" {
		staticDir, err := filepath.Abs(cfg.Static.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	// Wrap with h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	srv := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting",
			"app", cfg.App.Name,
			"address", srv.Addr,
			"url", "http://"+srv.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.HTTP.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// staticHandler serves the front-end from dir, falling back to index.html
// for unknown paths.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/"+apiconnect.PackagePrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs every HTTP request at debug level. RPC outcomes are
// logged by the Connect interceptor.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
