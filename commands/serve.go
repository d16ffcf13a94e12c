package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"onboarding-console/fakebank"
	"onboarding-console/notice"
	"onboarding-console/pages"
	"onboarding-console/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var addr string
	var mock bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.ListenAddr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a, mock)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	cmd.Flags().BoolVar(&mock, "mock", false, "run an in-process mock backend instead of BACKEND_URL")

	return cmd
}

func runServe(ctx context.Context, a *app, mock bool) error {
	if mock {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("starting mock backend: %w", err)
		}
		bankSrv := newBankServer(a.logger)
		go func() {
			if err := bankSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("mock backend stopped", "error", err)
			}
		}()
		defer bankSrv.Close()
		a.cfg.BackendURL = "http://" + ln.Addr().String() + "/api"
		a.logger.Info("mock backend listening", "backend_url", a.cfg.BackendURL)
	}

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           newConsoleRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.logger.Info("starting console", "addr", srv.Addr, "backend_url", a.cfg.BackendURL)
	return serveUntilDone(ctx, srv, a.logger)
}

func newConsoleRouter(a *app) http.Handler {
	client := a.client()
	customers := pages.NewCustomersPage(client.Customers(), client.Accounts(), notice.New(a.cfg.MessageTTL), a.logger)
	accounts := pages.NewAccountsPage(client.Customers(), client.Accounts(), notice.New(a.cfg.MessageTTL), a.logger)
	return web.NewRouter(web.Deps{
		Customers:   customers,
		Accounts:    accounts,
		Backend:     client,
		Logger:      a.logger,
		CORSOrigins: a.cfg.CORSOrigins,
	})
}

func newBankServer(logger *slog.Logger) *http.Server {
	bankLogger := logger.With("component", "fakebank")
	return &http.Server{
		Handler:           fakebank.NewRouter(fakebank.New(bankLogger), web.RequestID(), web.RequestLogger(bankLogger)),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// serveUntilDone runs srv until it fails or ctx is cancelled, then shuts it
// down gracefully.
func serveUntilDone(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newMockBackendCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mock-backend",
		Short: "Run an in-memory bank backend with the same REST contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.MockBackendAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := newBankServer(a.logger)
			srv.Addr = addr
			a.logger.Info("starting mock backend", "addr", addr)
			return serveUntilDone(ctx, srv, a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides MOCK_BACKEND_ADDR)")

	return cmd
}
