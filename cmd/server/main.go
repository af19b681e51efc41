package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-pos/internal/checkout"
	"cafe-pos/internal/config"
	"cafe-pos/internal/db"
	"cafe-pos/internal/handler"
	"cafe-pos/internal/logger"
	"cafe-pos/internal/menu"
	"cafe-pos/internal/metrics"
	"cafe-pos/internal/middleware"
	"cafe-pos/internal/notify"
	"cafe-pos/internal/order"
	"cafe-pos/internal/payment"
	"cafe-pos/internal/staff"
	"cafe-pos/internal/table"

	"go.uber.org/zap"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

// stores groups the record stores the services run on.
type stores struct {
	tables   table.Repository
	menu     menu.Repository
	orders   order.Repository
	payments payment.Repository
	staff    staff.Repository
}

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		return staff.ErrMissingSecret
	}

	st, closeStores, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	notifier, closeNotifier := newNotifier(cfg)
	defer closeNotifier()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter()
	go sweep(ctx, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, st, notifier, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver),
		)
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer builds the services on top of st and returns the HTTP router.
func newServer(cfg *config.Config, st *stores, notifier notify.Notifier, limiter *middleware.RateLimiter) http.Handler {
	registry := metrics.NewRegistry()
	orders := order.NewService(st.orders, st.tables, st.payments, notifier)

	return handler.NewRouter(handler.Deps{
		Staff:      staff.NewService(st.staff, cfg.JWTSecret),
		Tables:     st.tables,
		Menu:       menu.NewService(st.menu),
		Orders:     orders,
		Checkout:   checkout.NewService(orders, st.payments, registry),
		Metrics:    registry,
		Limiter:    limiter,
		JWTSecret:  cfg.JWTSecret,
		CORSOrigin: cfg.CORSOrigin,
	})
}

func openStores(cfg *config.Config) (*stores, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		st, err := memoryStores(cfg.DevStaffPIN)
		return st, func() {}, err
	}

	database := initDBFunc(cfg)
	return postgresStores(database), func() { _ = database.Close() }, nil
}

func postgresStores(database *sql.DB) *stores {
	return &stores{
		tables:   table.NewRepository(database),
		menu:     menu.NewRepository(database),
		orders:   order.NewRepository(database),
		payments: payment.NewRepository(database),
		staff:    staff.NewRepository(database),
	}
}

// memoryStores seeds the default layout and catalog. Without a PIN nobody
// can sign in.
func memoryStores(pin string) (*stores, error) {
	var accounts []staff.Staff
	if pin != "" {
		var err error
		if accounts, err = staff.DevAccounts(pin); err != nil {
			return nil, err
		}
	} else {
		logger.L().Warn("DEV_STAFF_PIN not set, no staff accounts in memory store")
	}

	return &stores{
		tables:   table.NewMemoryRepository(table.DefaultLayout()...),
		menu:     menu.NewMemoryRepository(menu.DefaultCatalog()...),
		orders:   order.NewMemoryRepository(),
		payments: payment.NewMemoryRepository(),
		staff:    staff.NewMemoryRepository(accounts...),
	}, nil
}

// newNotifier connects to the broker when AMQP_URL is set. Order events are
// best effort, so an unreachable broker falls back to dropping them.
func newNotifier(cfg *config.Config) (notify.Notifier, func()) {
	if cfg.AMQPURL == "" {
		return notify.NewNopNotifier(), func() {}
	}

	n, err := notify.DialAMQP(cfg.AMQPURL)
	if err != nil {
		logger.L().Warn("order events disabled", zap.Error(err))
		return notify.NewNopNotifier(), func() {}
	}
	return n, func() { _ = n.Close() }
}

func sweep(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(); n > 0 {
				logger.L().Debug("rate limiter swept", zap.Int("removed", n))
			}
		}
	}
}
