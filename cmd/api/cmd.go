package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/finance-tracker/internal/bootstrap"
	"github.com/GregMSThompson/finance-tracker/internal/config"
	"github.com/GregMSThompson/finance-tracker/internal/crypto"
	"github.com/GregMSThompson/finance-tracker/internal/handlers"
	"github.com/GregMSThompson/finance-tracker/internal/response"
	"github.com/GregMSThompson/finance-tracker/internal/router"
	"github.com/GregMSThompson/finance-tracker/internal/services"
	"github.com/GregMSThompson/finance-tracker/internal/store"
)

const shutdownTimeout = 30 * time.Second

// bootstrapRun is swapped in tests to observe the Bootstrap run closes.
var bootstrapRun = bootstrap.Run

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, config.New())
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run owns the Bootstrap and closes it on every return path. Errors are
// logged here; main only sets the exit code.
func run(ctx context.Context, cfg *config.Config) error {
	bs, err := bootstrapRun(cfg)
	defer func() {
		if cerr := bs.Close(); cerr != nil {
			bs.Log.Error("closing database failed", "error", cerr)
		}
	}()
	if err != nil {
		bs.Log.Error("bootstrap failed", "error", err)
		return err
	}

	if err := serve(ctx, cfg, bs); err != nil {
		bs.Log.Error("server stopped with error", "error", err)
		return err
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, bs *bootstrap.Bootstrap) error {
	// helpers
	hasher := crypto.NewPasswordHasher(cfg.BCryptCost)
	tokens := crypto.NewTokenIssuer(bs.JWTSecret, cfg.AccessTokenTTL)

	// stores
	ustore := store.NewUserStore(bs.DB)
	tstore := store.NewTransactionStore(bs.DB)
	bstore := store.NewBudgetStore(bs.DB)
	gstore := store.NewSavingsGoalStore(bs.DB)

	// services
	userv := services.NewUserService(ustore, hasher)
	authsv := services.NewAuthService(userv, tokens)
	tserv := services.NewTransactionService(tstore)
	bserv := services.NewBudgetService(bstore, tstore)
	gserv := services.NewSavingsGoalService(gstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.AuthSvc = authsv
	deps.TransactionSvc = tserv
	deps.BudgetSvc = bserv
	deps.SavingsGoalSvc = gserv
	deps.Health = store.NewHealthStore(bs.DB)
	deps.FrontendURL = cfg.FrontendURL
	deps.LoginRatePerMinute = cfg.LoginRatePerMinute
	deps.LoginRateBurst = cfg.LoginRateBurst

	// router
	r := router.NewRouter(deps)
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bs.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		bs.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
